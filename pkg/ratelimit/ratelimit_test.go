package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestNewRequestLimiter(t *testing.T) {
	l := NewRequestLimiter(60)
	assert.Equal(t, rate.Every(time.Second), l.Limit())
	assert.Equal(t, 1, l.Burst())

	assert.True(t, l.Allow())
	assert.False(t, l.Allow())
}

func TestNewRequestLimiterUnlimited(t *testing.T) {
	l := NewRequestLimiter(0)
	for i := 0; i < 100; i++ {
		assert.True(t, l.Allow())
	}
}
