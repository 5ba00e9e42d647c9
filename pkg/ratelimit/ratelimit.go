package ratelimit

import (
	"time"

	"golang.org/x/time/rate"
)

// NewRequestLimiter allows perMinute requests per minute with no burst.
// A non-positive perMinute disables limiting.
func NewRequestLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
}
