package analysis

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound means the query matched no known asset.
	ErrNotFound = errors.New("analysis not found")
	// ErrTransient means a network or upstream service failed; retrying may help.
	ErrTransient = errors.New("analysis temporarily unavailable")
	// ErrMalformed means a result violated the AnalysisResult shape.
	ErrMalformed = errors.New("malformed analysis")
)

// ErrorKind classifies a lookup failure.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotFound
	KindTransient
	KindMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindTransient:
		return "transient"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindTransient:
		return ErrTransient
	case KindMalformed:
		return ErrMalformed
	}
	return nil
}

// LookupError is returned by lookups. It matches its kind's sentinel with errors.Is.
type LookupError struct {
	Kind  ErrorKind
	Query string
	Err   error
}

func (e *LookupError) Error() string {
	var b strings.Builder
	switch e.Kind {
	case KindNotFound:
		fmt.Fprintf(&b, "no analysis found for %q", e.Query)
	case KindTransient:
		fmt.Fprintf(&b, "lookup for %q failed", e.Query)
	case KindMalformed:
		fmt.Fprintf(&b, "lookup for %q returned a malformed result", e.Query)
	default:
		fmt.Fprintf(&b, "lookup for %q failed", e.Query)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *LookupError) Unwrap() error { return e.Err }

// Is matches the sentinel for the error's kind.
func (e *LookupError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// NotFound builds a NotFound lookup error.
func NotFound(query string) error {
	return &LookupError{Kind: KindNotFound, Query: query}
}

// Transient wraps err as a transient lookup failure.
func Transient(query string, err error) error {
	return &LookupError{Kind: KindTransient, Query: query, Err: err}
}

// Malformed wraps err as a malformed-result failure.
func Malformed(query string, err error) error {
	return &LookupError{Kind: KindMalformed, Query: query, Err: err}
}

// KindOf classifies err. Unclassified errors are reported as transient since
// the UI offers a retry for them.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrMalformed):
		return KindMalformed
	default:
		return KindTransient
	}
}

// ShapeError lists the problems found by Validate.
type ShapeError struct {
	Problems []string
}

func (e *ShapeError) Error() string {
	return "invalid result: " + strings.Join(e.Problems, "; ")
}

func (e *ShapeError) Unwrap() error { return ErrMalformed }
