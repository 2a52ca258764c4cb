package rtcache

import (
	"errors"
	"fmt"
)

// Configuration errors. They indicate misuse and are returned before any work.
var (
	ErrNilCache     = errors.New("rtcache: cache is nil")
	ErrNoDrive      = errors.New("rtcache: drive is required")
	ErrNoPolicy     = errors.New("rtcache: policy is required")
	ErrNoTranslator = errors.New("rtcache: translator is required")
	ErrNilKeys      = errors.New("rtcache: keys are required")
	ErrNoIdentity   = errors.New("rtcache: identity is required")
	ErrNotRemovable = errors.New("rtcache: drive does not support removal")
	ErrResultLength = errors.New("rtcache: translator returned wrong number of values")
)

// TranslateError carries a translator failure back to the caller.
// errors.Is/As see through it to the translator's own error.
type TranslateError struct {
	Identity string
	Keys     []string
	Err      error
}

func (e *TranslateError) Error() string {
	return fmt.Sprintf("rtcache: translate %d key(s) for identity %q: %v", len(e.Keys), e.Identity, e.Err)
}

func (e *TranslateError) Unwrap() error { return e.Err }

// PanicError is a recovered panic from a drive or policy.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("rtcache: recovered panic: %v", e.Value)
}

// guard runs a drive or policy call, turning a panic into an error.
func guard[R any](fn func() (R, error)) (r R, err error) {
	defer func() {
		if v := recover(); v != nil {
			var zero R
			r, err = zero, &PanicError{Value: v}
		}
	}()
	return fn()
}
