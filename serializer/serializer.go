// Package serializer converts typed values to and from a storage
// representation S.
//
// Serializers are type-erased on the value side: Serialize accepts any value
// and Deserialize writes into a caller-supplied pointer, so one serializer can
// serve every value type stored in a drive. Use the generic Deserialize helper
// to get a typed result.
package serializer

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrTypeMismatch reports that a stored representation cannot be coerced
	// to the requested type. Distinct from a missing key.
	ErrTypeMismatch = errors.New("serializer: type mismatch")
	// ErrNilValue reports a nil value or nil stored representation.
	ErrNilValue = errors.New("serializer: nil value")
	// ErrBadTarget reports a Deserialize target that is not a non-nil pointer.
	ErrBadTarget = errors.New("serializer: target must be a non-nil pointer")
)

// Serializer encodes values into S and decodes S back into a pointer target.
type Serializer[S any] interface {
	Serialize(v any) (S, error)
	Deserialize(stored S, dst any) error
}

// Deserialize decodes stored into a fresh Q.
func Deserialize[Q, S any](s Serializer[S], stored S) (Q, error) {
	var q Q
	if err := s.Deserialize(stored, &q); err != nil {
		var zero Q
		return zero, err
	}
	return q, nil
}

// MismatchError wraps a decode failure with the type that was requested.
type MismatchError struct {
	Want reflect.Type
	Err  error
}

func (e *MismatchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("serializer: cannot decode into %v", e.Want)
	}
	return fmt.Sprintf("serializer: cannot decode into %v: %v", e.Want, e.Err)
}

func (e *MismatchError) Is(target error) bool { return target == ErrTypeMismatch }

func (e *MismatchError) Unwrap() error { return e.Err }

func mismatch(dst any, err error) error {
	var want reflect.Type
	if t := reflect.TypeOf(dst); t != nil && t.Kind() == reflect.Pointer {
		want = t.Elem()
	}
	return &MismatchError{Want: want, Err: err}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// target validates dst and returns the settable element it points to.
func target(dst any) (reflect.Value, error) {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return reflect.Value{}, ErrBadTarget
	}
	return rv.Elem(), nil
}
