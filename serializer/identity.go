package serializer

import (
	"fmt"
	"reflect"
)

// Identity passes values through unchanged. Deserialize succeeds only when the
// stored value is assignable to the target's element type.
type Identity struct{}

var _ Serializer[any] = Identity{}

func (Identity) Serialize(v any) (any, error) {
	if isNil(v) {
		return nil, ErrNilValue
	}
	return v, nil
}

func (Identity) Deserialize(stored any, dst any) error {
	el, err := target(dst)
	if err != nil {
		return err
	}
	if stored == nil {
		return ErrNilValue
	}
	sv := reflect.ValueOf(stored)
	if !sv.Type().AssignableTo(el.Type()) {
		return mismatch(dst, fmt.Errorf("stored %v", sv.Type()))
	}
	el.Set(sv)
	return nil
}
