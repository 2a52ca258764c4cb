package serializer

import (
	"fmt"
	"reflect"

	"google.golang.org/protobuf/proto"
)

// Protobuf serializes proto.Message values. Deserialize accepts either a
// message pointer (decoded in place) or a pointer to a message-typed variable
// (a fresh message is allocated).
type Protobuf struct{}

var _ Serializer[[]byte] = Protobuf{}

var messageType = reflect.TypeOf((*proto.Message)(nil)).Elem()

func (Protobuf) Serialize(v any) ([]byte, error) {
	if isNil(v) {
		return nil, ErrNilValue
	}
	m, ok := v.(proto.Message)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a proto.Message", ErrTypeMismatch, v)
	}
	return proto.Marshal(m)
}

func (Protobuf) Deserialize(b []byte, dst any) error {
	el, err := target(dst)
	if err != nil {
		return err
	}
	if b == nil {
		return ErrNilValue
	}
	if m, ok := dst.(proto.Message); ok {
		if err := proto.Unmarshal(b, m); err != nil {
			return mismatch(dst, err)
		}
		return nil
	}
	t := el.Type()
	if t.Kind() != reflect.Pointer || !t.Implements(messageType) {
		return mismatch(dst, fmt.Errorf("%v is not a proto.Message", t))
	}
	m := reflect.New(t.Elem()).Interface().(proto.Message)
	if err := proto.Unmarshal(b, m); err != nil {
		return mismatch(dst, err)
	}
	el.Set(reflect.ValueOf(m))
	return nil
}
