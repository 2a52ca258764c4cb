package serializer

import "github.com/vmihailenco/msgpack/v5"

// Msgpack serializes using vmihailenco/msgpack/v5.
// The zero value is ready to use.
//
// Msgpack is compact and fast; be mindful of struct tag differences vs JSON.
// Use `msgpack:"fieldName"` tags if you need explicit control.
type Msgpack struct{}

var _ Serializer[[]byte] = Msgpack{}

func (Msgpack) Serialize(v any) ([]byte, error) {
	if isNil(v) {
		return nil, ErrNilValue
	}
	return msgpack.Marshal(v)
}

func (Msgpack) Deserialize(b []byte, dst any) error {
	if _, err := target(dst); err != nil {
		return err
	}
	if b == nil {
		return ErrNilValue
	}
	if err := msgpack.Unmarshal(b, dst); err != nil {
		return mismatch(dst, err)
	}
	return nil
}
