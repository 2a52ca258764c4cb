package serializer

import "encoding/json"

// JSON serializes with encoding/json. The zero value is ready to use.
type JSON struct{}

var _ Serializer[[]byte] = JSON{}

func (JSON) Serialize(v any) ([]byte, error) {
	if isNil(v) {
		return nil, ErrNilValue
	}
	return json.Marshal(v)
}

func (JSON) Deserialize(b []byte, dst any) error {
	if _, err := target(dst); err != nil {
		return err
	}
	if b == nil {
		return ErrNilValue
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return mismatch(dst, err)
	}
	return nil
}
