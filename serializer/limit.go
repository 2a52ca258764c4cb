package serializer

import "fmt"

// Limit wraps another byte serializer to enforce a maximum allowed payload size
// at Deserialize time. Serialize is forwarded to Inner unchanged.
// If MaxDecode <= 0, size limiting is disabled.
//
// Typical use: protect against oversized/malicious inputs coming from a
// shared store.
type Limit struct {
	// Inner is the underlying serializer being wrapped. It must be set.
	Inner Serializer[[]byte]
	// MaxDecode is the maximum permitted length (in bytes) of the stored
	// payload. Longer payloads fail without invoking Inner.
	MaxDecode int
}

var _ Serializer[[]byte] = Limit{}

func (l Limit) Serialize(v any) ([]byte, error) { return l.Inner.Serialize(v) }

func (l Limit) Deserialize(b []byte, dst any) error {
	if l.MaxDecode > 0 && len(b) > l.MaxDecode {
		return fmt.Errorf("payload too large: %d > %d", len(b), l.MaxDecode)
	}
	return l.Inner.Deserialize(b, dst)
}
