package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// Composite joins a raw key and a translator identity into a drive key.
// Plain concatenation: "oneident"+"" and "one"+"ident" share a slot.
func Composite(raw, identity string) string {
	return raw + identity
}

// Redact returns a short, stable digest of k suitable for logs.
func Redact(k string) string {
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}
