package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"time"
)

const (
	version   byte = 1
	kindEntry byte = 1

	hdrLen = 4 + 1 + 1 + 8 + 2
)

var (
	ErrCorrupt = errors.New("rtcache: corrupt entry")
	ErrKeyLen  = errors.New("rtcache: key too long for wire format")
	magic4     = [...]byte{'R', 'T', 'C', 'E'}
)

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// Entry: magic(4) | ver(1) | kind(1=entry) | updated(i64 unix nanos, be) | klen(u16 be) | key(klen) | vlen(u32 be) | payload(vlen)
//
// The zero time is encoded as 0 and decoded back to the zero time.Time.
func EncodeEntry(key string, updated time.Time, payload []byte) ([]byte, error) {
	if len(key) > 0xFFFF {
		return nil, ErrKeyLen
	}

	var buf bytes.Buffer
	buf.Grow(hdrLen + len(key) + 4 + len(payload))

	buf.Write(magic4[:])
	buf.WriteByte(version)
	buf.WriteByte(kindEntry)

	var u8 [8]byte
	var u4 [4]byte
	var u2 [2]byte

	var nanos int64
	if !updated.IsZero() {
		nanos = updated.UnixNano()
	}
	binary.BigEndian.PutUint64(u8[:], uint64(nanos))
	buf.Write(u8[:])

	binary.BigEndian.PutUint16(u2[:], uint16(len(key)))
	buf.Write(u2[:])
	buf.WriteString(key)

	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf.Write(u4[:])
	buf.Write(payload)

	return buf.Bytes(), nil
}

// DecodeEntry parses an entry frame. The returned payload aliases b.
func DecodeEntry(b []byte) (key string, updated time.Time, payload []byte, err error) {
	if len(b) < hdrLen || !hasMagic(b) || b[4] != version || b[5] != kindEntry {
		return "", time.Time{}, nil, ErrCorrupt
	}

	off := 6

	nanos := int64(binary.BigEndian.Uint64(b[off : off+8]))
	off += 8
	if nanos != 0 {
		updated = time.Unix(0, nanos)
	}

	klen := int(binary.BigEndian.Uint16(b[off : off+2]))
	off += 2
	if klen > len(b)-off {
		return "", time.Time{}, nil, ErrCorrupt
	}
	key = string(b[off : off+klen])
	off += klen

	if off+4 > len(b) {
		return "", time.Time{}, nil, ErrCorrupt
	}
	vlen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if vlen < 0 || vlen != len(b)-off { // exact length; trailing bytes are corruption
		return "", time.Time{}, nil, ErrCorrupt
	}

	return key, updated, b[off : off+vlen], nil
}
