package serializer

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type user struct {
	ID    string    `json:"id" msgpack:"id" cbor:"id"`
	Name  string    `json:"name" msgpack:"name" cbor:"name"`
	Since time.Time `json:"since" msgpack:"since" cbor:"since"`
}

func byteSerializers() map[string]Serializer[[]byte] {
	return map[string]Serializer[[]byte]{
		"json":    JSON{},
		"msgpack": Msgpack{},
		"cbor":    MustCBOR(false),
		"cbor-d":  MustCBOR(true),
		"limit":   Limit{Inner: JSON{}, MaxDecode: 1 << 10},
	}
}

func TestByteSerializersRoundTrip(t *testing.T) {
	in := user{ID: "1", Name: "Ada", Since: time.Unix(1700000000, 0).UTC()}
	for name, s := range byteSerializers() {
		t.Run(name, func(t *testing.T) {
			b, err := s.Serialize(in)
			require.NoError(t, err)
			out, err := Deserialize[user](s, b)
			require.NoError(t, err)
			assert.Equal(t, in.ID, out.ID)
			assert.Equal(t, in.Name, out.Name)
			assert.True(t, in.Since.Equal(out.Since))
		})
	}
}

func TestByteSerializersTypeMismatch(t *testing.T) {
	for name, s := range byteSerializers() {
		t.Run(name, func(t *testing.T) {
			b, err := s.Serialize("a string")
			require.NoError(t, err)
			_, err = Deserialize[int](s, b)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrTypeMismatch), "got %v", err)
		})
	}
}

func TestByteSerializersNil(t *testing.T) {
	for name, s := range byteSerializers() {
		t.Run(name, func(t *testing.T) {
			_, err := s.Serialize(nil)
			assert.ErrorIs(t, err, ErrNilValue)
			var u *user
			_, err = s.Serialize(u)
			assert.ErrorIs(t, err, ErrNilValue)
			_, err = Deserialize[user](s, nil)
			assert.ErrorIs(t, err, ErrNilValue)
		})
	}
}

func TestBadTarget(t *testing.T) {
	b, _ := JSON{}.Serialize(1)
	var n int
	assert.ErrorIs(t, JSON{}.Deserialize(b, n), ErrBadTarget)
	assert.ErrorIs(t, Identity{}.Deserialize(1, nil), ErrBadTarget)
}

func TestIdentity(t *testing.T) {
	s := Identity{}

	stored, err := s.Serialize(42)
	require.NoError(t, err)

	n, err := Deserialize[int](s, stored)
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	v, err := Deserialize[any](s, stored)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	_, err = Deserialize[string](s, stored)
	assert.ErrorIs(t, err, ErrTypeMismatch)
	var me *MismatchError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, "string", me.Want.String())

	_, err = s.Serialize(nil)
	assert.ErrorIs(t, err, ErrNilValue)
	_, err = Deserialize[int](s, nil)
	assert.ErrorIs(t, err, ErrNilValue)
}

func TestLimitRejectsLargePayload(t *testing.T) {
	s := Limit{Inner: JSON{}, MaxDecode: 4}
	b, err := s.Serialize("too long")
	require.NoError(t, err)
	_, err = Deserialize[string](s, b)
	assert.Error(t, err)
}

func TestProtobuf(t *testing.T) {
	s := Protobuf{}
	in := wrapperspb.String("hello")

	b, err := s.Serialize(in)
	require.NoError(t, err)

	out, err := Deserialize[*wrapperspb.StringValue](s, b)
	require.NoError(t, err)
	assert.True(t, proto.Equal(in, out))

	var inPlace wrapperspb.StringValue
	require.NoError(t, s.Deserialize(b, &inPlace))
	assert.Equal(t, "hello", inPlace.GetValue())

	_, err = s.Serialize("not a message")
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = Deserialize[string](s, b)
	assert.ErrorIs(t, err, ErrTypeMismatch)
}
