package wire

import (
	"github.com/ugorji/go/codec"
)

var (
	msgpackHandle = newMsgpackHandle()
	jsonHandle    = newJSONHandle()
)

func newJSONHandle() *codec.JsonHandle {
	h := &codec.JsonHandle{Indent: 2}
	h.Canonical = true
	return h
}

func newMsgpackHandle() *codec.MsgpackHandle {
	h := new(codec.MsgpackHandle)
	h.WriteExt = true
	h.Canonical = true
	return h
}

// Handle returns the codec handle used on the wire. Stream transports use it
// with codec.NewEncoder and codec.NewDecoder.
func Handle() codec.Handle {
	return msgpackHandle
}

// Marshal encodes v with the wire codec.
func Marshal(v interface{}) ([]byte, error) {
	var b []byte
	enc := codec.NewEncoderBytes(&b, msgpackHandle)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return b, nil
}

// Unmarshal decodes data produced by Marshal into v.
func Unmarshal(data []byte, v interface{}) error {
	dec := codec.NewDecoderBytes(data, msgpackHandle)
	return dec.Decode(v)
}

// MarshalJSON returns an indented, canonical JSON representation of v. It is
// meant for humans, never for signing.
func MarshalJSON(v interface{}) ([]byte, error) {
	var b []byte
	enc := codec.NewEncoderBytes(&b, jsonHandle)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return b, nil
}
