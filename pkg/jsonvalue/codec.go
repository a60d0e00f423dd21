package jsonvalue

import (
	jsoniter "github.com/json-iterator/go"
)

// Codec serializes Values. Implementations must emit object keys in a
// deterministic order so equal values always produce equal bytes.
type Codec interface {
	Marshal(v Value) ([]byte, error)
	Unmarshal(data []byte) (Value, error)
}

// CanonicalConfig sorts object keys lexicographically, keeps number literals
// and does not HTML-escape strings.
var CanonicalConfig = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	UseNumber:              true,
	ValidateJsonRawMessage: true,
}.Froze()

// Canonical is the default Codec.
var Canonical Codec = NewJSONIterCodec(CanonicalConfig)

type jsonIterCodec struct {
	api jsoniter.API
}

// NewJSONIterCodec adapts a jsoniter configuration. The configuration should
// have SortMapKeys and UseNumber enabled.
func NewJSONIterCodec(api jsoniter.API) Codec {
	return &jsonIterCodec{api: api}
}

func (c *jsonIterCodec) Marshal(v Value) ([]byte, error) {
	return c.api.Marshal(v.Interface())
}

func (c *jsonIterCodec) Unmarshal(data []byte) (Value, error) {
	var raw interface{}
	if err := c.api.Unmarshal(data, &raw); err != nil {
		return Value{}, err
	}
	return FromInterface(raw)
}
