// Package globalid encodes and decodes Relay style global object identifiers.
//
// A global ID is the standard, padded Base64 encoding of
//
//	<typeName>:<opaque payload>
//
// The colon is inserted exactly once. Decoding Base64-decodes the whole string
// first and then splits on the first colon, so the payload may contain colons.
package globalid

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const separator = ':'

var ErrMalformed = errors.New("malformed global id")

// GlobalID is a decoded global object identifier.
type GlobalID struct {
	TypeName string
	OpaqueID []byte
}

func (g GlobalID) String() string {
	return Encode(g.TypeName, g.OpaqueID)
}

// Encode returns the global ID for typeName and payload.
func Encode(typeName string, payload []byte) string {
	raw := make([]byte, 0, len(typeName)+1+len(payload))
	raw = append(raw, typeName...)
	raw = append(raw, separator)
	raw = append(raw, payload...)
	return base64.StdEncoding.EncodeToString(raw)
}

// Decode splits a global ID into its type name and opaque payload.
// Empty type names and empty payloads are accepted.
func Decode(globalID string) (GlobalID, error) {
	raw, err := DecodeBase64(globalID)
	if err != nil {
		return GlobalID{}, fmt.Errorf("%w: expecting a valid global id, got %s: %v", ErrMalformed, globalID, err)
	}

	i := bytes.IndexByte(raw, separator)
	if i == -1 {
		return GlobalID{}, fmt.Errorf("%w: expecting a valid global id, got %s", ErrMalformed, globalID)
	}

	return GlobalID{
		TypeName: string(raw[:i]),
		OpaqueID: raw[i+1:],
	}, nil
}

// DecodeBase64 decodes standard alphabet Base64 with or without padding.
// Line breaks are rejected.
func DecodeBase64(s string) ([]byte, error) {
	if i := strings.IndexAny(s, "\r\n"); i != -1 {
		return nil, base64.CorruptInputError(i)
	}
	if strings.HasSuffix(s, "=") || len(s)%4 == 0 {
		return base64.StdEncoding.DecodeString(s)
	}
	return base64.RawStdEncoding.DecodeString(s)
}
