// Package transform holds the pluggable byte transforms applied to the opaque
// payload of a global ID, e.g. compression.
//
// Encode runs before the payload is Base64 encoded into the global ID, Decode
// runs after the global ID has been Base64 decoded. Keeping Decode(Encode(x))
// equal to x is up to whoever supplies the pair.
package transform

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
)

const (
	NameIdentity = "identity"
	NameBrotli   = "brotli"

	DefaultBrotliLevel = 6
	// DefaultMaxDecodedSize bounds the decompressed payload of a single id.
	DefaultMaxDecodedSize int64 = 64 * 1024
)

var (
	ErrUnknownTransform = errors.New("unknown payload transform")
	ErrDecodedTooLarge  = errors.New("decoded payload exceeds size limit")
)

type Func func(in []byte) ([]byte, error)

// Transform is a pair of independent, unidirectional payload functions.
// A nil function leaves the payload untouched.
type Transform struct {
	Encode Func
	Decode Func
}

func (t Transform) ApplyEncode(in []byte) ([]byte, error) {
	if t.Encode == nil {
		return in, nil
	}
	return t.Encode(in)
}

func (t Transform) ApplyDecode(in []byte) ([]byte, error) {
	if t.Decode == nil {
		return in, nil
	}
	return t.Decode(in)
}

func identity(in []byte) ([]byte, error) {
	return in, nil
}

func Identity() Transform {
	return Transform{
		Encode: identity,
		Decode: identity,
	}
}

// Brotli compresses payloads on encode and decompresses them on decode.
// Decode fails with ErrDecodedTooLarge once more than maxDecodedSize bytes
// come out. A maxDecodedSize <= 0 means DefaultMaxDecodedSize.
func Brotli(level int, maxDecodedSize int64) Transform {
	if maxDecodedSize <= 0 {
		maxDecodedSize = DefaultMaxDecodedSize
	}

	return Transform{
		Encode: func(in []byte) ([]byte, error) {
			buf := &bytes.Buffer{}
			writer := brotli.NewWriterLevel(buf, level)
			if _, err := writer.Write(in); err != nil {
				return nil, fmt.Errorf("brotli: %w", err)
			}
			if err := writer.Close(); err != nil {
				return nil, fmt.Errorf("brotli: %w", err)
			}
			return buf.Bytes(), nil
		},
		Decode: func(in []byte) ([]byte, error) {
			reader := io.LimitReader(brotli.NewReader(bytes.NewReader(in)), maxDecodedSize+1)
			out, err := io.ReadAll(reader)
			if err != nil {
				return nil, fmt.Errorf("brotli: %w", err)
			}
			if int64(len(out)) > maxDecodedSize {
				return nil, fmt.Errorf("brotli: %w: more than %d bytes", ErrDecodedTooLarge, maxDecodedSize)
			}
			return out, nil
		},
	}
}

// Chain applies encoders left to right and decoders right to left.
func Chain(transforms ...Transform) Transform {
	return Transform{
		Encode: func(in []byte) ([]byte, error) {
			var err error
			for i := 0; i < len(transforms); i++ {
				in, err = transforms[i].ApplyEncode(in)
				if err != nil {
					return nil, err
				}
			}
			return in, nil
		},
		Decode: func(in []byte) ([]byte, error) {
			var err error
			for i := len(transforms) - 1; i >= 0; i-- {
				in, err = transforms[i].ApplyDecode(in)
				if err != nil {
					return nil, err
				}
			}
			return in, nil
		},
	}
}

// ByName resolves a configured transform name.
func ByName(name string, brotliLevel int, maxDecodedSize int64) (Transform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameIdentity:
		return Identity(), nil
	case NameBrotli:
		return Brotli(brotliLevel, maxDecodedSize), nil
	default:
		return Transform{}, fmt.Errorf("%w: %s", ErrUnknownTransform, name)
	}
}
