// Package codec serializes hit lists for transfer and storage.
//
// Distributed searches produce one hit list per worker; workers encode
// their lists with this package and a coordinator decodes and merges them.
// The frame is self-describing: it records the codec name and compression
// used, so any encoder/decoder pairing interoperates.
package codec

import "fmt"

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
//
// Encoded hit lists store the codec name in their frame header; DecodeList
// uses this to pick the codec that wrote them.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// MustMarshal is a helper for internal tests/benchmarks.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
