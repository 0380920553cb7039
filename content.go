package jsonschema

import (
	"bytes"
	"encoding/base64"

	"github.com/goccy/go-json"
)

// Decoder decodes a string instance per a contentEncoding.
type Decoder struct {
	Name   string
	Decode func(string) ([]byte, error)
}

var decoders = map[string]*Decoder{
	"base64": {
		Name:   "base64",
		Decode: base64.StdEncoding.DecodeString,
	},
}

// MediaType checks decoded content against a contentMediaType. Validate
// reports whether the bytes conform. UnmarshalJSON additionally
// deserializes them for contentSchema validation; it is nil for
// non-json media types.
type MediaType struct {
	Name          string
	Validate      func([]byte) error
	UnmarshalJSON func([]byte) (any, error)
}

var mediaTypes = map[string]*MediaType{
	"application/json": {
		Name: "application/json",
		Validate: func(b []byte) error {
			var v any
			dec := json.NewDecoder(bytes.NewReader(b))
			dec.UseNumber()
			return dec.Decode(&v)
		},
		UnmarshalJSON: func(b []byte) (any, error) {
			return UnmarshalJSON(bytes.NewReader(b))
		},
	},
}
