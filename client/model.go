package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// DataModel is implemented by types that can be constructed from a raw
// response body. FromBytes reports false when data cannot be decoded.
type DataModel interface {
	FromBytes(data []byte) bool
}

// JSONModel is implemented by types that can be constructed from a parsed
// JSON value: map[string]any, []any, json.Number, string, bool or nil.
//
// A JSONModel satisfies [DataModel] by delegating to [DecodeJSON]:
//
//	func (r *Repo) FromBytes(b []byte) bool { return client.DecodeJSON(r, b) }
type JSONModel interface {
	FromJSON(v any) bool
}

// ModelPtr constrains a type parameter to a pointer to M implementing
// [DataModel]. It lets Respond[Repo] decode into a Repo value while the
// decode method has a pointer receiver.
type ModelPtr[M any] interface {
	*M
	DataModel
}

// DecodeJSON parses data as a single JSON value and hands it to m.
// Numbers are decoded as [json.Number] to keep their precision.
func DecodeJSON(m JSONModel, data []byte) bool {
	v, ok := parseJSON(data)
	if !ok {
		return false
	}

	return m.FromJSON(v)
}

// DecodeStruct unmarshals data into dst, which must be a pointer to a
// struct, and validates the result against its `validate` struct tags.
func DecodeStruct(dst any, data []byte) bool {
	if err := json.Unmarshal(data, dst); err != nil {
		return false
	}

	return Validate(dst) == nil
}

// decoderFor binds the model type to a [DecodeFunc], appending every
// successfully decoded model to out.
func decoderFor[M any, PM ModelPtr[M]](out *[]M) DecodeFunc {
	return func(raw []byte) bool {
		var m M
		if !PM(&m).FromBytes(raw) {
			return false
		}
		*out = append(*out, m)
		return true
	}
}

func parseJSON(data []byte) (any, bool) {
	d := json.NewDecoder(bytes.NewReader(data))
	d.UseNumber()

	var v any
	if err := d.Decode(&v); err != nil {
		return nil, false
	}

	// Anything but the end of input after the value, including a stray
	// closing delimiter, means the payload was not one JSON value.
	if _, err := d.Token(); !errors.Is(err, io.EOF) {
		return nil, false
	}

	return v, true
}
