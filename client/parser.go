package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// DecodeFunc decodes one raw JSON value into the model type of the
// current call. It reports false when the value cannot be decoded.
type DecodeFunc func(raw []byte) bool

// ModelParser locates the single model in a response body and decodes it.
type ModelParser interface {
	ParseModel(data []byte, decode DecodeFunc) error
}

// ArrayParser locates every model in a response body and decodes each one.
type ArrayParser interface {
	ParseArray(data []byte, decode DecodeFunc) error
}

// ModelParserFunc adapts an ordinary function to a [ModelParser].
type ModelParserFunc func(data []byte, decode DecodeFunc) error

func (f ModelParserFunc) ParseModel(data []byte, decode DecodeFunc) error {
	return f(data, decode)
}

// ArrayParserFunc adapts an ordinary function to an [ArrayParser].
type ArrayParserFunc func(data []byte, decode DecodeFunc) error

func (f ArrayParserFunc) ParseArray(data []byte, decode DecodeFunc) error {
	return f(data, decode)
}

// strictable is implemented by the built-in array parsers so [WithStrict]
// and [WithStrictArrays] can switch them to strict mode.
type strictable interface {
	strict() ArrayParser
}

// /////////////////////////////////////////////////////////////////

// DefaultModelParser hands the whole body to the model.
var DefaultModelParser ModelParser = ModelParserFunc(func(data []byte, decode DecodeFunc) error {
	if !decode(data) {
		return ErrModelParsing
	}
	return nil
})

// KeyedModelParser decodes the value stored under key in a top-level
// JSON object, for APIs that wrap results in an envelope such as
// {"data": {...}}.
func KeyedModelParser(key string) ModelParser {
	return ModelParserFunc(func(data []byte, decode DecodeFunc) error {
		var envelope map[string]json.RawMessage
		if !isJSONDelim(data, '{') {
			return ErrJSONParsing
		}
		if err := json.Unmarshal(data, &envelope); err != nil {
			return fmt.Errorf("%w: %w", ErrJSONParsing, err)
		}

		raw, ok := envelope[key]
		if !ok {
			return fmt.Errorf("%w: key %q not found", ErrModelParsing, key)
		}
		if !decode(raw) {
			return ErrModelParsing
		}

		return nil
	})
}

// /////////////////////////////////////////////////////////////////

// JSONArrayParser decodes a top-level JSON array element by element.
// Elements that fail to decode are skipped unless Strict is set, in which
// case every failure is reported as an [ElementError].
type JSONArrayParser struct {
	Strict bool
}

func (p JSONArrayParser) ParseArray(data []byte, decode DecodeFunc) error {
	if !isJSONDelim(data, '[') {
		return ErrJSONParsing
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return fmt.Errorf("%w: %w", ErrJSONParsing, err)
	}

	var errs []error
	for i, raw := range elements {
		if !decode(raw) && p.Strict {
			errs = append(errs, &ElementError{Index: i, Err: ErrModelParsing})
		}
	}

	return joinElementErrors(errs, len(elements))
}

func (p JSONArrayParser) strict() ArrayParser {
	p.Strict = true
	return p
}

// DictionaryValuesParser treats a top-level JSON object as a list of its
// values, discarding the keys:
//
//	{"foo": {"attr": 1}, "bar": {"attr": 2}}  =>  [{"attr": 1}, {"attr": 2}]
//
// Values are decoded in document order. Failures are skipped unless
// Strict is set.
type DictionaryValuesParser struct {
	Strict bool
}

func (p DictionaryValuesParser) ParseArray(data []byte, decode DecodeFunc) error {
	d := json.NewDecoder(bytes.NewReader(data))

	tok, err := d.Token()
	if err != nil || tok != json.Delim('{') {
		return ErrJSONParsing
	}

	var errs []error
	var n int
	for ; d.More(); n++ {
		tok, err := d.Token()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrJSONParsing, err)
		}
		key, _ := tok.(string)

		var raw json.RawMessage
		if err := d.Decode(&raw); err != nil {
			return fmt.Errorf("%w: %w", ErrJSONParsing, err)
		}

		if !decode(raw) && p.Strict {
			errs = append(errs, &ElementError{Index: n, Key: key, Err: ErrModelParsing})
		}
	}

	if _, err := d.Token(); err != nil {
		return fmt.Errorf("%w: %w", ErrJSONParsing, err)
	}
	if _, err := d.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: trailing data after object", ErrJSONParsing)
	}

	return joinElementErrors(errs, n)
}

func (p DictionaryValuesParser) strict() ArrayParser {
	p.Strict = true
	return p
}

func joinElementErrors(errs []error, total int) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d of %d elements failed: %w", ErrModelParsing, len(errs), total, errors.Join(errs...))
}

// isJSONDelim reports whether the first non-space byte of data is delim.
func isJSONDelim(data []byte, delim byte) bool {
	data = bytes.TrimLeft(data, " \t\r\n")
	return len(data) > 0 && data[0] == delim
}
