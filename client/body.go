package client

// Body is the payload of an outbound [Request]. Exactly one of
// [StringBody], [JSONBody] or [DataBody] is carried; a nil Body sends
// nothing.
type Body interface {
	isBody()
}

// StringBody sends the raw bytes of the string. The content type is
// whatever the caller supplies, text/plain otherwise.
type StringBody string

// JSONBody is serialized as a compact JSON document, or url encoded
// when the request uses [EncodingURL].
type JSONBody map[string]any

// DataBody is sent byte for byte, e.g. for binary or multipart uploads.
type DataBody []byte

func (StringBody) isBody() {}
func (JSONBody) isBody()   {}
func (DataBody) isBody()   {}
