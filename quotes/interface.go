package quotes

import "io"

// Encoder encode itself in binary
type Encoder interface {
	Encode(w io.Writer) error
}

// Decoder decode itself from binary
type Decoder interface {
	Decode(r io.Reader) error
}

// EncodeDecoder what the stores keep
type EncodeDecoder interface {
	Encoder
	Decoder
}

var (
	_ EncodeDecoder = (*Snapshot)(nil)
	_ EncodeDecoder = (*Suggestions)(nil)
)
