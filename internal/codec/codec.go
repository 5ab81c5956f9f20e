// Package codec defines the seam to the waveform decompression collaborator.
//
// The client never touches a concrete codec; it dispatches through Decode on
// the compression tag each chunk declares. Exactly two tags are supported.
package codec

import (
	"fmt"

	"github.com/openseis/waveclient/internal/errs"
)

// Tag identifies the compression applied to a chunk.
type Tag int32

// Compression tags as declared by the data service.
const (
	TagSteim1 Tag = 10
	TagSteim2 Tag = 11
)

// Decoder decompresses raw chunk payloads into signed samples. swap reports
// that the payload byte order differs from the host's. Implementations fail
// with errs.ErrDecode on malformed input.
type Decoder interface {
	DecodeSteim1(data []byte, numSamples int, swap bool) ([]int32, error)
	DecodeSteim2(data []byte, numSamples int, swap bool) ([]int32, error)
}

// Decode dispatches one chunk to the decoder routine its tag selects.
// Unknown tags fail with errs.ErrUnsupportedFormat.
func Decode(d Decoder, tag Tag, data []byte, numSamples int, swap bool) ([]int32, error) {
	switch tag {
	case TagSteim1:
		return d.DecodeSteim1(data, numSamples, swap)
	case TagSteim2:
		return d.DecodeSteim2(data, numSamples, swap)
	default:
		return nil, fmt.Errorf("%w: compression %d not implemented", errs.ErrUnsupportedFormat, tag)
	}
}
