// Package steim implements STEIM1 and STEIM2 decompression as the default
// codec.Decoder collaborator.
//
// Both encodings pack first differences into 64-byte frames of sixteen
// 32-bit words. Word 0 holds sixteen 2-bit control codes, one per word of
// the frame; in the first frame, words 1 and 2 carry the forward (X0) and
// reverse (Xn) integration constants.
package steim

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/openseis/waveclient/internal/codec"
	"github.com/openseis/waveclient/internal/errs"
)

const frameSize = 64

// Decoder is a stateless codec.Decoder for the two STEIM encodings.
type Decoder struct{}

var _ codec.Decoder = Decoder{}

// New returns a Decoder.
func New() Decoder { return Decoder{} }

// DecodeSteim1 decompresses a STEIM1 payload into numSamples samples.
func (Decoder) DecodeSteim1(data []byte, numSamples int, swap bool) ([]int32, error) {
	return decode(1, data, numSamples, swap)
}

// DecodeSteim2 decompresses a STEIM2 payload into numSamples samples.
func (Decoder) DecodeSteim2(data []byte, numSamples int, swap bool) ([]int32, error) {
	return decode(2, data, numSamples, swap)
}

func decode(version int, data []byte, numSamples int, swap bool) ([]int32, error) {
	if numSamples == 0 {
		return nil, nil
	}
	if len(data) < frameSize || len(data)%frameSize != 0 {
		return nil, fmt.Errorf("%w: steim%d payload length %d is not a multiple of %d",
			errs.ErrDecode, version, len(data), frameSize)
	}

	var (
		x0, xn int32
		diffs  = make([]int32, 0, numSamples)
	)
	for frame := 0; frame*frameSize < len(data); frame++ {
		base := frame * frameSize
		ctrl := word(data, base, swap)
		for i := 1; i < 16; i++ {
			if frame == 0 && i < 3 {
				// Integration constants, control code 00.
				if i == 1 {
					x0 = int32(word(data, base+4, swap))
				} else {
					xn = int32(word(data, base+8, swap))
				}
				continue
			}
			code := (ctrl >> (2 * (15 - i))) & 0x3
			if code == 0 {
				continue
			}
			w := word(data, base+4*i, swap)
			var err error
			if version == 1 {
				diffs, err = appendSteim1(diffs, code, w)
			} else {
				diffs, err = appendSteim2(diffs, code, w)
			}
			if err != nil {
				return nil, err
			}
		}
	}

	if len(diffs) < numSamples {
		return nil, fmt.Errorf("%w: steim%d payload holds %d differences, need %d",
			errs.ErrDecode, version, len(diffs), numSamples)
	}

	samples := make([]int32, numSamples)
	samples[0] = x0
	for i := 1; i < numSamples; i++ {
		samples[i] = samples[i-1] + diffs[i]
	}
	if samples[numSamples-1] != xn {
		return nil, fmt.Errorf("%w: steim%d reverse integration constant mismatch: got %d, want %d",
			errs.ErrDecode, version, samples[numSamples-1], xn)
	}
	return samples, nil
}

func word(data []byte, off int, swap bool) uint32 {
	w := binary.NativeEndian.Uint32(data[off : off+4])
	if swap {
		w = bits.ReverseBytes32(w)
	}
	return w
}

func appendSteim1(diffs []int32, code, w uint32) ([]int32, error) {
	switch code {
	case 1: // four 8-bit differences
		diffs = append(diffs, int32(int8(w>>24)), int32(int8(w>>16)), int32(int8(w>>8)), int32(int8(w)))
	case 2: // two 16-bit differences
		diffs = append(diffs, int32(int16(w>>16)), int32(int16(w)))
	case 3: // one 32-bit difference
		diffs = append(diffs, int32(w))
	}
	return diffs, nil
}

func appendSteim2(diffs []int32, code, w uint32) ([]int32, error) {
	if code == 1 { // four 8-bit differences, as in STEIM1
		return append(diffs, int32(int8(w>>24)), int32(int8(w>>16)), int32(int8(w>>8)), int32(int8(w))), nil
	}
	dnib := w >> 30
	switch {
	case code == 2 && dnib == 1: // one 30-bit difference
		diffs = append(diffs, signExtend(w&0x3FFFFFFF, 30))
	case code == 2 && dnib == 2: // two 15-bit differences
		diffs = append(diffs, signExtend((w>>15)&0x7FFF, 15), signExtend(w&0x7FFF, 15))
	case code == 2 && dnib == 3: // three 10-bit differences
		diffs = append(diffs, signExtend((w>>20)&0x3FF, 10), signExtend((w>>10)&0x3FF, 10), signExtend(w&0x3FF, 10))
	case code == 3 && dnib == 0: // five 6-bit differences
		for shift := 24; shift >= 0; shift -= 6 {
			diffs = append(diffs, signExtend((w>>uint(shift))&0x3F, 6))
		}
	case code == 3 && dnib == 1: // six 5-bit differences
		for shift := 25; shift >= 0; shift -= 5 {
			diffs = append(diffs, signExtend((w>>uint(shift))&0x1F, 5))
		}
	case code == 3 && dnib == 2: // seven 4-bit differences
		for shift := 24; shift >= 0; shift -= 4 {
			diffs = append(diffs, signExtend((w>>uint(shift))&0xF, 4))
		}
	default:
		return nil, fmt.Errorf("%w: steim2 control %d with dnib %d is invalid", errs.ErrDecode, code, dnib)
	}
	return diffs, nil
}

func signExtend(v uint32, width uint) int32 {
	shift := 32 - width
	return int32(v<<shift) >> shift
}
