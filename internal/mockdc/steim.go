package mockdc

import "encoding/binary"

// PackSteim1 encodes samples as big-endian STEIM1 frames for fixture data.
// Every difference is stored as a full 32-bit word, which is valid (if
// wasteful) STEIM1 and keeps the packer trivial; the production side of the
// codec lives in internal/codec/steim.
func PackSteim1(samples []int32) []byte {
	if len(samples) == 0 {
		return nil
	}

	diffs := make([]int32, len(samples))
	for i := 1; i < len(samples); i++ {
		diffs[i] = samples[i] - samples[i-1]
	}

	var frames [][16]uint32
	frame, slot := newFrame(), 3 // first frame: word 1 = X0, word 2 = Xn
	for _, d := range diffs {
		if slot == 16 {
			frames = append(frames, frame)
			frame, slot = newFrame(), 1
		}
		frame[0] |= 3 << (2 * (15 - slot)) // control code 11: one 32-bit diff
		frame[slot] = uint32(d)
		slot++
	}
	frames = append(frames, frame)

	frames[0][1] = uint32(samples[0])
	frames[0][2] = uint32(samples[len(samples)-1])

	out := make([]byte, 0, len(frames)*64)
	for _, fr := range frames {
		for _, w := range fr {
			out = binary.BigEndian.AppendUint32(out, w)
		}
	}
	return out
}

func newFrame() [16]uint32 { return [16]uint32{} }
