package webpdec

import "encoding/binary"

func putU24(b []byte, v int) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
}

// buildWebP wraps the image chunks of a single frame into a minimal
// standalone WebP container so the bitstream decoder can treat each frame as
// a complete file. A VP8X header is synthesized only when an ALPH chunk has
// to ride along; VP8L streams carry alpha internally, so a stray ALPH next
// to one is dropped.
func buildWebP(chunks []chunk, width, height int) ([]byte, error) {
	var alpha, img *chunk
	for i := range chunks {
		switch chunks[i].fourCC {
		case fccALPH:
			alpha = &chunks[i]
		case fccVP8, fccVP8L:
			img = &chunks[i]
		}
	}

	if img == nil {
		return nil, structural("frame carries no image bitstream")
	}
	if img.fourCC == fccVP8L {
		alpha = nil
	}

	out := make([]chunk, 0, 3)
	if alpha != nil {
		vp8x := make([]byte, 10)
		vp8x[0] = vp8xFlagAlpha
		putU24(vp8x[4:], width-1)
		putU24(vp8x[7:], height-1)
		out = append(out, chunk{fourCC: fccVP8X, data: vp8x}, *alpha)
	}
	out = append(out, *img)

	riffSize := 4
	for _, c := range out {
		riffSize += 8 + len(c.data) + len(c.data)&1
	}

	buf := make([]byte, 0, 8+riffSize)
	buf = append(buf, "RIFF"...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(riffSize))
	buf = append(buf, "WEBP"...)
	for _, c := range out {
		buf = append(buf, c.fourCC...)
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(c.data)))
		buf = append(buf, c.data...)
		if len(c.data)&1 == 1 {
			buf = append(buf, 0)
		}
	}

	return buf, nil
}
