// Package webpdec extracts composited frames from static and animated WebP
// files. The container is demuxed by hand; pixel decoding of the per-frame
// bitstreams goes through golang.org/x/image/webp.
package webpdec

import (
	"fmt"
	"time"

	"webp2gif/internal/utils/errs"
	"webp2gif/internal/utils/validate"
)

const (
	fccVP8X = "VP8X"
	fccANIM = "ANIM"
	fccANMF = "ANMF"
	fccVP8  = "VP8 "
	fccVP8L = "VP8L"
	fccALPH = "ALPH"
)

const (
	vp8xFlagAlpha = 0x10
	vp8xFlagAnim  = 0x02

	anmfFlagDispose = 0x01
	anmfFlagNoBlend = 0x02
)

// Decode guards. Inputs past these limits are refused before any pixel
// memory is allocated.
const (
	maxCanvasDim    = 16384
	maxFrameCount   = 4096
	maxDecodedBytes = 1 << 30
)

type chunk struct {
	fourCC string
	data   []byte
}

// frameHeader is one ANMF entry: placement, timing, compositing flags and
// the raw image chunks, pixels still undecoded.
type frameHeader struct {
	x, y                int
	width, height       int
	duration            time.Duration
	disposeToBackground bool
	blend               bool
	chunks              []chunk
}

// container is the demuxed view of a WebP file.
type container struct {
	width    int
	height   int
	hasAlpha bool
	animated bool
	// loopCount keeps WebP semantics: 0 repeats forever.
	loopCount int
	frames    []frameHeader
	still     []chunk
}

func u16le(b []byte) int {
	return int(b[0]) | int(b[1])<<8
}

func u24le(b []byte) int {
	return int(b[0]) | int(b[1])<<8 | int(b[2])<<16
}

func u32le(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func structural(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errs.ErrUnreadableFormat, fmt.Sprintf(format, args...))
}

// walkChunks splits a RIFF chunk sequence, honoring the even-byte padding
// rule. fn receives each chunk in order; a false return stops the walk.
func walkChunks(data []byte, fn func(c chunk) (bool, error)) error {
	off := 0
	for off < len(data) {
		if off+8 > len(data) {
			return structural("truncated chunk header at offset %d", off)
		}

		fourCC := string(data[off : off+4])
		size := int(u32le(data[off+4 : off+8]))
		body := off + 8

		if size < 0 || body+size > len(data) {
			return structural("chunk %q exceeds container bounds", fourCC)
		}

		cont, err := fn(chunk{fourCC: fourCC, data: data[body : body+size]})
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}

		off = body + size + size&1
	}

	return nil
}

// vp8Dimensions reads width and height from a VP8 key frame header.
func vp8Dimensions(data []byte) (int, int, error) {
	if len(data) < 10 {
		return 0, 0, structural("VP8 bitstream too short")
	}
	if data[3] != 0x9d || data[4] != 0x01 || data[5] != 0x2a {
		return 0, 0, structural("VP8 bitstream missing start code")
	}

	w := u16le(data[6:8]) & 0x3fff
	h := u16le(data[8:10]) & 0x3fff
	return w, h, nil
}

// vp8lDimensions reads width and height from a VP8L stream header. The two
// 14-bit fields follow the signature byte, packed LSB first.
func vp8lDimensions(data []byte) (int, int, error) {
	if len(data) < 5 {
		return 0, 0, structural("VP8L bitstream too short")
	}
	if data[0] != 0x2f {
		return 0, 0, structural("VP8L bitstream missing signature")
	}

	bits := uint32(data[1]) | uint32(data[2])<<8 | uint32(data[3])<<16 | uint32(data[4])<<24
	w := int(bits&0x3fff) + 1
	h := int(bits>>14&0x3fff) + 1
	return w, h, nil
}

func parseANMF(payload []byte) (frameHeader, error) {
	if len(payload) < 16 {
		return frameHeader{}, structural("ANMF header too short (%d bytes)", len(payload))
	}

	flags := payload[15]
	fh := frameHeader{
		x:                   2 * u24le(payload[0:3]),
		y:                   2 * u24le(payload[3:6]),
		width:               u24le(payload[6:9]) + 1,
		height:              u24le(payload[9:12]) + 1,
		duration:            time.Duration(u24le(payload[12:15])) * time.Millisecond,
		disposeToBackground: flags&anmfFlagDispose != 0,
		blend:               flags&anmfFlagNoBlend == 0,
	}

	err := walkChunks(payload[16:], func(c chunk) (bool, error) {
		switch c.fourCC {
		case fccALPH, fccVP8, fccVP8L:
			fh.chunks = append(fh.chunks, c)
		}
		return true, nil
	})
	if err != nil {
		return frameHeader{}, err
	}

	if !hasImageChunk(fh.chunks) {
		return frameHeader{}, structural("ANMF frame carries no image bitstream")
	}

	return fh, nil
}

func hasImageChunk(chunks []chunk) bool {
	for _, c := range chunks {
		if c.fourCC == fccVP8 || c.fourCC == fccVP8L {
			return true
		}
	}
	return false
}

// demux parses a whole WebP file into its structural parts without decoding
// any pixels. All malformed input comes back as ErrUnreadableFormat.
func demux(data []byte) (*container, error) {
	if len(data) == 0 {
		return nil, structural("file is empty")
	}
	if !validate.SniffWebP(data) {
		return nil, structural("not a RIFF/WEBP container")
	}

	riffSize := int(u32le(data[4:8]))
	if riffSize < 4 || 8+riffSize > len(data) {
		return nil, structural("container is truncated (declares %d bytes, have %d)", 8+riffSize, len(data))
	}

	cont := &container{}
	sawVP8X := false
	sawANIM := false

	err := walkChunks(data[12:8+riffSize], func(c chunk) (bool, error) {
		switch c.fourCC {
		case fccVP8X:
			if len(c.data) < 10 {
				return false, structural("VP8X header too short")
			}
			sawVP8X = true
			cont.hasAlpha = c.data[0]&vp8xFlagAlpha != 0
			cont.width = u24le(c.data[4:7]) + 1
			cont.height = u24le(c.data[7:10]) + 1

		case fccANIM:
			if len(c.data) < 6 {
				return false, structural("ANIM header too short")
			}
			sawANIM = true
			// The 4-byte background color is ignored: frames composite
			// onto a transparent canvas and the encoder flattens later.
			cont.loopCount = u16le(c.data[4:6])

		case fccANMF:
			fh, err := parseANMF(c.data)
			if err != nil {
				return false, err
			}
			cont.frames = append(cont.frames, fh)

		case fccVP8, fccVP8L, fccALPH:
			cont.still = append(cont.still, c)
		}

		// ICCP, EXIF, XMP and unknown chunks are skipped.
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	cont.animated = len(cont.frames) > 0

	if sawANIM && !cont.animated {
		return nil, structural("animation declared but contains no frames")
	}

	if !cont.animated {
		if err := fillStillDimensions(cont, sawVP8X); err != nil {
			return nil, err
		}
	}

	if err := checkGuards(cont); err != nil {
		return nil, err
	}

	return cont, nil
}

// fillStillDimensions resolves the canvas size of a non-animated file. An
// extended container already carries it in VP8X; a simple one stores it in
// the bitstream header.
func fillStillDimensions(cont *container, sawVP8X bool) error {
	if !hasImageChunk(cont.still) {
		return structural("no image bitstream found")
	}

	if sawVP8X {
		return nil
	}

	for _, c := range cont.still {
		var err error
		switch c.fourCC {
		case fccVP8:
			cont.width, cont.height, err = vp8Dimensions(c.data)
		case fccVP8L:
			cont.width, cont.height, err = vp8lDimensions(c.data)
		default:
			continue
		}
		return err
	}

	return structural("no image bitstream found")
}

func checkGuards(cont *container) error {
	if cont.width <= 0 || cont.height <= 0 {
		return structural("invalid canvas size %dx%d", cont.width, cont.height)
	}
	if cont.width > maxCanvasDim || cont.height > maxCanvasDim {
		return structural("canvas %dx%d exceeds the %d pixel limit", cont.width, cont.height, maxCanvasDim)
	}
	if len(cont.frames) > maxFrameCount {
		return structural("frame count %d exceeds the %d frame limit", len(cont.frames), maxFrameCount)
	}

	for i, fh := range cont.frames {
		if fh.x+fh.width > cont.width || fh.y+fh.height > cont.height {
			return structural("frame %d rectangle %dx%d+%d+%d leaves the %dx%d canvas",
				i, fh.width, fh.height, fh.x, fh.y, cont.width, cont.height)
		}
	}

	decoded := int64(cont.width) * int64(cont.height) * 4 * int64(len(cont.frames)+1)
	if decoded > maxDecodedBytes {
		return structural("decoded size %d bytes exceeds the %d byte limit", decoded, int64(maxDecodedBytes))
	}

	return nil
}
