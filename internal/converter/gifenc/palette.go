package gifenc

import (
	"image"
	"image/color"
	"sort"

	"github.com/disintegration/imaging"
	"github.com/ericpauley/go-quantize/quantize"
)

// sampleBudget caps how many pixels feed the median-cut quantizer. Sampling
// is stride-based across the concatenated frames, so the palette stays
// deterministic for a given input.
const sampleBudget = 65536

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// flattenWhite composites a frame over an opaque white backdrop. GIF has no
// partial transparency, so every pixel must end up opaque before
// quantization.
func flattenWhite(frame *image.NRGBA) *image.NRGBA {
	bg := imaging.New(frame.Bounds().Dx(), frame.Bounds().Dy(), white)
	return imaging.Overlay(bg, frame, image.Point{}, 1.0)
}

// exactPalette collects the distinct colors of all frames. It reports false
// as soon as the set outgrows a GIF color table; otherwise the palette is
// the full set, sorted by packed RGB value.
func exactPalette(frames []*image.NRGBA) (color.Palette, bool) {
	seen := make(map[uint32]struct{})
	for _, f := range frames {
		for i := 0; i+3 < len(f.Pix); i += 4 {
			key := uint32(f.Pix[i])<<16 | uint32(f.Pix[i+1])<<8 | uint32(f.Pix[i+2])
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			if len(seen) > 256 {
				return nil, false
			}
		}
	}

	keys := make([]uint32, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	palette := make(color.Palette, 0, len(keys))
	for _, k := range keys {
		palette = append(palette, color.NRGBA{
			R: byte(k >> 16),
			G: byte(k >> 8),
			B: byte(k),
			A: 255,
		})
	}

	return palette, true
}

// sampledPalette runs median-cut quantization over a uniform pixel sample of
// all frames.
func sampledPalette(frames []*image.NRGBA) color.Palette {
	total := 0
	for _, f := range frames {
		total += len(f.Pix) / 4
	}

	stride := (total + sampleBudget - 1) / sampleBudget
	if stride < 1 {
		stride = 1
	}
	count := (total + stride - 1) / stride

	strip := image.NewNRGBA(image.Rect(0, 0, 1, count))
	idx, out := 0, 0
	for _, f := range frames {
		for p := 0; p+3 < len(f.Pix); p += 4 {
			if idx%stride == 0 {
				copy(strip.Pix[out*4:out*4+4], f.Pix[p:p+4])
				out++
			}
			idx++
		}
	}

	quantizer := quantize.MedianCutQuantizer{}
	return quantizer.Quantize(make(color.Palette, 0, 256), strip)
}

// buildPalette picks the single global palette for a file: the exact color
// set when it fits, a median-cut reduction otherwise.
func buildPalette(frames []*image.NRGBA) color.Palette {
	if palette, ok := exactPalette(frames); ok {
		return palette
	}

	return sampledPalette(frames)
}
