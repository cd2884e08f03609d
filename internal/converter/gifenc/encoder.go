package gifenc

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"time"

	"go.uber.org/zap"
	"webp2gif/internal/app/models"
	"webp2gif/internal/utils/errs"
	"webp2gif/internal/utils/logger"
)

const (
	delayUnit = 10 * time.Millisecond
	// GIF stores delays as uint16 centiseconds.
	maxDelayCS = 65535
)

// delayCentiseconds converts a frame duration to GIF's centisecond unit,
// rounding half up. Durations under 5ms become 0, GIF's "unspecified" delay.
func delayCentiseconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}

	cs := int((d + delayUnit/2) / delayUnit)
	if cs > maxDelayCS {
		return maxDelayCS
	}
	return cs
}

// gifLoopCount maps WebP loop semantics (0 = forever, n = play n times) to
// image/gif's (0 = forever, -1 = once, n = play n+1 times).
func gifLoopCount(webpLoops int) int {
	switch {
	case webpLoops <= 0:
		return 0
	case webpLoops == 1:
		return -1
	default:
		return webpLoops - 1
	}
}

type Encoder struct{}

func CreateEncoder() *Encoder {
	return &Encoder{}
}

// Encode assembles composited frames into a complete GIF byte stream with
// one global palette.
func (e *Encoder) Encode(frames []models.Frame, meta models.AnimationMeta) ([]byte, error) {
	const funcName = "Encoder.Encode"

	if len(frames) == 0 {
		return nil, fmt.Errorf("%w: no frames to encode", errs.ErrEncodingFailed)
	}
	if meta.Width <= 0 || meta.Height <= 0 {
		return nil, fmt.Errorf("%w: invalid canvas size %dx%d", errs.ErrEncodingFailed, meta.Width, meta.Height)
	}

	flattened := make([]*image.NRGBA, len(frames))
	for i, f := range frames {
		if f.Image == nil {
			return nil, fmt.Errorf("%w: frame %d has no pixels", errs.ErrEncodingFailed, i)
		}
		if f.Image.Bounds().Dx() != meta.Width || f.Image.Bounds().Dy() != meta.Height {
			return nil, fmt.Errorf("%w: frame %d is %dx%d, canvas is %dx%d", errs.ErrEncodingFailed,
				i, f.Image.Bounds().Dx(), f.Image.Bounds().Dy(), meta.Width, meta.Height)
		}
		flattened[i] = flattenWhite(f.Image)
	}

	palette := buildPalette(flattened)

	out := &gif.GIF{
		Image:     make([]*image.Paletted, 0, len(frames)),
		Delay:     make([]int, 0, len(frames)),
		Disposal:  make([]byte, len(frames)),
		LoopCount: gifLoopCount(meta.LoopCount),
		Config: image.Config{
			ColorModel: palette,
			Width:      meta.Width,
			Height:     meta.Height,
		},
	}
	for i := range out.Disposal {
		out.Disposal[i] = gif.DisposalNone
	}

	for i, frame := range flattened {
		paletted := image.NewPaletted(frame.Bounds(), palette)
		draw.FloydSteinberg.Draw(paletted, frame.Bounds(), frame, image.Point{})
		out.Image = append(out.Image, paletted)
		out.Delay = append(out.Delay, delayCentiseconds(frames[i].Duration))
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, out); err != nil {
		logger.Warn("gif encoding failed",
			zap.String("function", funcName),
			zap.Int("frames", len(frames)),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", errs.ErrEncodingFailed, err)
	}

	logger.Debug("gif encoded",
		zap.String("function", funcName),
		zap.Int("frames", len(frames)),
		zap.Int("palette_size", len(palette)),
		zap.Int("loop_count", out.LoopCount),
		zap.Int("bytes", buf.Len()))

	return buf.Bytes(), nil
}
