package webpdec

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"os"
	"time"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	"golang.org/x/image/webp"
	"webp2gif/internal/app/models"
	"webp2gif/internal/utils/errs"
	"webp2gif/internal/utils/logger"
)

// bitstreamDecoder decodes one frame's image chunks into pixels. Tests
// substitute it to exercise the demux and compositing paths without real
// VP8 payloads.
type bitstreamDecoder func(chunks []chunk, width, height int) (image.Image, error)

func decodeBitstream(chunks []chunk, width, height int) (image.Image, error) {
	wrapped, err := buildWebP(chunks, width, height)
	if err != nil {
		return nil, err
	}

	return webp.Decode(bytes.NewReader(wrapped))
}

// Animation is the demuxed but not yet decoded view of a WebP file. Frames
// decodes on demand and may be called any number of times; every call
// replays the timeline from the first frame.
type Animation struct {
	path   string
	size   int64
	cont   *container
	decode bitstreamDecoder
}

func (a *Animation) Source() models.SourceImage {
	return models.SourceImage{
		Path:     a.path,
		Size:     a.size,
		Animated: a.cont.animated,
	}
}

func (a *Animation) Meta() models.AnimationMeta {
	meta := models.AnimationMeta{
		Width:      a.cont.width,
		Height:     a.cont.height,
		FrameCount: 1,
		Animated:   a.cont.animated,
	}

	if !a.cont.animated {
		return meta
	}

	meta.FrameCount = len(a.cont.frames)
	meta.LoopCount = a.cont.loopCount
	var total time.Duration
	for _, fh := range a.cont.frames {
		total += fh.duration
	}
	meta.Duration = total

	return meta
}

// Frames decodes and composites the full timeline. Each returned frame is a
// complete canvas snapshot with placement, blending and disposal applied.
func (a *Animation) Frames(ctx context.Context) ([]models.Frame, error) {
	if !a.cont.animated {
		return a.stillFrame()
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, a.cont.width, a.cont.height))
	frames := make([]models.Frame, 0, len(a.cont.frames))

	for i, fh := range a.cont.frames {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		img, err := a.decode(fh.chunks, fh.width, fh.height)
		if err != nil {
			return nil, fmt.Errorf("%w: frame %d: %v", errs.ErrUnreadableFormat, i, err)
		}

		b := img.Bounds()
		if b.Dx() != fh.width || b.Dy() != fh.height {
			return nil, structural("frame %d bitstream is %dx%d, header says %dx%d",
				i, b.Dx(), b.Dy(), fh.width, fh.height)
		}

		rect := image.Rect(fh.x, fh.y, fh.x+fh.width, fh.y+fh.height)
		if fh.blend {
			draw.Draw(canvas, rect, img, b.Min, draw.Over)
		} else {
			draw.Draw(canvas, rect, img, b.Min, draw.Src)
		}

		frames = append(frames, models.Frame{
			Index:    i,
			Image:    imaging.Clone(canvas),
			Duration: fh.duration,
		})

		if fh.disposeToBackground {
			draw.Draw(canvas, rect, image.Transparent, image.Point{}, draw.Src)
		}
	}

	return frames, nil
}

func (a *Animation) stillFrame() ([]models.Frame, error) {
	img, err := a.decode(a.cont.still, a.cont.width, a.cont.height)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrUnreadableFormat, err)
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, a.cont.width, a.cont.height))
	draw.Draw(canvas, canvas.Bounds(), img, img.Bounds().Min, draw.Src)

	return []models.Frame{{Index: 0, Image: canvas, Duration: 0}}, nil
}

// Extractor implements app.FrameExtractor on top of the demuxer.
type Extractor struct {
	decode bitstreamDecoder
}

func CreateExtractor() *Extractor {
	return &Extractor{decode: decodeBitstream}
}

// Decode parses the container structure only; no pixels are decoded until
// the returned Animation's Frames is called.
func (e *Extractor) Decode(path string) (*Animation, error) {
	const funcName = "Extractor.Decode"

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("failed to read source file",
			zap.String("function", funcName),
			zap.String("path", path),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", errs.ErrIOUnavailable, err)
	}

	cont, err := demux(data)
	if err != nil {
		logger.Warn("failed to demux webp container",
			zap.String("function", funcName),
			zap.String("path", path),
			zap.Error(err))
		return nil, err
	}

	logger.Debug("webp container demuxed",
		zap.String("function", funcName),
		zap.String("path", path),
		zap.Bool("animated", cont.animated),
		zap.Int("frames", len(cont.frames)),
		zap.Int("width", cont.width),
		zap.Int("height", cont.height))

	return &Animation{
		path:   path,
		size:   int64(len(data)),
		cont:   cont,
		decode: e.decode,
	}, nil
}

func (e *Extractor) Extract(ctx context.Context, path string) (*models.Extraction, error) {
	const funcName = "Extractor.Extract"

	anim, err := e.Decode(path)
	if err != nil {
		return nil, err
	}

	frames, err := anim.Frames(ctx)
	if err != nil {
		logger.Warn("failed to extract frames",
			zap.String("function", funcName),
			zap.String("path", path),
			zap.Error(err))
		return nil, err
	}

	return &models.Extraction{
		Source: anim.Source(),
		Meta:   anim.Meta(),
		Frames: frames,
	}, nil
}
