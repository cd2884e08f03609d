package gifenc

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"webp2gif/internal/app/models"
	"webp2gif/internal/utils/errs"
	"webp2gif/internal/utils/logger"
	"webp2gif/internal/utils/validate"
)

func TestMain(m *testing.M) {
	logger.InitTestLogger()
	m.Run()
}

func solidFrame(index, w, h int, c color.NRGBA, d time.Duration) models.Frame {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}

	return models.Frame{Index: index, Image: img, Duration: d}
}

func staticMeta(w, h int) models.AnimationMeta {
	return models.AnimationMeta{Width: w, Height: h, FrameCount: 1}
}

func animMeta(w, h, frames, loops int) models.AnimationMeta {
	return models.AnimationMeta{Width: w, Height: h, FrameCount: frames, LoopCount: loops, Animated: true}
}

func assertPixel(t *testing.T, img image.Image, x, y int, want color.NRGBA) {
	t.Helper()

	gr, gg, gb, ga := img.At(x, y).RGBA()
	wr, wg, wb, wa := want.RGBA()
	if gr != wr || gg != wg || gb != wb || ga != wa {
		t.Errorf("pixel (%d,%d) = %v, want %v", x, y, img.At(x, y), want)
	}
}

func TestDelayCentiseconds(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		want     int
	}{
		{
			name:     "zero",
			duration: 0,
			want:     0,
		},
		{
			name:     "belowHalfUnit",
			duration: 4 * time.Millisecond,
			want:     0,
		},
		{
			name:     "exactlyHalfUnit",
			duration: 5 * time.Millisecond,
			want:     1,
		},
		{
			name:     "oneUnit",
			duration: 10 * time.Millisecond,
			want:     1,
		},
		{
			name:     "roundsDown",
			duration: 94 * time.Millisecond,
			want:     9,
		},
		{
			name:     "roundsUp",
			duration: 95 * time.Millisecond,
			want:     10,
		},
		{
			name:     "typicalFrame",
			duration: 100 * time.Millisecond,
			want:     10,
		},
		{
			name:     "oneSecond",
			duration: time.Second,
			want:     100,
		},
		{
			name:     "clampedToFieldWidth",
			duration: 20 * time.Hour,
			want:     maxDelayCS,
		},
		{
			name:     "negative",
			duration: -time.Second,
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, delayCentiseconds(tt.duration))
		})
	}
}

func TestGifLoopCount(t *testing.T) {
	tests := []struct {
		name      string
		webpLoops int
		want      int
	}{
		{
			name:      "forever",
			webpLoops: 0,
			want:      0,
		},
		{
			name:      "once",
			webpLoops: 1,
			want:      -1,
		},
		{
			name:      "twice",
			webpLoops: 2,
			want:      1,
		},
		{
			name:      "fiveTimes",
			webpLoops: 5,
			want:      4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gifLoopCount(tt.webpLoops))
		})
	}
}

func TestEncodeStaticSingleFrame(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	data, err := CreateEncoder().Encode([]models.Frame{solidFrame(0, 6, 4, red, 0)}, staticMeta(6, 4))
	require.NoError(t, err)
	assert.True(t, validate.SniffGIF(data))

	decoded, err := gif.DecodeAll(bytes.NewReader(data))
	require.NoError(t, err)

	require.Len(t, decoded.Image, 1)
	assert.Equal(t, 0, decoded.Delay[0])
	assert.Equal(t, 6, decoded.Config.Width)
	assert.Equal(t, 4, decoded.Config.Height)
	assertPixel(t, decoded.Image[0], 0, 0, red)
	assertPixel(t, decoded.Image[0], 5, 3, red)
}

func TestEncodeAnimatedRoundTrip(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	green := color.NRGBA{G: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}

	frames := []models.Frame{
		solidFrame(0, 4, 4, red, 40*time.Millisecond),
		solidFrame(1, 4, 4, green, 60*time.Millisecond),
		solidFrame(2, 4, 4, blue, 125*time.Millisecond),
	}

	data, err := CreateEncoder().Encode(frames, animMeta(4, 4, 3, 3))
	require.NoError(t, err)

	decoded, err := gif.DecodeAll(bytes.NewReader(data))
	require.NoError(t, err)

	require.Len(t, decoded.Image, 3)
	assert.Equal(t, []int{4, 6, 13}, decoded.Delay)
	assert.Equal(t, 2, decoded.LoopCount)

	assertPixel(t, decoded.Image[0], 1, 1, red)
	assertPixel(t, decoded.Image[1], 1, 1, green)
	assertPixel(t, decoded.Image[2], 1, 1, blue)
}

func TestEncodeFrameOrderPreserved(t *testing.T) {
	colors := []color.NRGBA{
		{R: 10, G: 20, B: 30, A: 255},
		{R: 40, G: 50, B: 60, A: 255},
		{R: 70, G: 80, B: 90, A: 255},
		{R: 100, G: 110, B: 120, A: 255},
	}

	frames := make([]models.Frame, len(colors))
	for i, c := range colors {
		frames[i] = solidFrame(i, 2, 2, c, 50*time.Millisecond)
	}

	data, err := CreateEncoder().Encode(frames, animMeta(2, 2, len(colors), 0))
	require.NoError(t, err)

	decoded, err := gif.DecodeAll(bytes.NewReader(data))
	require.NoError(t, err)

	require.Len(t, decoded.Image, len(colors))
	for i, c := range colors {
		assertPixel(t, decoded.Image[i], 0, 0, c)
	}
	assert.Equal(t, 0, decoded.LoopCount)
}

func TestEncodeDurationRoundTripWithinOneUnit(t *testing.T) {
	durations := []time.Duration{
		33 * time.Millisecond,
		47 * time.Millisecond,
		111 * time.Millisecond,
		999 * time.Millisecond,
	}

	frames := make([]models.Frame, len(durations))
	for i, d := range durations {
		frames[i] = solidFrame(i, 2, 2, color.NRGBA{R: byte(i * 40), A: 255}, d)
	}

	data, err := CreateEncoder().Encode(frames, animMeta(2, 2, len(durations), 0))
	require.NoError(t, err)

	decoded, err := gif.DecodeAll(bytes.NewReader(data))
	require.NoError(t, err)

	require.Len(t, decoded.Delay, len(durations))
	for i, d := range durations {
		stored := time.Duration(decoded.Delay[i]) * 10 * time.Millisecond
		diff := stored - d
		if diff < 0 {
			diff = -diff
		}
		assert.LessOrEqual(t, diff, 10*time.Millisecond, "frame %d", i)
	}
}

func TestEncodeLoopOnceOmitsRepeatBlock(t *testing.T) {
	frames := []models.Frame{
		solidFrame(0, 2, 2, color.NRGBA{R: 255, A: 255}, 40*time.Millisecond),
		solidFrame(1, 2, 2, color.NRGBA{G: 255, A: 255}, 40*time.Millisecond),
	}

	data, err := CreateEncoder().Encode(frames, animMeta(2, 2, 2, 1))
	require.NoError(t, err)

	decoded, err := gif.DecodeAll(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, -1, decoded.LoopCount)
}

func TestEncodeTransparencyFlattensToWhite(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	// Remaining pixels stay fully transparent.

	data, err := CreateEncoder().Encode([]models.Frame{{Index: 0, Image: img}}, staticMeta(2, 2))
	require.NoError(t, err)

	decoded, err := gif.DecodeAll(bytes.NewReader(data))
	require.NoError(t, err)

	assertPixel(t, decoded.Image[0], 0, 0, color.NRGBA{R: 255, A: 255})
	assertPixel(t, decoded.Image[0], 1, 0, white)
	assertPixel(t, decoded.Image[0], 0, 1, white)
	assertPixel(t, decoded.Image[0], 1, 1, white)
}

func TestEncodeManyColorsQuantized(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: byte(x * 8), G: byte(y * 8), B: byte((x + y) * 4), A: 255})
		}
	}

	data, err := CreateEncoder().Encode([]models.Frame{{Index: 0, Image: img}}, staticMeta(32, 32))
	require.NoError(t, err)

	decoded, err := gif.DecodeAll(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, decoded.Image, 1)
	assert.LessOrEqual(t, len(decoded.Image[0].Palette), 256)
}

func TestEncodeDeterministic(t *testing.T) {
	frames := []models.Frame{
		solidFrame(0, 8, 8, color.NRGBA{R: 200, G: 10, B: 30, A: 255}, 70*time.Millisecond),
		solidFrame(1, 8, 8, color.NRGBA{R: 20, G: 180, B: 90, A: 255}, 70*time.Millisecond),
	}

	first, err := CreateEncoder().Encode(frames, animMeta(8, 8, 2, 0))
	require.NoError(t, err)
	second, err := CreateEncoder().Encode(frames, animMeta(8, 8, 2, 0))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEncodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		frames []models.Frame
		meta   models.AnimationMeta
	}{
		{
			name:   "noFrames",
			frames: nil,
			meta:   staticMeta(2, 2),
		},
		{
			name:   "nilImage",
			frames: []models.Frame{{Index: 0, Image: nil}},
			meta:   staticMeta(2, 2),
		},
		{
			name:   "frameCanvasMismatch",
			frames: []models.Frame{solidFrame(0, 3, 3, color.NRGBA{A: 255}, 0)},
			meta:   staticMeta(2, 2),
		},
		{
			name:   "invalidCanvas",
			frames: []models.Frame{solidFrame(0, 2, 2, color.NRGBA{A: 255}, 0)},
			meta:   staticMeta(0, 2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateEncoder().Encode(tt.frames, tt.meta)
			assert.ErrorIs(t, err, errs.ErrEncodingFailed)
		})
	}
}

func TestExactPalette(t *testing.T) {
	frames := []*image.NRGBA{
		solidFrame(0, 2, 2, color.NRGBA{R: 255, A: 255}, 0).Image,
		solidFrame(1, 2, 2, color.NRGBA{B: 255, A: 255}, 0).Image,
	}

	palette, ok := exactPalette(frames)
	require.True(t, ok)
	require.Len(t, palette, 2)

	// Sorted by packed RGB: blue before red.
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, palette[0])
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, palette[1])
}

func TestExactPaletteOverflows(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: byte(x), G: byte(y), B: byte(x ^ y), A: 255})
		}
	}

	_, ok := exactPalette([]*image.NRGBA{img})
	assert.False(t, ok)
}

func TestEncodeSingleColor(t *testing.T) {
	data, err := CreateEncoder().Encode([]models.Frame{solidFrame(0, 3, 3, white, 0)}, staticMeta(3, 3))
	require.NoError(t, err)

	decoded, err := gif.DecodeAll(bytes.NewReader(data))
	require.NoError(t, err)
	assertPixel(t, decoded.Image[0], 1, 1, white)
}
