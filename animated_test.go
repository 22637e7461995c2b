package ici

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnimatedValidation(t *testing.T) {
	_, err := NewAnimated(0, 1, 0.5, 1, NoPalette(), []byte{0})
	var ce *CountError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "width", ce.What)

	_, err = NewAnimated(1, 1, 0.5, 0, NoPalette(), nil)
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "frame count", ce.What)

	_, err = NewAnimated(1, 1, 0, 1, NoPalette(), []byte{0})
	assert.Equal(t, ErrInvalidDuration, err)

	_, err = NewAnimated(1, 1, -0.5, 1, NoPalette(), []byte{0})
	assert.Equal(t, ErrInvalidDuration, err)

	_, err = NewAnimated(2, 2, 0.5, 2, NoPalette(), make([]byte, 7))
	assert.Equal(t, ErrFrameSizeMismatch, err)

	_, err = NewAnimated(2, 2, 0.5, 2, NoPalette(), make([]byte, 9))
	assert.Equal(t, ErrFrameSizeMismatch, err)
}

func TestNewAnimatedFramesValidation(t *testing.T) {
	_, err := NewAnimatedFrames(2, 2, 0.5, nil, NoPalette())
	assert.Error(t, err)

	_, err = NewAnimatedFrames(2, 2, 0.5, [][]byte{
		{0, 1, 2, 3},
		{0, 1, 2},
	}, NoPalette())
	assert.Equal(t, ErrFrameSizeMismatch, err)

	a, err := NewAnimatedFrames(2, 2, 0.5, [][]byte{
		{0, 1, 2, 3},
		{3, 2, 1, 0},
	}, NoPalette())
	require.NoError(t, err)
	assert.Equal(t, 2, a.FrameCount())
}

func TestAnimatedFrames(t *testing.T) {
	a, err := NewAnimatedFrames(2, 1, 0.5, [][]byte{
		{0, 1},
		{1, 0},
		{1, 1},
	}, NoPalette())
	require.NoError(t, err)

	f, err := a.Frame(1)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 0}, f)

	// The returned frame is a copy.
	f[0] = 9
	f, err = a.Frame(1)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 0}, f)

	_, err = a.Frame(3)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	_, err = a.Frame(-1)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
}

func TestAnimatedImages(t *testing.T) {
	pal, err := PaletteOf([]Color{Red, Blue})
	require.NoError(t, err)

	a, err := NewAnimatedFrames(1, 1, 0.5, [][]byte{{0}, {1}, {0}}, pal)
	require.NoError(t, err)

	images := a.Images()
	require.Len(t, images, 3)

	expected := []Color{Red, Blue, Red}
	for i, m := range images {
		assert.Equal(t, 1, m.Width())
		assert.Equal(t, 1, m.Height())
		p, err := m.Pixel(0)
		require.NoError(t, err)
		c, err := m.Color(p)
		require.NoError(t, err)
		assert.Equal(t, expected[i], c)
	}

	// Each image owns its palette.
	require.NoError(t, images[0].SetColor(0, Green))
	c, err := images[2].Color(0)
	require.NoError(t, err)
	assert.Equal(t, Red, c)
}

func TestEncodeAnimatedLayout(t *testing.T) {
	a, err := NewAnimatedFrames(2, 2, 0.5, [][]byte{
		{0, 0, 1, 2},
		{1, 2, 1, 0},
	}, NoPalette())
	require.NoError(t, err)

	buf := new(bytes.Buffer)
	require.NoError(t, EncodeAnimated(buf, a))
	assert.Equal(t, []byte{
		2, 2, 2,
		0x00, 0x00, 0x00, 0x3f,
		0,
		0, 0, 1, 2,
		1, 2, 1, 0,
	}, buf.Bytes())
}

func TestDecodeAnimatedRoundTrip(t *testing.T) {
	palettes := []Palette{NoPalette(), PaletteByID(65535), testPalette(t)}

	for _, pal := range palettes {
		a, err := NewAnimatedFrames(2, 2, 0.25, [][]byte{
			{0, 0, 1, 2},
			{1, 2, 1, 0},
		}, pal)
		require.NoError(t, err)

		buf := new(bytes.Buffer)
		require.NoError(t, EncodeAnimated(buf, a))

		decoded, err := DecodeAnimated(bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, a, decoded)

		buf2 := new(bytes.Buffer)
		require.NoError(t, EncodeAnimated(buf2, decoded))
		assert.Equal(t, buf.Bytes(), buf2.Bytes())
	}
}

func TestDecodeAnimatedErrors(t *testing.T) {
	tests := []struct {
		name  string
		data  []byte
		check func(t *testing.T, err error)
	}{
		{
			"empty",
			nil,
			func(t *testing.T, err error) { assert.Equal(t, ErrUnexpectedEOF, err) },
		},
		{
			"zero frames",
			[]byte{1, 1, 0, 0, 0, 0, 0x3f, 0, 0},
			func(t *testing.T, err error) {
				var ce *CountError
				require.True(t, errors.As(err, &ce))
				assert.Equal(t, "frame count", ce.What)
			},
		},
		{
			"zero duration",
			[]byte{1, 1, 1, 0, 0, 0, 0, 0, 0},
			func(t *testing.T, err error) { assert.Equal(t, ErrInvalidDuration, err) },
		},
		{
			"negative duration",
			[]byte{1, 1, 1, 0x00, 0x00, 0x00, 0xbf, 0, 0},
			func(t *testing.T, err error) { assert.Equal(t, ErrInvalidDuration, err) },
		},
		{
			"truncated frames",
			[]byte{2, 2, 2, 0x00, 0x00, 0x00, 0x3f, 0, 0, 0, 1, 2, 1},
			func(t *testing.T, err error) { assert.Equal(t, ErrUnexpectedEOF, err) },
		},
		{
			"trailing bytes",
			[]byte{1, 1, 2, 0x00, 0x00, 0x00, 0x3f, 0, 0, 1, 9},
			func(t *testing.T, err error) { assert.Equal(t, ErrFrameSizeMismatch, err) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeAnimated(bytes.NewReader(tt.data))
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestDecodeAnimatedConfig(t *testing.T) {
	a, err := NewAnimatedFrames(2, 2, 0.25, [][]byte{
		{0, 0, 1, 2},
		{1, 2, 1, 0},
	}, testPalette(t))
	require.NoError(t, err)

	buf := new(bytes.Buffer)
	require.NoError(t, EncodeAnimated(buf, a))

	cfg, err := DecodeAnimatedConfig(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Width)
	assert.Equal(t, 2, cfg.Height)
	assert.Equal(t, 2, cfg.FrameCount)
	assert.Equal(t, float32(0.25), cfg.FrameDuration)
	assert.Equal(t, PaletteColors, cfg.Palette.Kind())
}

func TestAnimatedPaletteOperations(t *testing.T) {
	a, err := NewAnimatedFrames(2, 1, 0.5, [][]byte{
		{0, 1},
		{2, 0},
	}, NoPalette())
	require.NoError(t, err)

	require.Len(t, a.Colors(), 3)

	err = a.SetColors([]Color{Red})
	var ce *CountError
	require.True(t, errors.As(err, &ce))

	require.NoError(t, a.SetColors([]Color{Red, Green, Blue}))
	c, err := a.Color(2)
	require.NoError(t, err)
	assert.Equal(t, Blue, c)

	require.NoError(t, a.SetColorsReplace([]Color{Red, Green}, 0))
	assert.Equal(t, []byte{0, 1, 0, 0}, a.Pixels())

	a.ReplaceIndex(1, 0)
	assert.Equal(t, []byte{0, 0, 0, 0}, a.Pixels())
	assert.Equal(t, uint8(0), a.HighestIndex())
}

func TestAnimatedPlayback(t *testing.T) {
	a, err := NewAnimatedFrames(1, 1, 0.5, [][]byte{{0}, {1}, {2}}, NoPalette())
	require.NoError(t, err)

	assert.Equal(t, 0, a.CurrentFrame())
	a.Advance(0.6)
	assert.Equal(t, 1, a.CurrentFrame())
	a.Advance(1.0)
	assert.Equal(t, 0, a.CurrentFrame(), "playback loops past the last frame")

	a.Reset()
	assert.Equal(t, 0, a.CurrentFrame())

	require.NoError(t, a.SetFrameDuration(0.25))
	assert.Equal(t, float32(0.25), a.FrameDuration())
	assert.Equal(t, ErrInvalidDuration, a.SetFrameDuration(0))
}

func TestAnimatedTint(t *testing.T) {
	a, err := NewAnimatedFrames(1, 1, 0.5, [][]byte{{1}, {2}}, testPalette(t))
	require.NoError(t, err)

	a.TintAdd(10, -60, 0, 300)
	assert.Equal(t, []Color{
		NewColor(10, 0, 0, 255),
		NewColor(60, 0, 52, 255),
		NewColor(70, 1, 62, 255),
	}, a.Colors())
	assert.Equal(t, []byte{1, 2}, a.Pixels(), "pixels are untouched")

	a.TintMul(0, 0, 0, 1)
	c, err := a.Color(2)
	require.NoError(t, err)
	assert.Equal(t, NewColor(0, 0, 0, 255), c)
}

func TestAnimatedAdvanceNonFinite(t *testing.T) {
	a, err := NewAnimatedFrames(1, 1, 0.5, [][]byte{{0}, {1}, {2}}, NoPalette())
	require.NoError(t, err)

	// Non-finite deltas are ignored and must not wedge the cursor.
	a.Advance(float32(math.Inf(1)))
	assert.Equal(t, 0, a.CurrentFrame())
	a.Advance(float32(math.NaN()))
	assert.Equal(t, 0, a.CurrentFrame())
	a.Advance(-1)
	assert.Equal(t, 0, a.CurrentFrame())

	a.Advance(0.6)
	assert.Equal(t, 1, a.CurrentFrame(), "playback still advances afterwards")
}
