package ici

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapperStatic(t *testing.T) {
	m, err := New(2, 3, testPalette(t), []byte{0, 1, 2, 0, 1, 2})
	require.NoError(t, err)
	w := Wrap(m)

	assert.False(t, w.IsAnimated())
	assert.Equal(t, 2, w.Width())
	assert.Equal(t, 3, w.Height())
	assert.Equal(t, 1, w.FrameCount())
	assert.Equal(t, m.Colors(), w.Colors())
	assert.Equal(t, PaletteColors, w.Palette().Kind())

	f, err := w.Frame(0)
	require.NoError(t, err)
	assert.Equal(t, m.Pixels(), f)

	_, err = w.Frame(1)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))

	s, ok := w.Static()
	assert.True(t, ok)
	assert.Equal(t, m, s)
	_, ok = w.Animated()
	assert.False(t, ok)
}

func TestWrapperAnimated(t *testing.T) {
	a, err := NewAnimatedFrames(1, 2, 0.5, [][]byte{
		{0, 1},
		{1, 0},
	}, NoPalette())
	require.NoError(t, err)
	w := WrapAnimated(a)

	assert.True(t, w.IsAnimated())
	assert.Equal(t, 1, w.Width())
	assert.Equal(t, 2, w.Height())
	assert.Equal(t, 2, w.FrameCount())

	f, err := w.Frame(1)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 0}, f)

	_, ok := w.Static()
	assert.False(t, ok)
	held, ok := w.Animated()
	assert.True(t, ok)
	assert.Equal(t, a, held)
}

func TestWrapperTransformsKeepKind(t *testing.T) {
	m, err := New(2, 3, NoPalette(), []byte{0, 1, 2, 3, 4, 5})
	require.NoError(t, err)
	a, err := NewAnimatedFrames(2, 3, 0.5, [][]byte{{0, 1, 2, 3, 4, 5}}, NoPalette())
	require.NoError(t, err)

	for _, w := range []Wrapper{Wrap(m), WrapAnimated(a)} {
		rotated := w.Rotate90()
		assert.Equal(t, w.IsAnimated(), rotated.IsAnimated())
		assert.Equal(t, 3, rotated.Width())
		assert.Equal(t, 2, rotated.Height())

		flipped := w.FlipHorizontal().FlipHorizontal()
		f0, err := flipped.Frame(0)
		require.NoError(t, err)
		w0, err := w.Frame(0)
		require.NoError(t, err)
		assert.Equal(t, w0, f0)

		back := w.Rotate90().Rotate90().Rotate180()
		b0, err := back.Frame(0)
		require.NoError(t, err)
		assert.Equal(t, w0, b0)

		same := w.FlipVertical().FlipVertical()
		s0, err := same.Frame(0)
		require.NoError(t, err)
		assert.Equal(t, w0, s0)

		r270 := w.Rotate270()
		assert.Equal(t, 3, r270.Width())
	}
}

func TestWrapperRecolor(t *testing.T) {
	m, err := New(2, 2, NoPalette(), []byte{0, 1, 1, 2})
	require.NoError(t, err)
	w := Wrap(m)

	w.ReplaceIndex(1, 0)
	f, err := w.Frame(0)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 2}, f)

	require.NoError(t, w.SetColors([]Color{Red, Green, Blue}))
	require.NoError(t, w.SetColor(2, White))
	c, err := w.Color(2)
	require.NoError(t, err)
	assert.Equal(t, White, c)
}

func TestWrapperSetColorsReplace(t *testing.T) {
	m, err := New(2, 2, NoPalette(), []byte{0, 1, 1, 2})
	require.NoError(t, err)
	a, err := NewAnimatedFrames(2, 2, 0.5, [][]byte{{0, 1, 1, 2}}, NoPalette())
	require.NoError(t, err)

	for _, w := range []Wrapper{Wrap(m), WrapAnimated(a)} {
		err := w.SetColorsReplace([]Color{Red}, 1)
		assert.True(t, errors.Is(err, ErrIndexOutOfRange))

		require.NoError(t, w.SetColorsReplace([]Color{Red, Green}, 0))
		f, err := w.Frame(0)
		require.NoError(t, err)
		assert.Equal(t, []byte{0, 1, 1, 0}, f)
		assert.Equal(t, []Color{Red, Green}, w.Colors())
	}
}

func TestWrapperSetColorsExtend(t *testing.T) {
	m, err := New(2, 2, NoPalette(), []byte{0, 1, 1, 2})
	require.NoError(t, err)
	a, err := NewAnimatedFrames(2, 2, 0.5, [][]byte{{0, 1, 1, 2}}, NoPalette())
	require.NoError(t, err)

	for _, w := range []Wrapper{Wrap(m), WrapAnimated(a)} {
		require.NoError(t, w.SetColorsExtend([]Color{Red}, Blue))
		assert.Equal(t, []Color{Red, Blue, Blue}, w.Colors())
		f, err := w.Frame(0)
		require.NoError(t, err)
		assert.Equal(t, []byte{0, 1, 1, 2}, f, "pixels are untouched")
	}
}

func TestWrapperAdvance(t *testing.T) {
	a, err := NewAnimatedFrames(1, 1, 0.5, [][]byte{{0}, {1}}, NoPalette())
	require.NoError(t, err)

	w := WrapAnimated(a)
	w.Advance(0.6)
	assert.Equal(t, 1, a.CurrentFrame())

	m, err := New(1, 1, NoPalette(), []byte{0})
	require.NoError(t, err)
	// No-op for a static image.
	Wrap(m).Advance(0.6)
}
