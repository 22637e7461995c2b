package ici

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaletteConstructors(t *testing.T) {
	assert.Equal(t, PaletteNone, NoPalette().Kind())
	assert.Equal(t, PaletteID, PaletteByID(5).Kind())
	assert.Equal(t, uint16(5), PaletteByID(5).ID())

	p, err := PaletteByName("dawn")
	require.NoError(t, err)
	assert.Equal(t, PaletteName, p.Kind())
	assert.Equal(t, "dawn", p.Name())

	p, err = PaletteOf([]Color{Red, Green})
	require.NoError(t, err)
	assert.Equal(t, PaletteColors, p.Kind())
	assert.Equal(t, []Color{Red, Green}, p.Colors())
}

func TestPaletteNameBounds(t *testing.T) {
	_, err := PaletteByName("")
	var ce *CountError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, 0, ce.Actual)

	_, err = PaletteByName(strings.Repeat("a", 255))
	assert.NoError(t, err)

	_, err = PaletteByName(strings.Repeat("a", 256))
	assert.Error(t, err)

	_, err = PaletteByName("\xff\xfe")
	assert.Equal(t, ErrInvalidUTF8, err)
}

func TestPaletteColorBounds(t *testing.T) {
	_, err := PaletteOf(nil)
	assert.Error(t, err)

	_, err = PaletteOf(make([]Color, 1))
	assert.NoError(t, err)

	_, err = PaletteOf(make([]Color, 255))
	assert.NoError(t, err)

	_, err = PaletteOf(make([]Color, 256))
	assert.Error(t, err)
}

func TestEncodePaletteLayout(t *testing.T) {
	tests := []struct {
		name     string
		palette  func() Palette
		expected []byte
	}{
		{
			"none",
			NoPalette,
			[]byte{0},
		},
		{
			"id",
			func() Palette { return PaletteByID(5) },
			[]byte{1, 5, 0},
		},
		{
			"id large",
			func() Palette { return PaletteByID(256) },
			[]byte{1, 0, 1},
		},
		{
			"name",
			func() Palette {
				p, err := PaletteByName("Test")
				require.NoError(t, err)
				return p
			},
			[]byte{2, 4, 'T', 'e', 's', 't'},
		},
		{
			"colors",
			func() Palette {
				p, err := PaletteOf([]Color{NewColor(100, 101, 102, 103), NewColor(0, 0, 0, 255)})
				require.NoError(t, err)
				return p
			},
			[]byte{3, 2, 100, 101, 102, 103, 0, 0, 0, 255},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			require.NoError(t, EncodePalette(buf, tt.palette()))
			assert.Equal(t, tt.expected, buf.Bytes())

			decoded, err := DecodePalette(bytes.NewReader(tt.expected))
			require.NoError(t, err)
			assert.Equal(t, tt.palette(), decoded)
		})
	}
}

func TestDecodePaletteErrors(t *testing.T) {
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
			"bad tag",
			[]byte{9},
			func(t *testing.T, err error) { assert.Equal(t, ErrInvalidTag, err) },
		},
		{
			"truncated id",
			[]byte{1, 5},
			func(t *testing.T, err error) { assert.Equal(t, ErrUnexpectedEOF, err) },
		},
		{
			"zero length name",
			[]byte{2, 0},
			func(t *testing.T, err error) {
				var ce *CountError
				require.True(t, errors.As(err, &ce))
				assert.Equal(t, 0, ce.Actual)
			},
		},
		{
			"truncated name",
			[]byte{2, 4, 'T'},
			func(t *testing.T, err error) { assert.Equal(t, ErrUnexpectedEOF, err) },
		},
		{
			"invalid utf8 name",
			[]byte{2, 2, 0xff, 0xfe},
			func(t *testing.T, err error) { assert.Equal(t, ErrInvalidUTF8, err) },
		},
		{
			"zero color count",
			[]byte{3, 0},
			func(t *testing.T, err error) {
				var ce *CountError
				require.True(t, errors.As(err, &ce))
				assert.Equal(t, 0, ce.Actual)
			},
		},
		{
			"truncated colors",
			[]byte{3, 2, 1, 2, 3, 4},
			func(t *testing.T, err error) { assert.Equal(t, ErrUnexpectedEOF, err) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePalette(bytes.NewReader(tt.data))
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestReduceColors(t *testing.T) {
	colors := []Color{Red, Green, Blue, White}

	// Under budget, just a copy.
	out := ReduceColors(colors, 4)
	assert.Equal(t, colors, out)

	out = ReduceColors(colors, 2)
	assert.Len(t, out, len(colors), "indices must stay valid")
	assert.True(t, distinctColors(out) <= 2)
}
