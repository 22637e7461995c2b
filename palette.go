package ici

import (
	"image"
	"image/color"
	"unicode/utf8"

	"github.com/ericpauley/go-quantize/quantize"
)

// PaletteKind selects how palette data is stored in a file.
type PaletteKind uint8

const (
	// PaletteNone stores no palette information.
	PaletteNone PaletteKind = iota
	// PaletteID stores a numeric reference to an external palette.
	PaletteID
	// PaletteName stores the name of an external palette.
	PaletteName
	// PaletteColors stores the palette colors themselves.
	PaletteColors
)

// Palette describes how an image's colors are supplied: not at all, by
// reference to an external palette, or as an explicit color list. The
// zero value is PaletteNone.
type Palette struct {
	kind   PaletteKind
	id     uint16
	name   string
	colors []Color
}

// NoPalette returns a palette carrying no data.
func NoPalette() Palette {
	return Palette{}
}

// PaletteByID returns a palette referring to an external palette by ID.
func PaletteByID(id uint16) Palette {
	return Palette{kind: PaletteID, id: id}
}

// PaletteByName returns a palette referring to an external palette by
// name. The name must be valid UTF-8 of 1 to 255 bytes.
func PaletteByName(name string) (Palette, error) {
	if err := checkCount("palette name length", len(name)); err != nil {
		return Palette{}, err
	}
	if !utf8.ValidString(name) {
		return Palette{}, ErrInvalidUTF8
	}
	return Palette{kind: PaletteName, name: name}, nil
}

// PaletteOf returns a palette holding a copy of the given 1 to 255 colors.
func PaletteOf(colors []Color) (Palette, error) {
	if err := checkCount("palette color count", len(colors)); err != nil {
		return Palette{}, err
	}
	return Palette{kind: PaletteColors, colors: append([]Color(nil), colors...)}, nil
}

// Kind returns which variant the palette holds.
func (p Palette) Kind() PaletteKind {
	return p.kind
}

// ID returns the external palette ID for a PaletteID palette, zero
// otherwise.
func (p Palette) ID() uint16 {
	return p.id
}

// Name returns the external palette name for a PaletteName palette, empty
// otherwise.
func (p Palette) Name() string {
	return p.name
}

// Colors returns a copy of the color list for a PaletteColors palette,
// nil otherwise.
func (p Palette) Colors() []Color {
	if p.kind != PaletteColors {
		return nil
	}
	return append([]Color(nil), p.colors...)
}

// synthesizePalette builds the default palette for an image whose file
// carried no colors: fully transparent entries covering the highest index
// used, never empty.
func synthesizePalette(pixels []byte) []Color {
	return make([]Color, int(highestIndex(pixels))+1)
}

// ReduceColors merges the colors of a palette until no more than max
// distinct colors remain. The result has the same length as the input so
// pixel indices remain valid; merged entries become duplicates.
func ReduceColors(colors []Color, max int) []Color {
	if max < 1 || distinctColors(colors) <= max {
		return append([]Color(nil), colors...)
	}

	// Lay the palette out as an image so the quantizer can chew on it.
	m := image.NewNRGBA(image.Rect(0, 0, len(colors), 1))
	for i, c := range colors {
		m.SetNRGBA(i, 0, c.Std())
	}

	q := quantize.MedianCutQuantizer{}
	reduced := q.Quantize(make(color.Palette, 0, max), m)

	out := make([]Color, len(colors))
	for i, c := range colors {
		out[i] = FromStd(reduced.Convert(c.Std()))
	}
	return out
}

func distinctColors(colors []Color) int {
	seen := make(map[Color]struct{}, len(colors))
	for _, c := range colors {
		seen[c] = struct{}{}
	}
	return len(seen)
}
