package ici

import (
	"fmt"
	"image"
	"image/color"
)

// Image is a single frame of palette-indexed pixels. Its palette is
// either the color list carried by the file it was decoded from, or a
// fully transparent placeholder covering every index the pixels use.
type Image struct {
	width, height uint8
	pal           Palette
	colors        []Color
	pixels        []byte
	highest       uint8
}

// New returns an image of the given dimensions over a copy of pixels,
// which must hold exactly width*height palette indices. If pal carries no
// colors the image palette is synthesized as transparent entries covering
// the highest index used.
func New(width, height uint8, pal Palette, pixels []byte) (*Image, error) {
	if err := checkCount("width", int(width)); err != nil {
		return nil, err
	}
	if err := checkCount("height", int(height)); err != nil {
		return nil, err
	}
	if len(pixels) != int(width)*int(height) {
		return nil, ErrDimensionMismatch
	}
	return NewUnchecked(width, height, pal, pixels), nil
}

// NewUnchecked is New without the dimension and length cross-checks. The
// caller must guarantee pixels holds exactly width*height bytes and both
// dimensions are non-zero; transforms and encoding misbehave otherwise.
func NewUnchecked(width, height uint8, pal Palette, pixels []byte) *Image {
	m := &Image{
		width:   width,
		height:  height,
		pixels:  append([]byte(nil), pixels...),
		highest: highestIndex(pixels),
	}
	if pal.Kind() == PaletteColors {
		// The color list lives on the image so palette edits stick;
		// only the kind is kept.
		m.colors = pal.Colors()
		m.pal = Palette{kind: PaletteColors}
	} else {
		m.colors = synthesizePalette(pixels)
		m.pal = pal
	}
	return m
}

// Blank returns an image of the given dimensions with every pixel at
// index zero and the given colors as its palette.
func Blank(width, height uint8, colors []Color) (*Image, error) {
	pal, err := PaletteOf(colors)
	if err != nil {
		return nil, err
	}
	return New(width, height, pal, make([]byte, int(width)*int(height)))
}

// Width returns the image width in pixels.
func (m *Image) Width() int {
	return int(m.width)
}

// Height returns the image height in pixels.
func (m *Image) Height() int {
	return int(m.height)
}

// Palette returns how the image's colors are stored when encoded.
func (m *Image) Palette() Palette {
	if m.pal.Kind() == PaletteColors {
		return Palette{kind: PaletteColors, colors: append([]Color(nil), m.colors...)}
	}
	return m.pal
}

// Colors returns a copy of the image's palette colors.
func (m *Image) Colors() []Color {
	return append([]Color(nil), m.colors...)
}

// Pixels returns a copy of the image's palette indices in row order.
func (m *Image) Pixels() []byte {
	return append([]byte(nil), m.pixels...)
}

// PixelIndex returns the buffer offset of the pixel at x, y.
func (m *Image) PixelIndex(x, y int) (int, error) {
	if x < 0 || x >= int(m.width) {
		return 0, fmt.Errorf("%w: x %d of width %d", ErrIndexOutOfRange, x, m.width)
	}
	if y < 0 || y >= int(m.height) {
		return 0, fmt.Errorf("%w: y %d of height %d", ErrIndexOutOfRange, y, m.height)
	}
	return y*int(m.width) + x, nil
}

// Pixel returns the palette index stored at buffer offset i.
func (m *Image) Pixel(i int) (uint8, error) {
	if i < 0 || i >= len(m.pixels) {
		return 0, fmt.Errorf("%w: pixel %d of %d", ErrIndexOutOfRange, i, len(m.pixels))
	}
	return m.pixels[i], nil
}

// SetPixel stores the palette index idx at buffer offset i.
func (m *Image) SetPixel(i int, idx uint8) error {
	if i < 0 || i >= len(m.pixels) {
		return fmt.Errorf("%w: pixel %d of %d", ErrIndexOutOfRange, i, len(m.pixels))
	}
	if int(idx) >= len(m.colors) {
		return fmt.Errorf("%w: palette index %d of %d", ErrIndexOutOfRange, idx, len(m.colors))
	}
	m.pixels[i] = idx
	if idx > m.highest {
		m.highest = idx
	}
	return nil
}

// Color returns the palette color at slot idx.
func (m *Image) Color(idx uint8) (Color, error) {
	if int(idx) >= len(m.colors) {
		return Color{}, fmt.Errorf("%w: palette index %d of %d", ErrIndexOutOfRange, idx, len(m.colors))
	}
	return m.colors[idx], nil
}

// SetColor replaces the palette color at slot idx, leaving every pixel
// index untouched.
func (m *Image) SetColor(idx uint8, c Color) error {
	if int(idx) >= len(m.colors) {
		return fmt.Errorf("%w: palette index %d of %d", ErrIndexOutOfRange, idx, len(m.colors))
	}
	m.colors[idx] = c
	return nil
}

// ReplaceIndex rewrites every pixel holding the index old to the index
// new, leaving the palette untouched.
func (m *Image) ReplaceIndex(old, new uint8) {
	replaceIndexPixels(m.pixels, old, new)
	m.highest = highestIndex(m.pixels)
}

// HighestIndex returns the highest palette index any pixel uses, which is
// the minimum palette size minus one the image can display with.
func (m *Image) HighestIndex() uint8 {
	return m.highest
}

// SetColors replaces the image palette. It fails if the new palette is
// too small for the indices the pixels use.
func (m *Image) SetColors(colors []Color) error {
	if err := checkCount("palette color count", len(colors)); err != nil {
		return err
	}
	if len(colors) <= int(m.highest) {
		return &CountError{What: "palette color count", Min: int(m.highest) + 1, Max: 255, Actual: len(colors)}
	}
	m.colors = append([]Color(nil), colors...)
	m.pal = Palette{kind: PaletteColors}
	return nil
}

// SetColorsReplace replaces the image palette, rewriting any pixel whose
// index falls outside the new palette to idx. It fails if idx itself is
// outside the new palette.
func (m *Image) SetColorsReplace(colors []Color, idx uint8) error {
	if err := checkCount("palette color count", len(colors)); err != nil {
		return err
	}
	if int(idx) >= len(colors) {
		return fmt.Errorf("%w: palette index %d of %d", ErrIndexOutOfRange, idx, len(colors))
	}
	for i, p := range m.pixels {
		if int(p) >= len(colors) {
			m.pixels[i] = idx
		}
	}
	m.highest = highestIndex(m.pixels)
	m.colors = append([]Color(nil), colors...)
	m.pal = Palette{kind: PaletteColors}
	return nil
}

// SetColorsExtend replaces the image palette, padding it with fill until
// it covers every index the pixels use.
func (m *Image) SetColorsExtend(colors []Color, fill Color) error {
	padded := append([]Color(nil), colors...)
	for len(padded) <= int(m.highest) {
		padded = append(padded, fill)
	}
	if err := checkCount("palette color count", len(padded)); err != nil {
		return err
	}
	m.colors = padded
	m.pal = Palette{kind: PaletteColors}
	return nil
}

// TintAdd offsets each channel of every palette color by the given
// amount, clamped to 0-255. Pixel indices are untouched.
func (m *Image) TintAdd(r, g, b, a int) {
	for i, c := range m.colors {
		m.colors[i] = c.TintAdd(r, g, b, a)
	}
}

// TintMul multiplies each channel of every palette color by the given
// factor, clamped to 0-255. Pixel indices are untouched.
func (m *Image) TintMul(r, g, b, a float32) {
	for i, c := range m.colors {
		m.colors[i] = c.TintMul(r, g, b, a)
	}
}

func (m *Image) withPixels(pixels []byte, width, height uint8) *Image {
	return &Image{
		width:   width,
		height:  height,
		pal:     m.pal,
		colors:  append([]Color(nil), m.colors...),
		pixels:  pixels,
		highest: m.highest,
	}
}

// FlipHorizontal returns a copy of the image mirrored left to right.
func (m *Image) FlipHorizontal() *Image {
	return m.withPixels(flipHorizontalPixels(m.pixels, m.Width(), m.Height()), m.width, m.height)
}

// FlipVertical returns a copy of the image mirrored top to bottom.
func (m *Image) FlipVertical() *Image {
	return m.withPixels(flipVerticalPixels(m.pixels, m.Width(), m.Height()), m.width, m.height)
}

// Rotate90 returns a copy of the image rotated a quarter turn, with
// width and height swapped.
func (m *Image) Rotate90() *Image {
	return m.withPixels(rotate90Pixels(m.pixels, m.Width(), m.Height()), m.height, m.width)
}

// Rotate180 returns a copy of the image rotated a half turn.
func (m *Image) Rotate180() *Image {
	return m.withPixels(rotate180Pixels(m.pixels, m.Width(), m.Height()), m.width, m.height)
}

// Rotate270 returns a copy of the image rotated three quarter turns, with
// width and height swapped.
func (m *Image) Rotate270() *Image {
	return m.withPixels(rotate270Pixels(m.pixels, m.Width(), m.Height()), m.height, m.width)
}

// Paletted returns the image as a stdlib paletted image sharing no
// storage with the original.
func (m *Image) Paletted() *image.Paletted {
	p := make(color.Palette, len(m.colors))
	for i, c := range m.colors {
		p[i] = c.Std()
	}
	out := image.NewPaletted(image.Rect(0, 0, m.Width(), m.Height()), p)
	copy(out.Pix, m.pixels)
	return out
}

// FromPaletted converts a stdlib paletted image. It fails if either
// dimension or the palette is outside the 1-255 bound.
func FromPaletted(p *image.Paletted) (*Image, error) {
	b := p.Bounds()
	if err := checkCount("width", b.Dx()); err != nil {
		return nil, err
	}
	if err := checkCount("height", b.Dy()); err != nil {
		return nil, err
	}
	colors := make([]Color, len(p.Palette))
	for i, c := range p.Palette {
		colors[i] = FromStd(c)
	}
	pal, err := PaletteOf(colors)
	if err != nil {
		return nil, err
	}
	pixels := make([]byte, b.Dx()*b.Dy())
	for y := 0; y < b.Dy(); y++ {
		copy(pixels[y*b.Dx():(y+1)*b.Dx()], p.Pix[y*p.Stride:])
	}
	return New(uint8(b.Dx()), uint8(b.Dy()), pal, pixels)
}
