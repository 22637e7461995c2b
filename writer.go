package ici

import (
	"encoding/binary"
	"io"
	"math"
)

type encoder struct {
	w io.Writer
}

func (e *encoder) write(b []byte) error {
	_, err := e.w.Write(b)
	return err
}

// writePalette writes the palette block. For a PaletteColors palette the
// payload comes from colors, the effective palette of the image being
// written, so palette edits made after construction are what end up on
// the wire.
func (e *encoder) writePalette(p Palette, colors []Color) error {
	switch p.Kind() {
	case PaletteNone:
		return e.write([]byte{byte(PaletteNone)})
	case PaletteID:
		var tmp [3]byte
		tmp[0] = byte(PaletteID)
		binary.LittleEndian.PutUint16(tmp[1:], p.ID())
		return e.write(tmp[:])
	case PaletteName:
		if err := checkCount("palette name length", len(p.Name())); err != nil {
			return err
		}
		if err := e.write([]byte{byte(PaletteName), byte(len(p.Name()))}); err != nil {
			return err
		}
		return e.write([]byte(p.Name()))
	case PaletteColors:
		if err := checkCount("palette color count", len(colors)); err != nil {
			return err
		}
		buf := make([]byte, 2, 2+len(colors)*4)
		buf[0] = byte(PaletteColors)
		buf[1] = byte(len(colors))
		for _, c := range colors {
			buf = append(buf, c.R, c.G, c.B, c.A)
		}
		return e.write(buf)
	}
	return ErrInvalidTag
}

// EncodePalette writes p to w as a palette block.
func EncodePalette(w io.Writer, p Palette) error {
	e := encoder{w: w}
	return e.writePalette(p, p.colors)
}

// Encode writes the static image m to w. Encoding an image built through
// the validated constructors cannot fail other than through w.
func Encode(w io.Writer, m *Image) error {
	e := encoder{w: w}
	if err := e.write([]byte{m.width, m.height}); err != nil {
		return err
	}
	if err := e.writePalette(m.pal, m.colors); err != nil {
		return err
	}
	return e.write(m.pixels)
}

// EncodeAnimated writes the animated image a to w. Encoding an image
// built through the validated constructors cannot fail other than
// through w.
func EncodeAnimated(w io.Writer, a *Animated) error {
	e := encoder{w: w}
	var head [7]byte
	head[0] = a.width
	head[1] = a.height
	head[2] = a.frameCount
	binary.LittleEndian.PutUint32(head[3:], math.Float32bits(a.duration))
	if err := e.write(head[:]); err != nil {
		return err
	}
	if err := e.writePalette(a.pal, a.colors); err != nil {
		return err
	}
	return e.write(a.pixels)
}
