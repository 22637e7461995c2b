package ici

import (
	"encoding/binary"
	"io"
	"math"
	"unicode/utf8"
)

type decoder struct {
	r io.Reader
}

func (d *decoder) readFull(b []byte) error {
	if _, err := io.ReadFull(d.r, b); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return ErrUnexpectedEOF
		}
		return err
	}
	return nil
}

func (d *decoder) readByte() (byte, error) {
	var tmp [1]byte
	if err := d.readFull(tmp[:]); err != nil {
		return 0, err
	}
	return tmp[0], nil
}

func (d *decoder) readPalette() (Palette, error) {
	tag, err := d.readByte()
	if err != nil {
		return Palette{}, err
	}
	switch PaletteKind(tag) {
	case PaletteNone:
		return NoPalette(), nil
	case PaletteID:
		var tmp [2]byte
		if err := d.readFull(tmp[:]); err != nil {
			return Palette{}, err
		}
		return PaletteByID(binary.LittleEndian.Uint16(tmp[:])), nil
	case PaletteName:
		n, err := d.readByte()
		if err != nil {
			return Palette{}, err
		}
		if n == 0 {
			return Palette{}, &CountError{What: "palette name length", Min: 1, Max: 255, Actual: 0}
		}
		name := make([]byte, n)
		if err := d.readFull(name); err != nil {
			return Palette{}, err
		}
		if !utf8.Valid(name) {
			return Palette{}, ErrInvalidUTF8
		}
		return Palette{kind: PaletteName, name: string(name)}, nil
	case PaletteColors:
		n, err := d.readByte()
		if err != nil {
			return Palette{}, err
		}
		if n == 0 {
			return Palette{}, &CountError{What: "palette color count", Min: 1, Max: 255, Actual: 0}
		}
		buf := make([]byte, int(n)*4)
		if err := d.readFull(buf); err != nil {
			return Palette{}, err
		}
		colors := make([]Color, n)
		for i := range colors {
			colors[i] = Color{R: buf[i*4], G: buf[i*4+1], B: buf[i*4+2], A: buf[i*4+3]}
		}
		return Palette{kind: PaletteColors, colors: colors}, nil
	}
	return Palette{}, ErrInvalidTag
}

// checkNoTrailing fails with sentinel if the stream holds any byte beyond
// the structure just read.
func (d *decoder) checkNoTrailing(sentinel error) error {
	var tmp [1]byte
	n, err := d.r.Read(tmp[:])
	if n != 0 {
		return sentinel
	}
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return err
	}
	return nil
}

// DecodePalette reads an encoded palette block from r.
func DecodePalette(r io.Reader) (Palette, error) {
	d := decoder{r: r}
	return d.readPalette()
}

// Decode reads a static image from r. The stream must hold exactly one
// encoded image; trailing bytes are an error.
func Decode(r io.Reader) (*Image, error) {
	d := decoder{r: r}

	var dim [2]byte
	if err := d.readFull(dim[:]); err != nil {
		return nil, err
	}
	width, height := dim[0], dim[1]
	if err := checkCount("width", int(width)); err != nil {
		return nil, err
	}
	if err := checkCount("height", int(height)); err != nil {
		return nil, err
	}

	pal, err := d.readPalette()
	if err != nil {
		return nil, err
	}

	pixels := make([]byte, int(width)*int(height))
	if err := d.readFull(pixels); err != nil {
		return nil, err
	}
	if err := d.checkNoTrailing(ErrDimensionMismatch); err != nil {
		return nil, err
	}

	return New(width, height, pal, pixels)
}

// DecodeAnimated reads an animated image from r. The stream must hold
// exactly one encoded image; trailing bytes are an error.
func DecodeAnimated(r io.Reader) (*Animated, error) {
	d := decoder{r: r}

	var head [3]byte
	if err := d.readFull(head[:]); err != nil {
		return nil, err
	}
	width, height, frames := head[0], head[1], head[2]
	if err := checkCount("width", int(width)); err != nil {
		return nil, err
	}
	if err := checkCount("height", int(height)); err != nil {
		return nil, err
	}
	if err := checkCount("frame count", int(frames)); err != nil {
		return nil, err
	}

	var tmp [4]byte
	if err := d.readFull(tmp[:]); err != nil {
		return nil, err
	}
	duration := math.Float32frombits(binary.LittleEndian.Uint32(tmp[:]))
	if !validDuration(duration) {
		return nil, ErrInvalidDuration
	}

	pal, err := d.readPalette()
	if err != nil {
		return nil, err
	}

	pixels := make([]byte, int(width)*int(height)*int(frames))
	if err := d.readFull(pixels); err != nil {
		return nil, err
	}
	if err := d.checkNoTrailing(ErrFrameSizeMismatch); err != nil {
		return nil, err
	}

	return NewAnimated(width, height, duration, frames, pal, pixels)
}

// Config holds the dimensions and palette of an image without its pixel
// data.
type Config struct {
	Width, Height int
	FrameCount    int
	FrameDuration float32
	Palette       Palette
}

// DecodeConfig returns the dimensions and palette of a static image
// without decoding its pixels.
func DecodeConfig(r io.Reader) (Config, error) {
	d := decoder{r: r}

	var dim [2]byte
	if err := d.readFull(dim[:]); err != nil {
		return Config{}, err
	}
	if err := checkCount("width", int(dim[0])); err != nil {
		return Config{}, err
	}
	if err := checkCount("height", int(dim[1])); err != nil {
		return Config{}, err
	}
	pal, err := d.readPalette()
	if err != nil {
		return Config{}, err
	}
	return Config{
		Width:      int(dim[0]),
		Height:     int(dim[1]),
		FrameCount: 1,
		Palette:    pal,
	}, nil
}

// DecodeAnimatedConfig returns the dimensions, frame count, frame
// duration and palette of an animated image without decoding its pixels.
func DecodeAnimatedConfig(r io.Reader) (Config, error) {
	d := decoder{r: r}

	var head [3]byte
	if err := d.readFull(head[:]); err != nil {
		return Config{}, err
	}
	if err := checkCount("width", int(head[0])); err != nil {
		return Config{}, err
	}
	if err := checkCount("height", int(head[1])); err != nil {
		return Config{}, err
	}
	if err := checkCount("frame count", int(head[2])); err != nil {
		return Config{}, err
	}
	var tmp [4]byte
	if err := d.readFull(tmp[:]); err != nil {
		return Config{}, err
	}
	duration := math.Float32frombits(binary.LittleEndian.Uint32(tmp[:]))
	if !validDuration(duration) {
		return Config{}, ErrInvalidDuration
	}
	pal, err := d.readPalette()
	if err != nil {
		return Config{}, err
	}
	return Config{
		Width:         int(head[0]),
		Height:        int(head[1]),
		FrameCount:    int(head[2]),
		FrameDuration: duration,
		Palette:       pal,
	}, nil
}
