/*
Package jasc implements a decoder and encoder for the JASC-PAL plain-text
palette format.

The format is a "JASC-PAL" header line, a "0100" version line, a decimal
color count line and then exactly that many lines of three space
separated decimal channel values. The format has no alpha channel, so
decoded colors are always fully opaque and alpha is dropped on encode.
*/
package jasc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pixelglade/ici"
)

const (
	fileHeader  = "JASC-PAL"
	fileVersion = "0100"
)

var (
	// ErrInvalidHeader is returned when the first line is not the
	// JASC-PAL literal.
	ErrInvalidHeader = errors.New("jasc: invalid header")
	// ErrVersionMismatch is returned for any version other than 0100.
	ErrVersionMismatch = errors.New("jasc: unsupported version")
	// ErrCountMismatch is returned when the declared color count does
	// not match the number of color lines.
	ErrCountMismatch = errors.New("jasc: color count does not match declared count")
)

type scanner struct {
	s *bufio.Scanner
}

func (sc *scanner) line() (string, bool, error) {
	if !sc.s.Scan() {
		return "", false, sc.s.Err()
	}
	return sc.s.Text(), true, nil
}

// Decode reads a JASC palette from r and returns its colors, all fully
// opaque.
func Decode(r io.Reader) ([]ici.Color, error) {
	sc := scanner{s: bufio.NewScanner(r)}

	line, ok, err := sc.line()
	if err != nil {
		return nil, err
	}
	if !ok || line != fileHeader {
		return nil, ErrInvalidHeader
	}

	line, ok, err = sc.line()
	if err != nil {
		return nil, err
	}
	if !ok || line != fileVersion {
		return nil, ErrVersionMismatch
	}

	line, ok, err = sc.line()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCountMismatch
	}
	count, err := strconv.ParseUint(strings.TrimSpace(line), 10, 8)
	if err != nil {
		return nil, fmt.Errorf("jasc: invalid color count: %w", err)
	}

	colors := make([]ici.Color, 0, count)
	for i := 0; i < int(count); i++ {
		line, ok, err = sc.line()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrCountMismatch
		}
		c, err := parseColor(line, i)
		if err != nil {
			return nil, err
		}
		colors = append(colors, c)
	}

	// Anything after the declared colors means the count lied.
	if _, ok, err := sc.line(); err != nil {
		return nil, err
	} else if ok {
		return nil, ErrCountMismatch
	}

	return colors, nil
}

func parseColor(line string, i int) (ici.Color, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return ici.Color{}, fmt.Errorf("jasc: color %d: expected 3 values, got %d", i, len(fields))
	}
	var channels [3]uint8
	for j, f := range fields {
		v, err := strconv.ParseUint(f, 10, 8)
		if err != nil {
			return ici.Color{}, fmt.Errorf("jasc: color %d: %w", i, err)
		}
		channels[j] = uint8(v)
	}
	return ici.FromRGBBytes(channels), nil
}

// Encode writes colors to w as a JASC palette, dropping alpha.
func Encode(w io.Writer, colors []ici.Color) error {
	if _, err := fmt.Fprintf(w, "%s\n%s\n%d\n", fileHeader, fileVersion, len(colors)); err != nil {
		return err
	}
	for _, c := range colors {
		if _, err := fmt.Fprintf(w, "%d %d %d\n", c.R, c.G, c.B); err != nil {
			return err
		}
	}
	return nil
}
