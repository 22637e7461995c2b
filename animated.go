package ici

import (
	"fmt"
	"math"
)

// Animated is an ordered run of equally sized palette-indexed frames
// sharing one palette and played at a fixed rate. Frames are stored as
// one flat buffer of frame count runs of width*height indices.
type Animated struct {
	width, height uint8
	frameCount    uint8
	duration      float32
	pal           Palette
	colors        []Color
	pixels        []byte
	highest       uint8

	current int
	elapsed float32
}

// NewAnimated returns an animated image over a copy of pixels, which must
// hold exactly frameCount runs of width*height palette indices. duration
// is the time every frame is shown for, in seconds, and must be positive.
// Palette synthesis follows New.
func NewAnimated(width, height uint8, duration float32, frameCount uint8, pal Palette, pixels []byte) (*Animated, error) {
	if err := checkCount("width", int(width)); err != nil {
		return nil, err
	}
	if err := checkCount("height", int(height)); err != nil {
		return nil, err
	}
	if err := checkCount("frame count", int(frameCount)); err != nil {
		return nil, err
	}
	if !validDuration(duration) {
		return nil, ErrInvalidDuration
	}
	if len(pixels) != int(width)*int(height)*int(frameCount) {
		return nil, ErrFrameSizeMismatch
	}
	a := &Animated{
		width:      width,
		height:     height,
		frameCount: frameCount,
		duration:   duration,
		pixels:     append([]byte(nil), pixels...),
		highest:    highestIndex(pixels),
	}
	if pal.Kind() == PaletteColors {
		a.colors = pal.Colors()
		a.pal = Palette{kind: PaletteColors}
	} else {
		a.colors = synthesizePalette(pixels)
		a.pal = pal
	}
	return a, nil
}

// NewAnimatedFrames is NewAnimated over a slice of per-frame buffers,
// each of which must hold exactly width*height indices.
func NewAnimatedFrames(width, height uint8, duration float32, frames [][]byte, pal Palette) (*Animated, error) {
	if err := checkCount("frame count", len(frames)); err != nil {
		return nil, err
	}
	size := int(width) * int(height)
	pixels := make([]byte, 0, size*len(frames))
	for _, f := range frames {
		if len(f) != size {
			return nil, ErrFrameSizeMismatch
		}
		pixels = append(pixels, f...)
	}
	return NewAnimated(width, height, duration, uint8(len(frames)), pal, pixels)
}

// Width returns the frame width in pixels.
func (a *Animated) Width() int {
	return int(a.width)
}

// Height returns the frame height in pixels.
func (a *Animated) Height() int {
	return int(a.height)
}

// FrameCount returns the number of frames.
func (a *Animated) FrameCount() int {
	return int(a.frameCount)
}

// FrameDuration returns how long every frame is shown for, in seconds.
func (a *Animated) FrameDuration() float32 {
	return a.duration
}

// SetFrameDuration changes how long every frame is shown for.
func (a *Animated) SetFrameDuration(seconds float32) error {
	if !validDuration(seconds) {
		return ErrInvalidDuration
	}
	a.duration = seconds
	return nil
}

// validDuration reports whether d is a positive, finite number of
// seconds. NaN fails the comparison.
func validDuration(d float32) bool {
	return d > 0 && !math.IsInf(float64(d), 1)
}

// Palette returns how the image's colors are stored when encoded.
func (a *Animated) Palette() Palette {
	if a.pal.Kind() == PaletteColors {
		return Palette{kind: PaletteColors, colors: append([]Color(nil), a.colors...)}
	}
	return a.pal
}

// Colors returns a copy of the shared palette colors.
func (a *Animated) Colors() []Color {
	return append([]Color(nil), a.colors...)
}

// Pixels returns a copy of every frame's indices, frame after frame.
func (a *Animated) Pixels() []byte {
	return append([]byte(nil), a.pixels...)
}

func (a *Animated) frameSize() int {
	return int(a.width) * int(a.height)
}

// Frame returns a copy of the palette indices of frame i.
func (a *Animated) Frame(i int) ([]byte, error) {
	if i < 0 || i >= int(a.frameCount) {
		return nil, fmt.Errorf("%w: frame %d of %d", ErrIndexOutOfRange, i, a.frameCount)
	}
	size := a.frameSize()
	return append([]byte(nil), a.pixels[i*size:(i+1)*size]...), nil
}

// Images materializes every frame as an independent static image, each
// with its own copy of the shared palette, in playback order.
func (a *Animated) Images() []*Image {
	out := make([]*Image, a.frameCount)
	size := a.frameSize()
	for i := range out {
		out[i] = &Image{
			width:   a.width,
			height:  a.height,
			pal:     a.pal,
			colors:  append([]Color(nil), a.colors...),
			pixels:  append([]byte(nil), a.pixels[i*size:(i+1)*size]...),
			highest: highestIndex(a.pixels[i*size : (i+1)*size]),
		}
	}
	return out
}

// HighestIndex returns the highest palette index any frame uses.
func (a *Animated) HighestIndex() uint8 {
	return a.highest
}

// Color returns the palette color at slot idx.
func (a *Animated) Color(idx uint8) (Color, error) {
	if int(idx) >= len(a.colors) {
		return Color{}, fmt.Errorf("%w: palette index %d of %d", ErrIndexOutOfRange, idx, len(a.colors))
	}
	return a.colors[idx], nil
}

// SetColor replaces the palette color at slot idx for every frame,
// leaving pixel indices untouched.
func (a *Animated) SetColor(idx uint8, c Color) error {
	if int(idx) >= len(a.colors) {
		return fmt.Errorf("%w: palette index %d of %d", ErrIndexOutOfRange, idx, len(a.colors))
	}
	a.colors[idx] = c
	return nil
}

// ReplaceIndex rewrites every pixel of every frame holding the index old
// to the index new, leaving the palette untouched.
func (a *Animated) ReplaceIndex(old, new uint8) {
	replaceIndexPixels(a.pixels, old, new)
	a.highest = highestIndex(a.pixels)
}

// SetColors replaces the shared palette. It fails if the new palette is
// too small for the indices the frames use.
func (a *Animated) SetColors(colors []Color) error {
	if err := checkCount("palette color count", len(colors)); err != nil {
		return err
	}
	if len(colors) <= int(a.highest) {
		return &CountError{What: "palette color count", Min: int(a.highest) + 1, Max: 255, Actual: len(colors)}
	}
	a.colors = append([]Color(nil), colors...)
	a.pal = Palette{kind: PaletteColors}
	return nil
}

// SetColorsReplace replaces the shared palette, rewriting any pixel whose
// index falls outside the new palette to idx.
func (a *Animated) SetColorsReplace(colors []Color, idx uint8) error {
	if err := checkCount("palette color count", len(colors)); err != nil {
		return err
	}
	if int(idx) >= len(colors) {
		return fmt.Errorf("%w: palette index %d of %d", ErrIndexOutOfRange, idx, len(colors))
	}
	for i, p := range a.pixels {
		if int(p) >= len(colors) {
			a.pixels[i] = idx
		}
	}
	a.highest = highestIndex(a.pixels)
	a.colors = append([]Color(nil), colors...)
	a.pal = Palette{kind: PaletteColors}
	return nil
}

// SetColorsExtend replaces the shared palette, padding it with fill until
// it covers every index the frames use.
func (a *Animated) SetColorsExtend(colors []Color, fill Color) error {
	padded := append([]Color(nil), colors...)
	for len(padded) <= int(a.highest) {
		padded = append(padded, fill)
	}
	if err := checkCount("palette color count", len(padded)); err != nil {
		return err
	}
	a.colors = padded
	a.pal = Palette{kind: PaletteColors}
	return nil
}

// TintAdd offsets each channel of every shared palette color by the
// given amount, clamped to 0-255.
func (a *Animated) TintAdd(r, g, b, al int) {
	for i, c := range a.colors {
		a.colors[i] = c.TintAdd(r, g, b, al)
	}
}

// TintMul multiplies each channel of every shared palette color by the
// given factor, clamped to 0-255.
func (a *Animated) TintMul(r, g, b, al float32) {
	for i, c := range a.colors {
		a.colors[i] = c.TintMul(r, g, b, al)
	}
}

func (a *Animated) withFrames(transform func(frame []byte) []byte, width, height uint8) *Animated {
	size := a.frameSize()
	pixels := make([]byte, 0, len(a.pixels))
	for i := 0; i < int(a.frameCount); i++ {
		pixels = append(pixels, transform(a.pixels[i*size:(i+1)*size])...)
	}
	return &Animated{
		width:      width,
		height:     height,
		frameCount: a.frameCount,
		duration:   a.duration,
		pal:        a.pal,
		colors:     append([]Color(nil), a.colors...),
		pixels:     pixels,
		highest:    a.highest,
	}
}

// FlipHorizontal returns a copy with every frame mirrored left to right.
func (a *Animated) FlipHorizontal() *Animated {
	return a.withFrames(func(f []byte) []byte {
		return flipHorizontalPixels(f, a.Width(), a.Height())
	}, a.width, a.height)
}

// FlipVertical returns a copy with every frame mirrored top to bottom.
func (a *Animated) FlipVertical() *Animated {
	return a.withFrames(func(f []byte) []byte {
		return flipVerticalPixels(f, a.Width(), a.Height())
	}, a.width, a.height)
}

// Rotate90 returns a copy with every frame rotated a quarter turn, with
// width and height swapped.
func (a *Animated) Rotate90() *Animated {
	return a.withFrames(func(f []byte) []byte {
		return rotate90Pixels(f, a.Width(), a.Height())
	}, a.height, a.width)
}

// Rotate180 returns a copy with every frame rotated a half turn.
func (a *Animated) Rotate180() *Animated {
	return a.withFrames(func(f []byte) []byte {
		return rotate180Pixels(f, a.Width(), a.Height())
	}, a.width, a.height)
}

// Rotate270 returns a copy with every frame rotated three quarter turns,
// with width and height swapped.
func (a *Animated) Rotate270() *Animated {
	return a.withFrames(func(f []byte) []byte {
		return rotate270Pixels(f, a.Width(), a.Height())
	}, a.height, a.width)
}

// CurrentFrame returns the frame the playback cursor is on.
func (a *Animated) CurrentFrame() int {
	return a.current
}

// Advance moves the playback cursor forward by delta seconds, looping
// back to the first frame after the last. Zero, negative and non-finite
// deltas are ignored.
func (a *Animated) Advance(delta float32) {
	if !validDuration(delta) {
		return
	}
	a.elapsed += delta
	for a.elapsed >= a.duration {
		a.elapsed -= a.duration
		a.current = (a.current + 1) % int(a.frameCount)
	}
}

// Reset moves the playback cursor back to the first frame.
func (a *Animated) Reset() {
	a.current = 0
	a.elapsed = 0
}
