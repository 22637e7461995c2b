package ici

// Wrapper holds either a static or an animated image and forwards the
// queries and transforms they share, so callers can carry both kinds in
// one value. It never converts between the two kinds.
type Wrapper struct {
	static   *Image
	animated *Animated
}

// Wrap returns a wrapper around a static image.
func Wrap(m *Image) Wrapper {
	return Wrapper{static: m}
}

// WrapAnimated returns a wrapper around an animated image.
func WrapAnimated(a *Animated) Wrapper {
	return Wrapper{animated: a}
}

// IsAnimated reports whether the wrapper holds an animated image.
func (w Wrapper) IsAnimated() bool {
	return w.animated != nil
}

// Static returns the held static image, if any.
func (w Wrapper) Static() (*Image, bool) {
	return w.static, w.static != nil
}

// Animated returns the held animated image, if any.
func (w Wrapper) Animated() (*Animated, bool) {
	return w.animated, w.animated != nil
}

// Width returns the width of the held image in pixels.
func (w Wrapper) Width() int {
	if w.animated != nil {
		return w.animated.Width()
	}
	return w.static.Width()
}

// Height returns the height of the held image in pixels.
func (w Wrapper) Height() int {
	if w.animated != nil {
		return w.animated.Height()
	}
	return w.static.Height()
}

// Palette returns how the held image's colors are stored when encoded.
func (w Wrapper) Palette() Palette {
	if w.animated != nil {
		return w.animated.Palette()
	}
	return w.static.Palette()
}

// Colors returns a copy of the held image's palette colors.
func (w Wrapper) Colors() []Color {
	if w.animated != nil {
		return w.animated.Colors()
	}
	return w.static.Colors()
}

// FrameCount returns the number of frames, which is one for a static
// image.
func (w Wrapper) FrameCount() int {
	if w.animated != nil {
		return w.animated.FrameCount()
	}
	return 1
}

// Frame returns a copy of the palette indices of frame i. A static image
// has only frame zero.
func (w Wrapper) Frame(i int) ([]byte, error) {
	if w.animated != nil {
		return w.animated.Frame(i)
	}
	if i != 0 {
		return nil, ErrIndexOutOfRange
	}
	return w.static.Pixels(), nil
}

// Color returns the palette color at slot idx.
func (w Wrapper) Color(idx uint8) (Color, error) {
	if w.animated != nil {
		return w.animated.Color(idx)
	}
	return w.static.Color(idx)
}

// SetColor replaces the palette color at slot idx.
func (w Wrapper) SetColor(idx uint8, c Color) error {
	if w.animated != nil {
		return w.animated.SetColor(idx, c)
	}
	return w.static.SetColor(idx, c)
}

// ReplaceIndex rewrites every pixel holding the index old to the index
// new, across every frame.
func (w Wrapper) ReplaceIndex(old, new uint8) {
	if w.animated != nil {
		w.animated.ReplaceIndex(old, new)
		return
	}
	w.static.ReplaceIndex(old, new)
}

// SetColors replaces the held image's palette.
func (w Wrapper) SetColors(colors []Color) error {
	if w.animated != nil {
		return w.animated.SetColors(colors)
	}
	return w.static.SetColors(colors)
}

// SetColorsReplace replaces the held image's palette, rewriting any pixel
// whose index falls outside the new palette to idx.
func (w Wrapper) SetColorsReplace(colors []Color, idx uint8) error {
	if w.animated != nil {
		return w.animated.SetColorsReplace(colors, idx)
	}
	return w.static.SetColorsReplace(colors, idx)
}

// SetColorsExtend replaces the held image's palette, padding it with fill
// until it covers every index the pixels use.
func (w Wrapper) SetColorsExtend(colors []Color, fill Color) error {
	if w.animated != nil {
		return w.animated.SetColorsExtend(colors, fill)
	}
	return w.static.SetColorsExtend(colors, fill)
}

// FlipHorizontal returns a wrapper of the same kind mirrored left to
// right.
func (w Wrapper) FlipHorizontal() Wrapper {
	if w.animated != nil {
		return WrapAnimated(w.animated.FlipHorizontal())
	}
	return Wrap(w.static.FlipHorizontal())
}

// FlipVertical returns a wrapper of the same kind mirrored top to bottom.
func (w Wrapper) FlipVertical() Wrapper {
	if w.animated != nil {
		return WrapAnimated(w.animated.FlipVertical())
	}
	return Wrap(w.static.FlipVertical())
}

// Rotate90 returns a wrapper of the same kind rotated a quarter turn.
func (w Wrapper) Rotate90() Wrapper {
	if w.animated != nil {
		return WrapAnimated(w.animated.Rotate90())
	}
	return Wrap(w.static.Rotate90())
}

// Rotate180 returns a wrapper of the same kind rotated a half turn.
func (w Wrapper) Rotate180() Wrapper {
	if w.animated != nil {
		return WrapAnimated(w.animated.Rotate180())
	}
	return Wrap(w.static.Rotate180())
}

// Rotate270 returns a wrapper of the same kind rotated three quarter
// turns.
func (w Wrapper) Rotate270() Wrapper {
	if w.animated != nil {
		return WrapAnimated(w.animated.Rotate270())
	}
	return Wrap(w.static.Rotate270())
}

// Advance moves the playback cursor of an animated image; it does
// nothing for a static image.
func (w Wrapper) Advance(delta float32) {
	if w.animated != nil {
		w.animated.Advance(delta)
	}
}
