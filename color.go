package ici

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Color is an 8-bit per channel RGBA color. The zero value is fully
// transparent black.
type Color struct {
	R, G, B, A uint8
}

// Channel orderings are explicit in every conversion name; RGBA and ARGB
// differ only in where the alpha byte sits, and the RGB forms drop alpha
// on the way out and force it to 255 on the way in.

// NewColor returns a Color with the given channel values.
func NewColor(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Gray returns an opaque Color with all three color channels set to v.
func Gray(v uint8) Color {
	return Color{R: v, G: v, B: v, A: 255}
}

var (
	White       = Gray(255)
	Black       = Gray(0)
	Red         = Color{R: 255, A: 255}
	Green       = Color{G: 255, A: 255}
	Blue        = Color{B: 255, A: 255}
	Magenta     = Color{R: 255, B: 255, A: 255}
	Yellow      = Color{R: 255, G: 255, A: 255}
	Cyan        = Color{G: 255, B: 255, A: 255}
	Transparent = Color{}
)

// IsTransparent reports whether the color is fully transparent.
func (c Color) IsTransparent() bool {
	return c.A == 0
}

// WithRed returns a copy of the color with the red channel replaced.
func (c Color) WithRed(r uint8) Color {
	c.R = r
	return c
}

// WithGreen returns a copy of the color with the green channel replaced.
func (c Color) WithGreen(g uint8) Color {
	c.G = g
	return c
}

// WithBlue returns a copy of the color with the blue channel replaced.
func (c Color) WithBlue(b uint8) Color {
	c.B = b
	return c
}

// WithAlpha returns a copy of the color with the alpha channel replaced.
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

// ToRGBA packs the color as 0xRRGGBBAA.
func (c Color) ToRGBA() uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}

// FromRGBA unpacks a color from 0xRRGGBBAA.
func FromRGBA(v uint32) Color {
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
}

// ToARGB packs the color as 0xAARRGGBB.
func (c Color) ToARGB() uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// FromARGB unpacks a color from 0xAARRGGBB.
func FromARGB(v uint32) Color {
	return Color{A: uint8(v >> 24), R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// ToRGB packs the color as 0x00RRGGBB, dropping alpha.
func (c Color) ToRGB() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// FromRGB unpacks an opaque color from 0x00RRGGBB.
func FromRGB(v uint32) Color {
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// RGBABytes returns the channels in R,G,B,A order.
func (c Color) RGBABytes() [4]uint8 {
	return [4]uint8{c.R, c.G, c.B, c.A}
}

// FromRGBABytes builds a color from channels in R,G,B,A order.
func FromRGBABytes(b [4]uint8) Color {
	return Color{R: b[0], G: b[1], B: b[2], A: b[3]}
}

// ARGBBytes returns the channels in A,R,G,B order.
func (c Color) ARGBBytes() [4]uint8 {
	return [4]uint8{c.A, c.R, c.G, c.B}
}

// FromARGBBytes builds a color from channels in A,R,G,B order.
func FromARGBBytes(b [4]uint8) Color {
	return Color{A: b[0], R: b[1], G: b[2], B: b[3]}
}

// RGBBytes returns the color channels in R,G,B order, dropping alpha.
func (c Color) RGBBytes() [3]uint8 {
	return [3]uint8{c.R, c.G, c.B}
}

// FromRGBBytes builds an opaque color from channels in R,G,B order.
func FromRGBBytes(b [3]uint8) Color {
	return Color{R: b[0], G: b[1], B: b[2], A: 255}
}

func unitToByte(v float32) uint8 {
	f := math.Round(float64(v) * 255)
	if f < 0 {
		return 0
	}
	if f > 255 {
		return 255
	}
	return uint8(f)
}

// RGBAFloats returns the channels in R,G,B,A order scaled to 0.0-1.0.
func (c Color) RGBAFloats() [4]float32 {
	return [4]float32{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(c.A) / 255,
	}
}

// FromRGBAFloats builds a color from 0.0-1.0 channels in R,G,B,A order.
// Values outside 0.0-1.0 are clamped.
func FromRGBAFloats(f [4]float32) Color {
	return Color{
		R: unitToByte(f[0]),
		G: unitToByte(f[1]),
		B: unitToByte(f[2]),
		A: unitToByte(f[3]),
	}
}

// ARGBFloats returns the channels in A,R,G,B order scaled to 0.0-1.0.
func (c Color) ARGBFloats() [4]float32 {
	return [4]float32{
		float32(c.A) / 255,
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
	}
}

// FromARGBFloats builds a color from 0.0-1.0 channels in A,R,G,B order.
func FromARGBFloats(f [4]float32) Color {
	return Color{
		A: unitToByte(f[0]),
		R: unitToByte(f[1]),
		G: unitToByte(f[2]),
		B: unitToByte(f[3]),
	}
}

// RGBFloats returns the color channels in R,G,B order scaled to 0.0-1.0,
// dropping alpha.
func (c Color) RGBFloats() [3]float32 {
	return [3]float32{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
	}
}

// FromRGBFloats builds an opaque color from 0.0-1.0 channels in R,G,B order.
func FromRGBFloats(f [3]float32) Color {
	return Color{
		R: unitToByte(f[0]),
		G: unitToByte(f[1]),
		B: unitToByte(f[2]),
		A: 255,
	}
}

// Hex returns the color as #RRGGBBAA.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// FromHex parses a color from RRGGBB or RRGGBBAA, with or without a
// leading '#'. A six digit value is opaque.
func FromHex(s string) (Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 && len(s) != 8 {
		return Color{}, errors.New("ici: hex color must be 6 or 8 digits")
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("ici: invalid hex color: %w", err)
	}
	if len(s) == 6 {
		return FromRGB(uint32(v)), nil
	}
	return FromRGBA(uint32(v)), nil
}

// Blend composites other over the color using standard alpha blending.
func (c Color) Blend(other Color) Color {
	base := c.RGBAFloats()
	over := other.RGBAFloats()
	a := 1 - (1-over[3])*(1-base[3])
	if a == 0 {
		return Color{}
	}
	var mixed [4]float32
	mixed[3] = a
	for i := 0; i < 3; i++ {
		mixed[i] = over[i]*over[3]/a + base[i]*base[3]*(1-over[3])/a
	}
	return FromRGBAFloats(mixed)
}

// Brightness returns the perceived luminance of the color in 0.0-1.0,
// ignoring alpha.
func (c Color) Brightness() float32 {
	f := c.RGBFloats()
	return 0.2126*f[0] + 0.7152*f[1] + 0.0722*f[2]
}

// IsDark reports whether the perceived luminance is below one half.
func (c Color) IsDark() bool {
	return c.Brightness() < 0.5
}

func midChannel(a, b uint8) uint8 {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo + (hi-lo)/2
}

// Mid returns the color halfway between the two colors, per channel.
func (c Color) Mid(other Color) Color {
	return Color{
		R: midChannel(c.R, other.R),
		G: midChannel(c.G, other.G),
		B: midChannel(c.B, other.B),
		A: midChannel(c.A, other.A),
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// Diff returns the sum of the absolute per-channel differences between
// the two colors.
func (c Color) Diff(other Color) int {
	return absDiff(c.R, other.R) + absDiff(c.G, other.G) +
		absDiff(c.B, other.B) + absDiff(c.A, other.A)
}

func addClamped(v uint8, d int) uint8 {
	n := int(v) + d
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}

// TintAdd returns a copy of the color with each channel offset by the
// given amount, clamped to 0-255.
func (c Color) TintAdd(r, g, b, a int) Color {
	return Color{
		R: addClamped(c.R, r),
		G: addClamped(c.G, g),
		B: addClamped(c.B, b),
		A: addClamped(c.A, a),
	}
}

func mulClamped(v uint8, f float32) uint8 {
	return unitToByte(float32(v) * f / 255)
}

// TintMul returns a copy of the color with each channel multiplied by the
// given factor, clamped to 0-255.
func (c Color) TintMul(r, g, b, a float32) Color {
	return Color{
		R: mulClamped(c.R, r),
		G: mulClamped(c.G, g),
		B: mulClamped(c.B, b),
		A: mulClamped(c.A, a),
	}
}

// Std returns the color as a non-premultiplied image/color value.
func (c Color) Std() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// FromStd converts any image/color value, un-premultiplying alpha.
func FromStd(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}
