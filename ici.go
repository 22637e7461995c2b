/*
Package ici implements a decoder and encoder for ICI indexed-color images.

An ICI image stores a byte of palette index per pixel rather than a color,
so images are at most 255 by 255 pixels with at most 255 palette entries.
Two shapes exist: a static image holding a single frame, and an animated
image holding up to 255 equally sized frames played at a fixed rate.

A static image is written as a width byte, a height byte, a palette block
and then exactly width*height index bytes. An animated image is written as
a width byte, a height byte, a frame count byte, the per-frame duration in
seconds as a little-endian IEEE-754 float32, a palette block and then
frame count consecutive runs of width*height index bytes.

The palette block starts with a tag byte. Tag 0 carries no payload, tag 1
is followed by a little-endian uint16 palette ID, tag 2 by a length byte
and that many bytes of UTF-8 palette name, and tag 3 by a count byte and
that many R,G,B,A quads. IDs and names refer to palettes stored elsewhere,
for example in a PaletteDB; when a file carries no colors of its own the
decoded image is given a fully transparent palette sized to cover the
highest index used, which the caller is expected to replace.
*/
package ici
