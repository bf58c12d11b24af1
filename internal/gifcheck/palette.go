package gifcheck

import (
	"fmt"
	"image/color"
)

// RGB is one palette entry.
type RGB struct {
	R, G, B uint8
}

func (c RGB) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.R, c.G, c.B)
}

// Palette is an ordered color table.
type Palette []RGB

// ReferencePalette holds the 8 CimBar base colors, in slot order.
var ReferencePalette = Palette{
	{0, 200, 200},
	{220, 40, 40},
	{30, 100, 220},
	{255, 130, 20},
	{200, 40, 200},
	{40, 200, 60},
	{230, 220, 40},
	{100, 20, 200},
}

// PaletteFrom converts a decoded color.Palette to RGB triples.
func PaletteFrom(p color.Palette) Palette {
	if p == nil {
		return nil
	}
	out := make(Palette, len(p))
	for i, c := range p {
		rgba := color.RGBAModel.Convert(c).(color.RGBA)
		out[i] = RGB{rgba.R, rgba.G, rgba.B}
	}
	return out
}

// ComparePrefix checks that p starts with ref, slot by slot.
// It returns the first mismatching slot index, or -1.
func ComparePrefix(p, ref Palette) int {
	for i, want := range ref {
		if i >= len(p) || p[i] != want {
			return i
		}
	}
	return -1
}
