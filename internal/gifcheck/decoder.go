package gifcheck

import (
	"bytes"
	"image/color"
	"image/gif"
)

// Animation is the frame and palette metadata needed by the extended checks.
type Animation struct {
	Frames int
	// Palette is the global color table, or the first frame's palette
	// when the file has no global table. Nil when neither exists.
	Palette Palette
}

// Decoder inspects frame and palette metadata. A Validator with a nil
// Decoder skips the extended checks.
type Decoder interface {
	Decode(data []byte) (*Animation, error)
}

// GIFDecoder decodes with the standard library image/gif package.
type GIFDecoder struct{}

var _ Decoder = GIFDecoder{}

// Decode reads every frame of data.
func (GIFDecoder) Decode(data []byte) (*Animation, error) {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	anim := &Animation{Frames: len(g.Image)}
	if p, ok := g.Config.ColorModel.(color.Palette); ok && len(p) > 0 {
		anim.Palette = PaletteFrom(p)
	} else if len(g.Image) > 0 && len(g.Image[0].Palette) > 0 {
		anim.Palette = PaletteFrom(g.Image[0].Palette)
	}
	return anim, nil
}
