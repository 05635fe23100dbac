package packed

import (
	"image"
	"image/color"
	"math"

	"github.com/ericpauley/go-quantize/quantize"

	"github.com/csq/qimg/box"
)

// Luminance returns the perceptual brightness of c in [0, 1] using
// channel-squared weighting: sqrt(0.241R² + 0.691G² + 0.068B²)/255.
func Luminance(c color.RGBA) float64 {
	r, g, b := float64(c.R), float64(c.G), float64(c.B)
	return math.Sqrt(0.241*r*r+0.691*g*g+0.068*b*b) / 255
}

// A Quantizer reduces one box's pixels to two representative colors and a
// per-pixel index selecting between them. Implementations must be pure so
// boxes can be quantized concurrently.
type Quantizer interface {
	Quantize(pixels []color.RGBA) (light, dark color.RGBA, index []uint8)
}

// Threshold is the default quantizer. It splits a box's pixels at the box's
// own mean luminance: pixels at or above the mean go light, the rest dark,
// and each partition is represented by its mean color with channels
// truncated to integers.
//
// A box whose pixels all share one luminance leaves a partition empty:
// usually the dark one, but floating-point accumulation of the mean can
// round it strictly above every pixel and empty the light one instead. An
// empty partition reuses the other partition's color, so both colors equal
// the box's mean color and the indices stay as computed.
type Threshold struct{}

func (Threshold) Quantize(pixels []color.RGBA) (light, dark color.RGBA, index []uint8) {
	index = make([]uint8, len(pixels))
	lum := make([]float64, len(pixels))

	var sum float64
	for i, c := range pixels {
		lum[i] = Luminance(c)
		sum += lum[i]
	}
	avg := sum / float64(len(pixels))

	var lsum, dsum [3]int
	var ln, dn int
	for i, c := range pixels {
		if lum[i] >= avg {
			index[i] = 1
			lsum[0] += int(c.R)
			lsum[1] += int(c.G)
			lsum[2] += int(c.B)
			ln++
		} else {
			dsum[0] += int(c.R)
			dsum[1] += int(c.G)
			dsum[2] += int(c.B)
			dn++
		}
	}

	if ln > 0 {
		light = color.RGBA{uint8(lsum[0] / ln), uint8(lsum[1] / ln), uint8(lsum[2] / ln), 0xff}
	}
	if dn > 0 {
		dark = color.RGBA{uint8(dsum[0] / dn), uint8(dsum[1] / dn), uint8(dsum[2] / dn), 0xff}
	}
	if ln == 0 {
		light = dark
	}
	if dn == 0 {
		dark = light
	}

	return light, dark, index
}

// MedianCut is an alternative quantizer that picks the two representative
// colors with a median-cut split instead of a luminance threshold. The
// brighter palette entry becomes the light color and each pixel maps to the
// nearer of the two. Boxes with a single color collapse to light == dark.
type MedianCut struct{}

func (MedianCut) Quantize(pixels []color.RGBA) (light, dark color.RGBA, index []uint8) {
	m := image.NewRGBA(image.Rect(0, 0, len(pixels), 1))
	for i, c := range pixels {
		m.SetRGBA(i, 0, c)
	}

	q := quantize.MedianCutQuantizer{}
	p := q.Quantize(make(color.Palette, 0, 2), m)

	light = color.RGBAModel.Convert(p[0]).(color.RGBA)
	dark = light
	if len(p) > 1 {
		dark = color.RGBAModel.Convert(p[1]).(color.RGBA)
		if Luminance(dark) > Luminance(light) {
			light, dark = dark, light
		}
	}
	light.A, dark.A = 0xff, 0xff

	pair := color.Palette{dark, light}
	index = make([]uint8, len(pixels))
	for i, c := range pixels {
		index[i] = uint8(pair.Index(c))
	}

	return light, dark, index
}

// PackBox quantizes a single box. It is exported so callers can fan the
// per-box work out across goroutines; boxes share no state.
func PackBox(b *box.Box, q Quantizer) Box {
	light, dark, index := q.Quantize(b.Pixels)
	return Box{X: b.X, Y: b.Y, Light: light, Dark: dark, Index: index}
}

// Pack quantizes every box of b independently with q, or with Threshold if q
// is nil. The result carries the current container version.
func Pack(b *box.Image, q Quantizer) *Image {
	if q == nil {
		q = Threshold{}
	}

	p := &Image{
		Version: [2]byte{VersionMajor, VersionMinor},
		BoxSize: b.BoxSize,
		Width:   b.Width,
		Height:  b.Height,
		Boxes:   make([]Box, len(b.Boxes)),
	}

	for i := range b.Boxes {
		p.Boxes[i] = PackBox(&b.Boxes[i], q)
	}

	return p
}
