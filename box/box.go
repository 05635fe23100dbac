/*
Package box splits a raster image into a grid of fixed-size square tiles.

A box is the unit of independent quantization further down the pipeline;
pixels within a box are stored in row-major local order and carry no alpha.
Image dimensions that are not a multiple of the box size are cropped to the
largest multiple, never resampled.
*/
package box

import (
	"errors"
	"image"
	"image/color"
)

// ErrInvalidBoxSize is returned by Boxify for a non-positive box size.
var ErrInvalidBoxSize = errors.New("qimg: invalid box size")

// Box is one tile of the grid. X and Y are grid coordinates in tile units.
// Pixels holds the tile's colors in row-major local order; the local
// coordinates of Pixels[i] are (i mod size, i div size). Alpha is dropped on
// ingest and pinned to 0xff.
type Box struct {
	X, Y   int
	Pixels []color.RGBA
}

// Image is a raster image cut into boxes. Width and Height are the grid
// dimensions in tile units and Boxes is ordered row-major over the grid.
type Image struct {
	BoxSize int
	Width   int
	Height  int
	Boxes   []Box
}

// Boxify cuts m into a grid of size-by-size boxes. Rows and columns beyond
// the largest multiple of size are dropped; the caller can compare the grid
// dimensions against the source bounds to detect cropping.
func Boxify(m image.Image, size int) (*Image, error) {
	if size <= 0 {
		return nil, ErrInvalidBoxSize
	}

	b := m.Bounds()
	w, h := b.Dx()/size, b.Dy()/size

	img := &Image{
		BoxSize: size,
		Width:   w,
		Height:  h,
		Boxes:   make([]Box, 0, w*h),
	}

	for by := 0; by < h; by++ {
		for bx := 0; bx < w; bx++ {
			pixels := make([]color.RGBA, 0, size*size)
			for y := 0; y < size; y++ {
				for x := 0; x < size; x++ {
					r, g, bl, _ := m.At(b.Min.X+bx*size+x, b.Min.Y+by*size+y).RGBA()
					pixels = append(pixels, color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(bl >> 8), 0xff})
				}
			}
			img.Boxes = append(img.Boxes, Box{X: bx, Y: by, Pixels: pixels})
		}
	}

	return img, nil
}
