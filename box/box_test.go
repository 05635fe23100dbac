package box_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csq/qimg/box"
)

// gradient returns a w by h image where every pixel has a unique color
// derived from its coordinates, so tests can tell pixels apart.
func gradient(w, h int) *image.RGBA {
	m := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.SetRGBA(x, y, color.RGBA{uint8(x), uint8(y), uint8(x + y), 0xff})
		}
	}
	return m
}

func TestBoxifyInvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		_, err := box.Boxify(gradient(8, 8), size)
		assert.ErrorIs(t, err, box.ErrInvalidBoxSize)
	}
}

func TestBoxifyDimensions(t *testing.T) {
	b, err := box.Boxify(gradient(10, 7), 3)
	require.NoError(t, err)

	assert.Equal(t, 3, b.Width)
	assert.Equal(t, 2, b.Height)
	assert.Equal(t, 3, b.BoxSize)
	assert.Len(t, b.Boxes, 6)
}

func TestBoxifyOrder(t *testing.T) {
	b, err := box.Boxify(gradient(4, 4), 2)
	require.NoError(t, err)
	require.Len(t, b.Boxes, 4)

	// Boxes are row-major over the grid.
	coords := make([][2]int, 0, len(b.Boxes))
	for _, bx := range b.Boxes {
		coords = append(coords, [2]int{bx.X, bx.Y})
	}
	assert.Equal(t, [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}, coords)

	// Pixels are row-major within each box; the gradient encodes the
	// absolute coordinates in the R and G channels.
	last := b.Boxes[3]
	require.Len(t, last.Pixels, 4)
	assert.Equal(t, color.RGBA{2, 2, 4, 0xff}, last.Pixels[0])
	assert.Equal(t, color.RGBA{3, 2, 5, 0xff}, last.Pixels[1])
	assert.Equal(t, color.RGBA{2, 3, 5, 0xff}, last.Pixels[2])
	assert.Equal(t, color.RGBA{3, 3, 6, 0xff}, last.Pixels[3])
}

func TestBoxifyCropsRemainder(t *testing.T) {
	b, err := box.Boxify(gradient(5, 5), 2)
	require.NoError(t, err)

	assert.Equal(t, 2, b.Width)
	assert.Equal(t, 2, b.Height)

	// No pixel from the cropped row or column may survive.
	for _, bx := range b.Boxes {
		for _, p := range bx.Pixels {
			assert.Less(t, int(p.R), 4)
			assert.Less(t, int(p.G), 4)
		}
	}
}

func TestBoxifyDropsAlpha(t *testing.T) {
	m := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			m.SetRGBA(x, y, color.RGBA{10, 15, 20, 0x80})
		}
	}

	b, err := box.Boxify(m, 2)
	require.NoError(t, err)

	for _, p := range b.Boxes[0].Pixels {
		assert.Equal(t, color.RGBA{10, 15, 20, 0xff}, p)
	}
}

func TestBoxifyOffsetBounds(t *testing.T) {
	m := image.NewRGBA(image.Rect(10, 20, 14, 24))
	m.SetRGBA(10, 20, color.RGBA{1, 2, 3, 0xff})

	b, err := box.Boxify(m, 2)
	require.NoError(t, err)

	require.Len(t, b.Boxes, 4)
	assert.Equal(t, color.RGBA{1, 2, 3, 0xff}, b.Boxes[0].Pixels[0])
}
