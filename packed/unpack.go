package packed

import "image"

// Unpack reconstructs a full-resolution raster image from p. The canvas is
// Width·BoxSize by Height·BoxSize, initialized to black with alpha 0xff, so
// grid positions with no box stay black. Placement uses only each box's own
// coordinates; boxes outside the canvas are clipped and when two boxes claim
// the same coordinates the later one wins. A BoxSize of zero yields the
// empty canvas whatever the boxes carry.
func Unpack(p *Image) *image.RGBA {
	s := p.BoxSize
	m := image.NewRGBA(image.Rect(0, 0, p.Width*s, p.Height*s))

	for i := 3; i < len(m.Pix); i += 4 {
		m.Pix[i] = 0xff
	}

	if s == 0 {
		return m
	}

	for _, b := range p.Boxes {
		for i, idx := range b.Index {
			c := b.Dark
			if idx != 0 {
				c = b.Light
			}
			c.A = 0xff
			m.SetRGBA(b.X*s+i%s, b.Y*s+i/s, c)
		}
	}

	return m
}
