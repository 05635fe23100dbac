package packed

import "io"

// MarshalBinary encodes p into the container layout. The total length is
// known up front so the output is built in a single allocation. It fails
// with ErrFieldOverflow before writing anything if a header field does not
// fit; box records are assumed well-formed (Index of length BoxSize² with
// coordinates inside the grid).
func (p *Image) MarshalBinary() ([]byte, error) {
	n := len(p.Boxes)

	if p.BoxSize < 0 || p.BoxSize > 0xff ||
		p.Width < 0 || p.Width > 0xff ||
		p.Height < 0 || p.Height > 0xff ||
		n > 0xffffff {
		return nil, ErrFieldOverflow
	}

	b := make([]byte, 0, headerSize+n*p.recordSize())

	b = append(b, magic...)
	b = append(b, p.Version[0], p.Version[1])
	b = append(b, byte(p.BoxSize), byte(p.Width), byte(p.Height))
	b = append(b, byte(n>>16), byte(n>>8), byte(n))

	for _, box := range p.Boxes {
		b = append(b, byte(box.X), byte(box.Y))
		b = append(b, box.Light.R, box.Light.G, box.Light.B)
		b = append(b, box.Dark.R, box.Dark.G, box.Dark.B)
		b = append(b, box.Index...)
	}

	return b, nil
}

// Encode writes the Image p to w in qimg container format.
func Encode(w io.Writer, p *Image) error {
	b, err := p.MarshalBinary()
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
