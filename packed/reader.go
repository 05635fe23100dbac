package packed

import (
	"bytes"
	"image/color"
	"io"
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

type decoder struct {
	r   io.Reader
	img *Image
}

func (d *decoder) readHeader() (int, error) {
	var hdr [headerSize]byte
	if err := readFull(d.r, hdr[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return 0, ErrTruncated
		}
		return 0, err
	}

	if !bytes.Equal(hdr[:8], magic) {
		return 0, ErrBadMagic
	}

	// The version tag is informational only; any value is accepted.
	d.img.Version = [2]byte{hdr[8], hdr[9]}
	d.img.BoxSize = int(hdr[10])
	d.img.Width = int(hdr[11])
	d.img.Height = int(hdr[12])

	return int(hdr[13])<<16 | int(hdr[14])<<8 | int(hdr[15]), nil
}

func (d *decoder) readBoxes(count int) error {
	s := d.img.BoxSize
	d.img.Boxes = make([]Box, 0, count)

	buf := make([]byte, d.img.recordSize())
	for i := 0; i < count; i++ {
		if err := readFull(d.r, buf); err != nil {
			if err == io.ErrUnexpectedEOF {
				return ErrTruncated
			}
			return err
		}

		index := make([]uint8, s*s)
		copy(index, buf[recordBase:])

		d.img.Boxes = append(d.img.Boxes, Box{
			X:     int(buf[0]),
			Y:     int(buf[1]),
			Light: color.RGBA{buf[2], buf[3], buf[4], 0xff},
			Dark:  color.RGBA{buf[5], buf[6], buf[7], 0xff},
			Index: index,
		})
	}

	return nil
}

func (d *decoder) decode() error {
	count, err := d.readHeader()
	if err != nil {
		return err
	}
	return d.readBoxes(count)
}

// Decode reads a qimg container from r. The declared box count is trusted:
// a stream that ends inside a record fails with ErrTruncated, while data
// after the last declared record is left unread and undetected.
func Decode(r io.Reader) (*Image, error) {
	d := decoder{r: r, img: new(Image)}
	if err := d.decode(); err != nil {
		return nil, err
	}
	return d.img, nil
}

// UnmarshalBinary decodes the container from b with Decode's semantics.
func (p *Image) UnmarshalBinary(b []byte) error {
	d := decoder{r: bytes.NewReader(b), img: p}
	return d.decode()
}
