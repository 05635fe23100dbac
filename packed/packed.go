/*
Package packed implements the two-tone quantizer and the qimg container
format.

Each box of the source grid is reduced to two representative colors plus a
1-bit palette index per pixel. The container is written as a 16 byte header
followed by one record per box:

	offset 0   8 bytes  magic "csq/qimg"
	offset 8   2 bytes  version major, minor (currently 0, 1)
	offset 10  1 byte   box size
	offset 11  1 byte   grid width in tile units
	offset 12  1 byte   grid height in tile units
	offset 13  3 bytes  box count, big-endian

Each record is 8+boxSize² bytes: x, y, light RGB, dark RGB, then one index
byte per pixel in row-major local order where 0 selects the dark color and
anything else the light color.
*/
package packed

import (
	"errors"
	"image/color"
)

const (
	// VersionMajor and VersionMinor are the container version written by
	// Pack. The version tag is informational; decoding accepts any value.
	VersionMajor = 0
	VersionMinor = 1

	headerSize = 16
	recordBase = 8
)

var magic = []byte{'c', 's', 'q', '/', 'q', 'i', 'm', 'g'}

var (
	// ErrFieldOverflow is returned when a header field does not fit its
	// byte width: box size or grid dimensions above 255, or more than
	// 2²⁴−1 boxes.
	ErrFieldOverflow = errors.New("qimg: header field exceeds byte width")

	// ErrBadMagic is returned when the first eight bytes are not
	// "csq/qimg". Any mismatched byte rejects the whole stream.
	ErrBadMagic = errors.New("qimg: bad magic")

	// ErrTruncated is returned when the stream ends inside the header or
	// a box record. The declared box count is otherwise trusted: trailing
	// data after the last record is not detected.
	ErrTruncated = errors.New("qimg: truncated data")
)

// Box is one quantized tile. Index holds one byte per pixel in the same
// row-major order as the source box; 0 selects Dark, anything else Light.
type Box struct {
	X, Y  int
	Light color.RGBA
	Dark  color.RGBA
	Index []uint8
}

// Image is a fully quantized image. Boxes are serialized in slice order but
// each box carries its own grid coordinates, so decoding never depends on
// the order in which boxes appear.
type Image struct {
	Version [2]byte
	BoxSize int
	Width   int
	Height  int
	Boxes   []Box
}

func (p *Image) recordSize() int {
	return recordBase + p.BoxSize*p.BoxSize
}
