/*
Package qimg is a lossy image compression library built on boxed two-tone
quantization: the image is cut into fixed-size square boxes and each box is
reduced to two representative colors plus one palette bit per pixel, chosen
by a per-box luminance threshold.

The box and packed subpackages implement the individual pipeline stages;
Codec wires them together:

	compress:   raster → box.Boxify → packed.Pack → MarshalBinary
	decompress: UnmarshalBinary → packed.Unpack → raster
*/
package qimg

import (
	"image"
	"log"
	"runtime"
	"sync"

	"github.com/csq/qimg/box"
	"github.com/csq/qimg/packed"
)

// Codec runs the full compression pipeline. Every stage is deterministic, so
// the number of workers never changes the output.
type Codec struct {
	// Workers is the number of goroutines quantizing boxes during
	// Compress. Values below one mean GOMAXPROCS.
	Workers int

	// Quantizer picks the two colors per box. Nil means packed.Threshold.
	Quantizer packed.Quantizer

	logger *log.Logger
}

// New returns a Codec logging progress and warnings to logger.
func New(logger *log.Logger) *Codec {
	return &Codec{
		logger: logger,
	}
}

// Compress encodes m into the qimg container format using boxSize-sided
// boxes. Rows and columns beyond the largest multiple of boxSize are cropped
// and reported through the logger.
func (c *Codec) Compress(m image.Image, boxSize int) ([]byte, error) {
	b, err := box.Boxify(m, boxSize)
	if err != nil {
		return nil, err
	}

	if dx, dy := m.Bounds().Dx()-b.Width*boxSize, m.Bounds().Dy()-b.Height*boxSize; dx > 0 || dy > 0 {
		c.logger.Printf("cropping %d trailing columns and %d trailing rows\n", dx, dy)
	}

	return c.pack(b).MarshalBinary()
}

// Decompress decodes a qimg container into a raster image.
func (c *Codec) Decompress(data []byte) (image.Image, error) {
	p := new(packed.Image)
	if err := p.UnmarshalBinary(data); err != nil {
		return nil, err
	}

	c.logger.Printf("container version %d.%d, %dx%d boxes of %d pixels\n",
		p.Version[0], p.Version[1], p.Width, p.Height, p.BoxSize)

	return packed.Unpack(p), nil
}

// pack fans the per-box quantization out over a pool of workers. Boxes share
// no state and each worker writes to a disjoint result slot.
func (c *Codec) pack(b *box.Image) *packed.Image {
	q := c.Quantizer
	if q == nil {
		q = packed.Threshold{}
	}

	workers := c.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &packed.Image{
		Version: [2]byte{packed.VersionMajor, packed.VersionMinor},
		BoxSize: b.BoxSize,
		Width:   b.Width,
		Height:  b.Height,
		Boxes:   make([]packed.Box, len(b.Boxes)),
	}

	in := make(chan int)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range in {
				p.Boxes[i] = packed.PackBox(&b.Boxes[i], q)
			}
		}()
	}

	for i := range b.Boxes {
		in <- i
	}
	close(in)
	wg.Wait()

	return p
}
