package main

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/urfave/cli/v2"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/csq/qimg"
	"github.com/csq/qimg/packed"
)

const qimgExt = ".qimg"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func encodeImage(w io.Writer, ext string, m image.Image) error {
	switch ext {
	case ".png":
		return png.Encode(w, m)
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, m, &jpeg.Options{Quality: 90})
	case ".gif":
		return gif.Encode(w, m, nil)
	case ".bmp":
		return bmp.Encode(w, m)
	case ".tif", ".tiff":
		return tiff.Encode(w, m, nil)
	}
	return fmt.Errorf("no encoder for \"%s\" files", ext)
}

func compress(c *cli.Context, codec *qimg.Codec, in string) error {
	if !c.IsSet("box-size") {
		return fmt.Errorf("--box-size is required to compress")
	}

	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return err
	}

	if max := c.Int("max-size"); max > 0 {
		m = imaging.Fit(m, max, max, imaging.Lanczos)
	}

	if c.Bool("median-cut") {
		codec.Quantizer = packed.MedianCut{}
	}

	b, err := codec.Compress(m, c.Int("box-size"))
	if err != nil {
		return err
	}

	out := c.String("output")
	if out == "" {
		out = strings.TrimSuffix(in, filepath.Ext(in)) + qimgExt
	}

	return os.WriteFile(out, b, 0o644)
}

func decompress(c *cli.Context, codec *qimg.Codec, in string) error {
	b, err := os.ReadFile(in)
	if err != nil {
		return err
	}

	m, err := codec.Decompress(b)
	if err != nil {
		return err
	}

	out := c.String("output")
	if out == "" {
		out = strings.TrimSuffix(in, qimgExt) + ".png"
	}

	// Encode fully in memory so a codec failure never leaves a partial
	// output file behind.
	var buf bytes.Buffer
	if err := encodeImage(&buf, strings.ToLower(filepath.Ext(out)), m); err != nil {
		return err
	}

	return os.WriteFile(out, buf.Bytes(), 0o644)
}

func main() {
	app := cli.NewApp()

	app.Name = "qimg"
	app.Usage = "boxed two-tone image compression utility"
	app.ArgsUsage = "FILE"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.IntFlag{
			Name:    "box-size",
			Aliases: []string{"s"},
			Usage:   "box edge length in pixels, required when compressing",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output path, derived from the input path if empty",
		},
		&cli.IntFlag{
			Name:  "max-size",
			Usage: "fit the image within this many pixels per side before compressing",
		},
		&cli.BoolFlag{
			Name:  "median-cut",
			Usage: "pick box colors by median cut instead of the luminance threshold",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Action = func(c *cli.Context) error {
		if c.NArg() < 1 {
			cli.ShowAppHelpAndExit(c, 1)
		}

		logger := log.New(io.Discard, "", 0)
		if c.Bool("verbose") {
			logger.SetOutput(os.Stderr)
		}

		codec := qimg.New(logger)

		in := c.Args().First()

		var err error
		if strings.EqualFold(filepath.Ext(in), qimgExt) {
			err = decompress(c, codec, in)
		} else {
			err = compress(c, codec, in)
		}
		if err != nil {
			return cli.Exit(err, 1)
		}

		return nil
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
