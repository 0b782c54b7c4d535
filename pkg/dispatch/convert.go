package dispatch

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"os/exec"

	"github.com/apex/log"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultMagickBin is the ImageMagick converter used when none is configured
const DefaultMagickBin = "convert"

// ErrConversion is returned when the builtin converter cannot read the input
var ErrConversion = errors.New("conversion failed")

// Converter turns an arbitrary image file into a PNG at dst
type Converter interface {
	Convert(src, dst string) error
}

// MagickConverter shells out to ImageMagick
type MagickConverter struct {
	Bin string
}

func (m MagickConverter) bin() string {
	if m.Bin == "" {
		return DefaultMagickBin
	}
	return m.Bin
}

// Convert runs `<bin> src dst` and waits for it to exit
func (m MagickConverter) Convert(src, dst string) error {
	return runTool("convert", m.bin(), src, dst)
}

// BuiltinConverter decodes the formats Go can read and writes an 8-bit PNG
type BuiltinConverter struct{}

// Convert decodes src (JPEG, GIF, PNG, WebP, TIFF or BMP) and encodes dst as
// an RGB or RGBA PNG
func (BuiltinConverter) Convert(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConversion, err)
	}
	defer in.Close()

	img, format, err := image.Decode(in)
	if err != nil {
		return fmt.Errorf("%w: failed to decode %s: %w", ErrConversion, src, err)
	}
	log.WithField("format", format).Debug("decoded with builtin converter")

	// normalize to 8-bit non-premultiplied so the encoder picks RGB or RGBA
	bounds := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	xdraw.NearestNeighbor.Scale(nrgba, nrgba.Bounds(), img, bounds, xdraw.Src, nil)

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConversion, err)
	}
	if err := png.Encode(out, nrgba); err != nil {
		out.Close()
		return fmt.Errorf("%w: failed to encode png: %w", ErrConversion, err)
	}
	return out.Close()
}

// AutoConverter uses ImageMagick when it is installed and the builtin
// converter otherwise
type AutoConverter struct {
	Magick  MagickConverter
	Builtin BuiltinConverter

	lookPath func(string) (string, error)
}

// Convert picks a converter and runs it once
func (a AutoConverter) Convert(src, dst string) error {
	lookPath := a.lookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	if _, err := lookPath(a.Magick.bin()); err != nil {
		log.WithField("bin", a.Magick.bin()).Debug("imagemagick not found, using builtin converter")
		return a.Builtin.Convert(src, dst)
	}
	return a.Magick.Convert(src, dst)
}

// NewConverter returns the converter registered under name
// ("auto", "magick" or "builtin")
func NewConverter(name, magickBin string) (Converter, error) {
	magick := MagickConverter{Bin: magickBin}
	switch name {
	case "", "auto":
		return AutoConverter{Magick: magick}, nil
	case "magick", "imagemagick":
		return magick, nil
	case "builtin":
		return BuiltinConverter{}, nil
	default:
		return nil, fmt.Errorf("unknown converter: %s", name)
	}
}
