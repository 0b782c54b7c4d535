package imgprev

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	xdraw "golang.org/x/image/draw"
)

const (
	// PNG color types accepted by Decode; gray is expanded to RGB
	colorTypeGray      = 0
	colorTypeRGB       = 2
	colorTypeGrayAlpha = 4
	colorTypeRGBA      = 6

	pngHeaderLen = 8
	// signature + IHDR length + "IHDR" + width + height + depth + color type
	ihdrLen = pngHeaderLen + 4 + 4 + 4 + 4 + 1 + 1
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// Image is a decoded raster made of raw 8-bit rows
type Image struct {
	Width       int
	Height      int
	PixelStride int // 3 for RGB, 4 for RGBA
	Rows        [][]byte
}

// NewImage validates and wraps raw pixel rows
func NewImage(width, height, stride int, rows [][]byte) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: image is %dx%d", ErrInvalidGeometry, width, height)
	}
	if stride != 3 && stride != 4 {
		return nil, fmt.Errorf("%w: pixel stride %d", ErrUnsupportedFormat, stride)
	}
	if len(rows) != height {
		return nil, fmt.Errorf("image has %d rows, expected %d", len(rows), height)
	}
	for y, row := range rows {
		if len(row) != width*stride {
			return nil, fmt.Errorf("row %d has %d bytes, expected %d", y, len(row), width*stride)
		}
	}
	return &Image{
		Width:       width,
		Height:      height,
		PixelStride: stride,
		Rows:        rows,
	}, nil
}

// FromImage converts any image.Image into an RGBA Image
func FromImage(img image.Image) (*Image, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	nrgba, ok := img.(*image.NRGBA)
	if !ok || bounds.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, w, h))
		xdraw.NearestNeighbor.Scale(nrgba, nrgba.Bounds(), img, bounds, xdraw.Src, nil)
	}

	rows := make([][]byte, h)
	for y, n := 0, h; y < n; y++ {
		start := y * nrgba.Stride
		rows[y] = nrgba.Pix[start : start+w*4]
	}
	return NewImage(w, h, 4, rows)
}

// DecodeFile opens and decodes the PNG at path
func DecodeFile(path string) (*Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileNotFound, path, err)
	}
	defer file.Close()

	return Decode(file)
}

// Decode reads an 8-bit RGB, RGBA, gray or gray+alpha PNG. Gray channels are
// expanded to RGB, so the result always has a stride of 3 or 4.
//
// Input without a PNG signature yields ErrNotAnImage. Paletted PNGs and any
// bit depth other than 8 yield ErrUnsupportedFormat.
func Decode(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) < pngHeaderLen {
		return nil, fmt.Errorf("failed to read header: %w", io.ErrUnexpectedEOF)
	}
	if !bytes.Equal(data[:pngHeaderLen], pngSignature) {
		return nil, ErrNotAnImage
	}
	if len(data) < ihdrLen || string(data[12:16]) != "IHDR" {
		return nil, fmt.Errorf("failed to decode image: missing IHDR chunk")
	}

	bitDepth := data[24]
	colorType := data[25]

	var stride int
	switch colorType {
	case colorTypeRGB, colorTypeGray:
		stride = 3
	case colorTypeRGBA, colorTypeGrayAlpha:
		stride = 4
	default:
		return nil, fmt.Errorf("%w: unsupported color type %d", ErrUnsupportedFormat, colorType)
	}
	if bitDepth != 8 {
		return nil, fmt.Errorf("%w: unsupported bit depth %d", ErrUnsupportedFormat, bitDepth)
	}

	width := int(binary.BigEndian.Uint32(data[16:20]))
	height := int(binary.BigEndian.Uint32(data[20:24]))

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return NewImage(width, height, stride, flatten(img, stride))
}

// flatten copies the decoded pixels into raw rows of the given stride
func flatten(img image.Image, stride int) [][]byte {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	rows := make([][]byte, h)

	switch src := img.(type) {
	case *image.NRGBA:
		for y, n := 0, h; y < n; y++ {
			rows[y] = packRow(src.Pix[y*src.Stride:y*src.Stride+w*4], w, stride)
		}
	case *image.RGBA:
		// opaque truecolor, premultiplied and raw values are identical
		for y, n := 0, h; y < n; y++ {
			rows[y] = packRow(src.Pix[y*src.Stride:y*src.Stride+w*4], w, stride)
		}
	default:
		nrgba := image.NewNRGBA(image.Rect(0, 0, w, h))
		xdraw.NearestNeighbor.Scale(nrgba, nrgba.Bounds(), img, bounds, xdraw.Src, nil)
		return flatten(nrgba, stride)
	}
	return rows
}

// packRow repacks a 4-byte-per-pixel row into stride bytes per pixel
func packRow(pix []byte, width, stride int) []byte {
	row := make([]byte, width*stride)
	if stride == 4 {
		copy(row, pix)
		return row
	}
	for x, n := 0, width; x < n; x++ {
		copy(row[x*stride:x*stride+3], pix[x*4:x*4+3])
	}
	return row
}
