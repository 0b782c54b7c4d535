package imgprev

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// Preview is an image prepared for printing with a fluent configuration API
type Preview struct {
	source *Image
	reader io.Reader
	path   string

	// Configuration
	options  Options
	geometry *Geometry
	out      io.Writer
}

// New creates a Preview from a decoded Image
func New(img *Image) *Preview {
	if img == nil {
		return nil
	}
	return &Preview{source: img}
}

// Open creates a Preview from a PNG file path
func Open(path string) (*Preview, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}
	return &Preview{path: path}, nil
}

// From creates a Preview from an io.Reader carrying a PNG
func From(r io.Reader) *Preview {
	if r == nil {
		return nil
	}
	return &Preview{reader: r}
}

// HalfCell switches between one cell per pixel and two cell square blocks
func (p *Preview) HalfCell(h bool) *Preview {
	p.options.HalfCell = h
	return p
}

// MaxColumns caps the output width in cells
func (p *Preview) MaxColumns(n int) *Preview {
	if n < 0 {
		n = 0
	}
	p.options.MaxColumns = n
	return p
}

// FitHeight also fits the image to the terminal height
func (p *Preview) FitHeight(f bool) *Preview {
	p.options.FitHeight = f
	return p
}

// Options replaces all display options at once
func (p *Preview) Options(opts Options) *Preview {
	p.options = opts
	return p
}

// Geometry overrides the detected terminal size
func (p *Preview) Geometry(g Geometry) *Preview {
	p.geometry = &g
	return p
}

// Writer sets where Print writes, stdout by default
func (p *Preview) Writer(w io.Writer) *Preview {
	p.out = w
	return p
}

// Render returns the escape sequences for the image
func (p *Preview) Render() (string, error) {
	var buf bytes.Buffer
	if err := p.renderTo(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Print writes the image to the configured writer
func (p *Preview) Print() error {
	out := p.out
	if out == nil {
		out = os.Stdout
	}
	return p.renderTo(out)
}

func (p *Preview) renderTo(w io.Writer) error {
	img, err := p.loadImage()
	if err != nil {
		return err
	}

	geometry, err := p.terminalGeometry()
	if err != nil {
		return err
	}

	return NewRenderer(w, geometry, p.options).Render(img)
}

// loadImage decodes the image from the configured source
func (p *Preview) loadImage() (*Image, error) {
	if p.source != nil {
		return p.source, nil
	}

	if p.path != "" {
		img, err := DecodeFile(p.path)
		if err != nil {
			return nil, err
		}
		p.source = img
		return img, nil
	}

	if p.reader != nil {
		img, err := Decode(p.reader)
		if err != nil {
			return nil, err
		}
		p.source = img
		return img, nil
	}

	return nil, fmt.Errorf("no image source configured")
}

func (p *Preview) terminalGeometry() (Geometry, error) {
	if p.geometry != nil {
		return *p.geometry, nil
	}
	return QueryGeometry()
}

// Convenience functions for quick rendering

// RenderFile renders a PNG file with default settings
func RenderFile(path string) (string, error) {
	p, err := Open(path)
	if err != nil {
		return "", err
	}
	return p.Render()
}

// PrintFile prints a PNG file with default settings
func PrintFile(path string) error {
	p, err := Open(path)
	if err != nil {
		return err
	}
	return p.Print()
}
