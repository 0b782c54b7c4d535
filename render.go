package imgprev

import (
	"fmt"
	"io"
)

// AppendRow appends printed row yy of img to dst, terminated by Reset and a
// newline. Square mode writes every sampled block twice to keep pixels
// roughly square; half-cell mode writes one block per column.
func (p Plan) AppendRow(dst []byte, img *Image, yy int) []byte {
	y := p.SourceRow(yy)
	if y < img.Height {
		row := img.Rows[y]

		step := 2
		if p.HalfCell {
			step = 1
		}

		for xx := 0; xx < p.Columns; xx += step {
			x := int(float64(xx) * p.HorizontalStride)
			if x >= img.Width {
				break
			}
			c, ok := Sample(row, img.PixelStride, img.Width, x, p.HalfCell)
			if !ok {
				break
			}
			dst = AppendBlock(dst, c)
			if !p.HalfCell {
				dst = AppendBlock(dst, c)
			}
		}
	}

	dst = append(dst, Reset...)
	return append(dst, '\n')
}

// Renderer writes images as truecolor cells to an io.Writer
type Renderer struct {
	w       io.Writer
	term    Geometry
	options Options

	lastPlan Plan
}

// NewRenderer creates a renderer for a terminal of the given size
func NewRenderer(w io.Writer, term Geometry, opts Options) *Renderer {
	return &Renderer{
		w:       w,
		term:    term,
		options: opts,
	}
}

// Render plans the grid for img and writes it one row at a time
func (r *Renderer) Render(img *Image) error {
	if img == nil {
		return fmt.Errorf("image cannot be nil")
	}

	plan, err := NewPlan(img.Width, img.Height, r.term, r.options)
	if err != nil {
		return err
	}
	r.lastPlan = plan

	if _, err := io.WriteString(r.w, "\n\n"); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}

	// one buffer for the whole image, one write per row
	line := make([]byte, 0, plan.RowBufferSize())
	for yy, n := 0, plan.TextRows; yy < n; yy++ {
		line = plan.AppendRow(line[:0], img, yy)
		if _, err := r.w.Write(line); err != nil {
			return fmt.Errorf("failed to write row %d: %w", yy, err)
		}
	}

	return nil
}

// LastPlan returns the grid used by the most recent Render call
func (r *Renderer) LastPlan() Plan {
	return r.lastPlan
}
