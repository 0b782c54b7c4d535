package imgprev

import "fmt"

// Options controls how an image is laid out on the terminal grid
type Options struct {
	// HalfCell prints one cell per sampled pixel instead of a two cell block
	HalfCell bool
	// MaxColumns caps the output width, ignored when <= 0
	MaxColumns int
	// FitHeight also shrinks the output so the full height fits the terminal
	FitHeight bool
}

// Geometry is the size of the terminal in character cells
type Geometry struct {
	Rows    int
	Columns int
}

// Plan is the output grid computed for one image on one terminal
type Plan struct {
	// Columns is the number of printed cells per row, even in square mode
	Columns int
	// SampleRows is the aspect preserving number of vertical samples
	SampleRows int
	// TextRows is the number of printed rows
	TextRows int
	// HorizontalStride is the number of source pixels per output column
	HorizontalStride float64
	HalfCell         bool

	width int
}

// NewPlan computes the output grid for an image of width x height pixels.
// Character cells are about twice as tall as wide, so two vertical samples
// map to one printed row.
func NewPlan(width, height int, term Geometry, opts Options) (Plan, error) {
	if term.Columns <= 0 || term.Rows <= 0 {
		return Plan{}, fmt.Errorf("%w: terminal is %dx%d", ErrInvalidGeometry, term.Columns, term.Rows)
	}
	if width <= 0 || height <= 0 {
		return Plan{}, fmt.Errorf("%w: image is %dx%d", ErrInvalidGeometry, width, height)
	}

	cols := term.Columns

	if opts.FitHeight {
		candidate := float64(term.Rows) * (float64(width) / float64(height)) * 2
		if candidate < float64(cols) {
			cols = int(candidate)
		}
	}

	if opts.MaxColumns > 0 && cols > opts.MaxColumns {
		cols = opts.MaxColumns
	}

	if !opts.HalfCell {
		cols -= cols % 2
	}

	plan := Plan{
		Columns:          cols,
		HorizontalStride: 1,
		HalfCell:         opts.HalfCell,
		width:            width,
	}
	if cols == 0 {
		return plan, nil
	}

	if width > cols {
		plan.HorizontalStride = float64(width) / float64(cols)
	}
	plan.SampleRows = (height * cols) / width
	plan.TextRows = plan.SampleRows / 2

	return plan, nil
}

// SourceRow returns the source row sampled for printed row yy. The vertical
// step follows the width/columns ratio, not the image height.
func (p Plan) SourceRow(yy int) int {
	if p.Columns == 0 {
		return 0
	}
	return yy * 2 * p.width / p.Columns
}

// RowBufferSize is the largest number of bytes AppendRow writes for one row
func (p Plan) RowBufferSize() int {
	return p.Columns*MaxBlockLen + len(Reset) + 1
}
