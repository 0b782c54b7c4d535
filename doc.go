/*
Package imgprev renders raster images in truecolor terminals as solid
colored character cells.

The image is sampled on a grid planned from the terminal size. Character
cells are roughly twice as tall as they are wide, so by default two
horizontally adjacent source pixels are averaged and printed as a two cell
block, which keeps pixels close to square. Half-cell mode prints one cell per
sampled pixel instead.

Only 8-bit RGB and RGBA PNG files are decoded natively. Package dispatch adds
conversion of other formats and video playback through external tools.

Basic Usage:

	// Simple one-liner
	imgprev.PrintFile("image.png")

	// With configuration
	p, err := imgprev.Open("image.png")
	if err != nil {
	    log.Fatal(err)
	}

	err = p.MaxColumns(80).FitHeight(true).Print()
	if err != nil {
	    log.Fatal(err)
	}

Lower level:

	img, err := imgprev.DecodeFile("image.png")
	if err != nil {
	    log.Fatal(err)
	}

	plan, err := imgprev.NewPlan(img.Width, img.Height, imgprev.Geometry{Rows: 24, Columns: 80}, imgprev.Options{})
	if err != nil {
	    log.Fatal(err)
	}

	line := make([]byte, 0, plan.RowBufferSize())
	for yy := range plan.TextRows {
	    line = plan.AppendRow(line[:0], img, yy)
	    os.Stdout.Write(line)
	}
*/
package imgprev
