package imgprev

// Sample reads the color for one output cell from a raw row.
//
// In half-cell mode it is the pixel at x. In square mode it is the channel
// average of the pixels at x and x+1; when x+1 falls outside the row there
// is nothing to sample and ok is false. Alpha is ignored.
func Sample(row []byte, stride, width, x int, halfCell bool) (c RGB, ok bool) {
	if x < 0 || x >= width {
		return RGB{}, false
	}

	p := row[x*stride : x*stride+3]
	if halfCell {
		return RGB{R: p[0], G: p[1], B: p[2]}, true
	}

	if x+1 >= width {
		return RGB{}, false
	}
	q := row[(x+1)*stride : (x+1)*stride+3]
	return RGB{
		R: uint8((int(p[0]) + int(q[0])) / 2),
		G: uint8((int(p[1]) + int(q[1])) / 2),
		B: uint8((int(p[2]) + int(q[2])) / 2),
	}, true
}
