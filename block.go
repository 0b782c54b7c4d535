package imgprev

import "strconv"

// blockTemplate is the widest block AppendBlock can produce
const blockTemplate = "\x1b[38;2;rrr;ggg;bbbm\x1b[48;2;rrr;ggg;bbbm "

const (
	// MaxBlockLen is the upper bound on the bytes written per cell
	MaxBlockLen = len(blockTemplate)

	// Reset restores default terminal attributes at the end of a row
	Reset = "\x1b[0m"
)

// RGB is a single 8-bit color
type RGB struct {
	R, G, B uint8
}

// AppendBlock appends a solid cell of color c to dst. Foreground and
// background are set to the same color so the space paints the whole cell.
func AppendBlock(dst []byte, c RGB) []byte {
	dst = append(dst, "\x1b[38;2;"...)
	dst = appendChannels(dst, c)
	dst = append(dst, "\x1b[48;2;"...)
	dst = appendChannels(dst, c)
	return append(dst, ' ')
}

// EncodeBlock returns the escape sequence for one solid cell
func EncodeBlock(c RGB) string {
	return string(AppendBlock(make([]byte, 0, MaxBlockLen), c))
}

func appendChannels(dst []byte, c RGB) []byte {
	dst = strconv.AppendUint(dst, uint64(c.R), 10)
	dst = append(dst, ';')
	dst = strconv.AppendUint(dst, uint64(c.G), 10)
	dst = append(dst, ';')
	dst = strconv.AppendUint(dst, uint64(c.B), 10)
	return append(dst, 'm')
}
