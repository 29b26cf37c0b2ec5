package canvas

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxPPMLineLength is the longest line a PPM file may contain
const maxPPMLineLength = 70

// WritePPM encodes the canvas as a plain-text (P3) PPM image. Each row
// starts on a new line and lines are wrapped at 70 characters.
func (c *Canvas) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n255\n", c.width, c.height)

	img := c.ToImage()
	var line strings.Builder
	for y := 0; y < c.height; y++ {
		line.Reset()
		for x := 0; x < c.width; x++ {
			p := img.RGBAAt(x, y)
			for _, v := range [3]uint8{p.R, p.G, p.B} {
				s := strconv.Itoa(int(v))
				if line.Len() > 0 && line.Len()+1+len(s) > maxPPMLineLength {
					bw.WriteString(line.String())
					bw.WriteByte('\n')
					line.Reset()
				}
				if line.Len() > 0 {
					line.WriteByte(' ')
				}
				line.WriteString(s)
			}
		}
		bw.WriteString(line.String())
		bw.WriteByte('\n')
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write PPM: %w", err)
	}
	return nil
}

// PPM returns the canvas as PPM text
func (c *Canvas) PPM() string {
	var sb strings.Builder
	// strings.Builder never fails
	_ = c.WritePPM(&sb)
	return sb.String()
}
