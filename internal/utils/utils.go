package utils

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
)

// Returns the average of all given numbers n
func Average(n ...int) int {
	// Sum all numbers
	var sum int
	for _, num := range n {
		sum += num
	}

	// Divide sum by total numbers
	return sum / len(n)
}

// Print a Colored Block in terminal
func ColoredBlock(block string, red int, green int, blue int) string {
	return fmt.Sprintf("\033[48;2;%d;%d;%dm%s\033[0m", red, green, blue, block)
}

// Prints the image as colored blocks, two columns per pixel.
// Transparent pixels are blended onto black.
func PrintImage(w io.Writer, img image.Image) error {
	bw := bufio.NewWriter(w)
	bounds := img.Bounds()

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			// RGBA is alpha-premultiplied
			r, g, b, _ := img.At(x, y).RGBA()
			bw.WriteString(ColoredBlock("  ", int(r>>8), int(g>>8), int(b>>8)))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Hex formats c as #rrggbbaa.
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
