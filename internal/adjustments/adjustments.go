// Adjusts image dimensions, orientation, or structure.
package adjustments

import (
	"errors"
	"image"

	"github.com/disintegration/gift"
)

// Crops a region in the image (0,0 is at the top-left of the image)
func Crop(img image.Image, x, y, width, height int) (*image.NRGBA, error) {
	bounds := img.Bounds()

	// Validate bounds
	if x < 0 || y < 0 || width <= 0 || height <= 0 {
		return nil, errors.New("invalid bounds: origin and size must be positive")
	} else if width+x > bounds.Dx() {
		return nil, errors.New("invalid bounds: width out of bounds")
	} else if height+y > bounds.Dy() {
		return nil, errors.New("invalid bounds: height out of bounds")
	}

	rect := image.Rect(x, y, x+width, y+height).Add(bounds.Min)
	g := gift.New(gift.Crop(rect))
	dst := image.NewNRGBA(g.Bounds(bounds))
	g.Draw(dst, img)
	return dst, nil
}

// Shrinks the image to at most width columns, keeping its aspect ratio.
// Images already narrow enough (or a width of 0) are copied unchanged.
func FitWidth(img image.Image, width int) *image.NRGBA {
	var g *gift.GIFT
	if width > 0 && img.Bounds().Dx() > width {
		g = gift.New(gift.Resize(width, 0, gift.NearestNeighborResampling))
	} else {
		g = gift.New()
	}
	dst := image.NewNRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return dst
}
