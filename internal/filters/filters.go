// Filters perform color manipulation and per-pixel operations
package filters

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/gift"

	"github.com/anas-shakeel/go-bmpdecode/internal/utils"
)

// apply runs filters over img into a new image.
func apply(img image.Image, filters ...gift.Filter) *image.NRGBA {
	g := gift.New(filters...)
	dst := image.NewNRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return dst
}

// average sets every channel to the integer mean of r, g and b.
func average(r0, g0, b0, a0 float32) (r, g, b, a float32) {
	avg := float32(utils.Average(level(r0), level(g0), level(b0))) / 255
	return avg, avg, avg, a0
}

// level scales a [0, 1] channel to [0, 255].
func level(v float32) int {
	return int(v*255 + 0.5)
}

// Filters by name, shared by the functions below and Named.
var builders = map[string]func() gift.Filter{
	"grayscale": grayscale,
	"luma":      gift.Grayscale,
	"invert":    gift.Invert,
	"red":       func() gift.Filter { return channel(0) },
	"green":     func() gift.Filter { return channel(1) },
	"blue":      func() gift.Filter { return channel(2) },
}

func grayscale() gift.Filter {
	return gift.ColorFunc(average)
}

// channel keeps channel i (0 red, 1 green, 2 blue) and zeroes the other two.
func channel(i int) gift.Filter {
	var keep [3]float32
	keep[i] = 1
	return gift.ColorFunc(func(r0, g0, b0, a0 float32) (r, g, b, a float32) {
		return r0 * keep[0], g0 * keep[1], b0 * keep[2], a0
	})
}

// Inverts (negates) the image
func Invert(img image.Image) *image.NRGBA {
	return apply(img, builders["invert"]())
}

// Converts an image to Black-and-White (plain channel average)
func Grayscale(img image.Image) *image.NRGBA {
	return apply(img, builders["grayscale"]())
}

// Converts an image to Black-and-White (with ITU-R 601-2 Luma Transform)
func GrayscaleLuma(img image.Image) *image.NRGBA {
	return apply(img, builders["luma"]())
}

// Adjusts the Brightness of an image.
// percent ranges from -100 (black) to 100 (white); 0 leaves it unchanged.
func Brightness(img image.Image, percent float32) *image.NRGBA {
	return apply(img, gift.Brightness(percent))
}

// Adjusts the Contrast of an image.
// percent > 0 increases Contrast, percent < 0 decreases it (-100 is flat gray).
func Contrast(img image.Image, percent float32) *image.NRGBA {
	return apply(img, gift.Contrast(percent))
}

// Returns an image containing a single channel of the source image.
// channel can one of (`red`, `green`, and `blue`)
func GetChannel(img image.Image, channel string) (*image.NRGBA, error) {
	switch channel {
	case "red", "green", "blue":
		return apply(img, builders[channel]()), nil
	}
	return nil, errors.New("invalid color channel: only red, green, and blue are supported")
}

// Named returns the filter called name: grayscale, luma, invert, red,
// green or blue.
func Named(name string) (gift.Filter, error) {
	build, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("invalid filter %q: must be grayscale, luma, invert, red, green or blue", name)
	}
	return build(), nil
}

// Pipeline applies the named filters in order, then brightness and contrast
// when they are nonzero.
func Pipeline(img image.Image, names []string, brightness, contrast float32) (*image.NRGBA, error) {
	var list []gift.Filter
	for _, name := range names {
		f, err := Named(name)
		if err != nil {
			return nil, err
		}
		list = append(list, f)
	}
	if brightness != 0 {
		list = append(list, gift.Brightness(brightness))
	}
	if contrast != 0 {
		list = append(list, gift.Contrast(contrast))
	}
	return apply(img, list...), nil
}
