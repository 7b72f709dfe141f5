package filters

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 30, G: 60, B: 90, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 255, G: 0, B: 0, A: 128})
	return img
}

func TestInvert(t *testing.T) {
	got := Invert(testImage()).NRGBAAt(0, 0)
	want := color.NRGBA{R: 225, G: 195, B: 165, A: 255}
	if got != want {
		t.Errorf("Invert = %v, want %v", got, want)
	}
}

func TestGrayscale(t *testing.T) {
	img := Grayscale(testImage())
	if got := img.NRGBAAt(0, 0); got.R != 60 || got.G != 60 || got.B != 60 || got.A != 255 {
		t.Errorf("Grayscale(0,0) = %v, want gray 60", got)
	}
	if got := img.NRGBAAt(1, 0); got.A != 128 || got.R != got.G || got.G != got.B {
		t.Errorf("Grayscale(1,0) = %v, want gray keeping alpha", got)
	}
}

func TestGrayscaleLuma(t *testing.T) {
	got := GrayscaleLuma(testImage()).NRGBAAt(0, 0)
	if got.R != got.G || got.G != got.B {
		t.Errorf("GrayscaleLuma = %v, want equal channels", got)
	}
}

func TestBrightnessContrast(t *testing.T) {
	if got := Brightness(testImage(), 100).NRGBAAt(0, 0); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("Brightness(100) = %v, want white", got)
	}
	if got := Brightness(testImage(), 0).NRGBAAt(0, 0); got != testImage().NRGBAAt(0, 0) {
		t.Errorf("Brightness(0) = %v, want unchanged", got)
	}
	got := Contrast(testImage(), -100).NRGBAAt(0, 0)
	if got.R != got.G || got.G != got.B {
		t.Errorf("Contrast(-100) = %v, want flat gray", got)
	}
}

func TestPipeline(t *testing.T) {
	img, err := Pipeline(testImage(), []string{"invert", "invert"}, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := img.NRGBAAt(0, 0), testImage().NRGBAAt(0, 0); got != want {
		t.Errorf("double invert = %v, want %v", got, want)
	}

	img, err = Pipeline(testImage(), []string{"grayscale"}, -100, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("grayscale, brightness -100 = %v, want black", got)
	}

	if _, err := Pipeline(testImage(), []string{"sepia"}, 0, 0); err == nil {
		t.Error("unknown filter accepted")
	}
}

func TestGetChannel(t *testing.T) {
	img, err := GetChannel(testImage(), "green")
	if err != nil {
		t.Fatal(err)
	}
	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{G: 60, A: 255}) {
		t.Errorf("GetChannel(green) = %v", got)
	}
	if _, err := GetChannel(testImage(), "alpha"); err == nil {
		t.Error("GetChannel accepted alpha")
	}

	img, err = Pipeline(testImage(), []string{"blue"}, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{B: 90, A: 255}) {
		t.Errorf("blue filter = %v", got)
	}
}

func TestNamedMatchesFunctions(t *testing.T) {
	green, _ := GetChannel(testImage(), "green")
	tests := map[string]*image.NRGBA{
		"invert":    Invert(testImage()),
		"grayscale": Grayscale(testImage()),
		"luma":      GrayscaleLuma(testImage()),
		"green":     green,
	}
	for name, want := range tests {
		got, err := Pipeline(testImage(), []string{name}, 0, 0)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !bytes.Equal(got.Pix, want.Pix) {
			t.Errorf("%s: pipeline %v, function %v", name, got.Pix, want.Pix)
		}
	}
}
