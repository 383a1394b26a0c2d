package styles

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// testImage builds a small image with enough structure that edge detection
// and quantization have something to chew on.
func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{A: 255}
			switch {
			case x < w/2 && y < h/2:
				c.R, c.G, c.B = 220, 40, 40
			case x >= w/2 && y < h/2:
				c.R, c.G, c.B = 40, 220, 40
			case x < w/2:
				c.R, c.G, c.B = 40, 40, 220
			default:
				c.R, c.G, c.B = 230, 230, 230
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestNames(t *testing.T) {
	names := Names()
	expected := []string{"cartoon", "oil_painting", "sketch"}
	if len(names) != len(expected) {
		t.Fatalf("Names() returned %d styles, want %d", len(names), len(expected))
	}
	for i, name := range expected {
		if names[i] != name {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], name)
		}
	}
}

func TestLookupUnknownStyle(t *testing.T) {
	_, ok := Lookup("origami")
	if ok {
		t.Error("Lookup(origami) should not resolve")
	}
}

func TestApplyUnknownStyleFails(t *testing.T) {
	_, err := Apply("origami", testImage(8, 8))
	if err == nil {
		t.Fatal("Apply with unsupported style should fail")
	}
}

func TestFiltersPreserveDimensions(t *testing.T) {
	src := testImage(32, 24)

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			out, err := Apply(name, src)
			if err != nil {
				t.Fatalf("Apply(%s) failed: %v", name, err)
			}
			bounds := out.Bounds()
			if bounds.Dx() != 32 || bounds.Dy() != 24 {
				t.Errorf("Apply(%s) produced %dx%d, want 32x24", name, bounds.Dx(), bounds.Dy())
			}
		})
	}
}

func TestFiltersAreDeterministic(t *testing.T) {
	src := testImage(32, 32)

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			first, err := Apply(name, src)
			if err != nil {
				t.Fatalf("Apply(%s) failed: %v", name, err)
			}
			second, err := Apply(name, src)
			if err != nil {
				t.Fatalf("Apply(%s) failed: %v", name, err)
			}

			firstPNG, err := EncodePNG(first)
			if err != nil {
				t.Fatalf("encode failed: %v", err)
			}
			secondPNG, err := EncodePNG(second)
			if err != nil {
				t.Fatalf("encode failed: %v", err)
			}
			if !bytes.Equal(firstPNG, secondPNG) {
				t.Errorf("Apply(%s) is not deterministic", name)
			}
		})
	}
}

func TestSketchifyFlatImageIsWhite(t *testing.T) {
	// A featureless image has no edges to draw, so the sketch comes out
	// (near) white everywhere.
	flat := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			flat.SetRGBA(x, y, color.RGBA{R: 128, G: 128, B: 128, A: 255})
		}
	}

	out := Sketchify(flat).(*image.RGBA)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			c := out.RGBAAt(x, y)
			if c.R < 250 {
				t.Fatalf("pixel (%d,%d) = %d, want near white", x, y, c.R)
			}
		}
	}
}

func TestSketchifyIsGrayscale(t *testing.T) {
	out := Sketchify(testImage(16, 16)).(*image.RGBA)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			c := out.RGBAAt(x, y)
			if c.R != c.G || c.G != c.B {
				t.Fatalf("pixel (%d,%d) is not gray: %v", x, y, c)
			}
		}
	}
}

func TestCodecRoundTrip(t *testing.T) {
	src := testImage(10, 10)

	encoded, err := EncodePNG(src)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}

	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	rgba := toRGBA(decoded)
	if !bytes.Equal(rgba.Pix, src.Pix) {
		t.Error("pixels changed across PNG round trip")
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("not an image"))
	if err == nil {
		t.Fatal("Decode should fail on non-image bytes")
	}
}

func TestEncodePNGIsValidPNG(t *testing.T) {
	encoded, err := EncodePNG(testImage(5, 5))
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	_, err = png.Decode(bytes.NewReader(encoded))
	if err != nil {
		t.Fatalf("output is not valid PNG: %v", err)
	}
}
