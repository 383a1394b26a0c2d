package styles

import (
	"image"
	"image/color"
)

// Sketchify renders a pencil-sketch look: grayscale, invert, blur, then a
// color-dodge divide of the gray plane by the blurred inverse.
func Sketchify(src image.Image) image.Image {
	rgba := toRGBA(src)
	bounds := rgba.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	gray := grayscale(rgba)

	inverted := make([]uint8, len(gray))
	for i, v := range gray {
		inverted[i] = 255 - v
	}

	blurred := blurPasses(inverted, w, h, 7, 3)

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			// divide: gray * 256 / (255 - blurred), clamped
			denominator := 255 - int(blurred[i])
			if denominator < 1 {
				denominator = 1
			}
			v := int(gray[i]) * 256 / denominator
			if v > 255 {
				v = 255
			}
			out.SetRGBA(x, y, color.RGBA{R: uint8(v), G: uint8(v), B: uint8(v), A: 255})
		}
	}
	return out
}
