package styles

import (
	"image"
	"image/color"
)

const (
	cartoonQuantStep    = 32 // color quantization bucket size
	cartoonEdgeRadius   = 4  // neighborhood for the adaptive edge threshold
	cartoonEdgeOffset   = 9  // how far below the local mean counts as an edge
	cartoonSmoothRadius = 3
)

// Cartoonize flattens colors into quantized regions and overlays dark edges
// detected with an adaptive threshold against the local mean.
func Cartoonize(src image.Image) image.Image {
	rgba := toRGBA(src)
	bounds := rgba.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	// Smooth each channel before quantizing so regions come out flat
	red := channel(rgba, 0)
	green := channel(rgba, 1)
	blue := channel(rgba, 2)
	red = blurPasses(red, w, h, cartoonSmoothRadius, 2)
	green = blurPasses(green, w, h, cartoonSmoothRadius, 2)
	blue = blurPasses(blue, w, h, cartoonSmoothRadius, 2)

	// Edge mask from the luma plane
	gray := grayscale(rgba)
	gray = boxBlur(gray, w, h, 2)
	localMean := boxBlur(gray, w, h, cartoonEdgeRadius)

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if int(gray[i]) < int(localMean[i])-cartoonEdgeOffset {
				out.SetRGBA(x, y, color.RGBA{A: 255})
				continue
			}
			out.SetRGBA(x, y, color.RGBA{
				R: quantize(red[i]),
				G: quantize(green[i]),
				B: quantize(blue[i]),
				A: 255,
			})
		}
	}
	return out
}

func quantize(v uint8) uint8 {
	bucket := int(v) / cartoonQuantStep
	return uint8(bucket*cartoonQuantStep + cartoonQuantStep/2)
}

// channel extracts a single color plane (0=R, 1=G, 2=B) from an RGBA image.
func channel(img *image.RGBA, offset int) []uint8 {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	plane := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			plane[y*w+x] = img.Pix[img.PixOffset(x, y)+offset]
		}
	}
	return plane
}
