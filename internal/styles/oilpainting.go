package styles

import (
	"image"
	"image/color"
)

const (
	oilRadius = 3
	oilLevels = 20
)

// OilPaint applies the classic oil-painting effect: every pixel takes the
// average color of the most common intensity bucket in its neighborhood.
func OilPaint(src image.Image) image.Image {
	rgba := toRGBA(src)
	bounds := rgba.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	gray := grayscale(rgba)

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	var counts [oilLevels]int
	var sumR, sumG, sumB [oilLevels]int

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for i := 0; i < oilLevels; i++ {
				counts[i], sumR[i], sumG[i], sumB[i] = 0, 0, 0, 0
			}

			for dy := -oilRadius; dy <= oilRadius; dy++ {
				for dx := -oilRadius; dx <= oilRadius; dx++ {
					nx := clamp(x+dx, 0, w-1)
					ny := clamp(y+dy, 0, h-1)
					level := int(gray[ny*w+nx]) * oilLevels / 256
					i := rgba.PixOffset(nx, ny)
					counts[level]++
					sumR[level] += int(rgba.Pix[i])
					sumG[level] += int(rgba.Pix[i+1])
					sumB[level] += int(rgba.Pix[i+2])
				}
			}

			best := 0
			for i := 1; i < oilLevels; i++ {
				if counts[i] > counts[best] {
					best = i
				}
			}

			n := counts[best]
			out.SetRGBA(x, y, color.RGBA{
				R: uint8(sumR[best] / n),
				G: uint8(sumG[best] / n),
				B: uint8(sumB[best] / n),
				A: 255,
			})
		}
	}
	return out
}
