package styles

import (
	"image"
)

// grayscale extracts a luma plane (0-255) from an RGBA image.
func grayscale(img *image.RGBA) []uint8 {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	gray := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(x, y)
			r := int(img.Pix[i])
			g := int(img.Pix[i+1])
			b := int(img.Pix[i+2])
			gray[y*w+x] = uint8((299*r + 587*g + 114*b) / 1000)
		}
	}
	return gray
}

// boxBlur runs a single box blur pass over a plane. Edges are clamped.
// Three passes approximate a gaussian closely enough for the filters here.
func boxBlur(plane []uint8, w, h, radius int) []uint8 {
	if radius < 1 {
		out := make([]uint8, len(plane))
		copy(out, plane)
		return out
	}

	horizontal := make([]uint8, len(plane))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum, count := 0, 0
			for dx := -radius; dx <= radius; dx++ {
				nx := clamp(x+dx, 0, w-1)
				sum += int(plane[y*w+nx])
				count++
			}
			horizontal[y*w+x] = uint8(sum / count)
		}
	}

	out := make([]uint8, len(plane))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum, count := 0, 0
			for dy := -radius; dy <= radius; dy++ {
				ny := clamp(y+dy, 0, h-1)
				sum += int(horizontal[ny*w+x])
				count++
			}
			out[y*w+x] = uint8(sum / count)
		}
	}
	return out
}

func blurPasses(plane []uint8, w, h, radius, passes int) []uint8 {
	out := plane
	for i := 0; i < passes; i++ {
		out = boxBlur(out, w, h, radius)
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
