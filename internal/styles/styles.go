// Package styles implements the deterministic post-processing filters that can
// be applied to a generated image. Filters always work on the original image,
// never on a previously styled render.
package styles

import (
	"fmt"
	"image"
	"sort"
)

const (
	Cartoon     = "cartoon"
	Sketch      = "sketch"
	OilPainting = "oil_painting"
)

// Filter is a pure image-to-image transform. Given the same input it always
// produces the same output.
type Filter func(image.Image) image.Image

var filters = map[string]Filter{
	Cartoon:     Cartoonize,
	Sketch:      Sketchify,
	OilPainting: OilPaint,
}

// Lookup returns the filter registered under name.
func Lookup(name string) (Filter, bool) {
	f, ok := filters[name]
	return f, ok
}

// Names returns the supported style names in stable order.
func Names() []string {
	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply runs the named filter against img.
func Apply(name string, img image.Image) (image.Image, error) {
	f, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unsupported style %q", name)
	}
	return f(img), nil
}
