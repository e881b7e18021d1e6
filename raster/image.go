package raster

import (
	"image"

	"golang.org/x/image/draw"
)

// FromImage scales img to width x height pixels and turns on every pixel
// whose luma is at least threshold
func FromImage(img image.Image, width, height int, threshold uint8) *Grid {
	g := NewGrid(width, height)
	if width <= 0 || height <= 0 || img.Bounds().Empty() {
		return g
	}

	gray := image.NewGray(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(gray, gray.Bounds(), img, img.Bounds(), draw.Src, nil)

	for y := 0; y < height; y++ {
		row := g.rows[y]
		off := y * gray.Stride
		for x := 0; x < width; x++ {
			row[x] = gray.Pix[off+x] >= threshold
		}
	}
	return g
}
