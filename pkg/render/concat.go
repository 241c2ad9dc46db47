package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Axis selects how Concat lays out its two images.
type Axis int

const (
	// Vertical stacks the second image below the first.
	Vertical Axis = iota
	// Horizontal places the second image to the right of the first.
	Horizontal
)

func (a Axis) String() string {
	switch a {
	case Vertical:
		return "Vertical"
	case Horizontal:
		return "Horizontal"
	default:
		return "Unknown"
	}
}

// Concat pastes im1 and im2 onto a new opaque black canvas. Images are not
// resized; the canvas takes the larger of the two extents across the axis.
func Concat(im1, im2 image.Image, axis Axis) *image.RGBA {
	b1, b2 := im1.Bounds(), im2.Bounds()

	var size, offset image.Point
	if axis == Horizontal {
		size = image.Pt(b1.Dx()+b2.Dx(), max(b1.Dy(), b2.Dy()))
		offset = image.Pt(b1.Dx(), 0)
	} else {
		size = image.Pt(max(b1.Dx(), b2.Dx()), b1.Dy()+b2.Dy())
		offset = image.Pt(0, b1.Dy())
	}

	dst := image.NewRGBA(image.Rectangle{Max: size})
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	draw.Draw(dst, image.Rectangle{Max: b1.Size()}, im1, b1.Min, draw.Src)
	draw.Draw(dst, image.Rectangle{Min: offset, Max: offset.Add(b2.Size())}, im2, b2.Min, draw.Src)
	return dst
}
