package render

import (
	"image/color"
)

// Marker and label colors.
var (
	Red   = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Green = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Blue  = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Style controls how keypoints, connections and captions are drawn.
type Style struct {
	Color  color.RGBA
	Radius int
	// Width is the thickness of connection segments in pixels.
	Width int

	// Label is drawn in the top-left corner when non-empty.
	Label      string
	LabelColor color.RGBA
}

// DefaultStyle draws red markers of radius 2 and 3px wide segments.
func DefaultStyle() Style {
	return Style{
		Color:      Red,
		Radius:     2,
		Width:      3,
		LabelColor: Green,
	}
}

// WithColor returns a copy of s using c for markers and segments.
func (s Style) WithColor(c color.RGBA) Style {
	s.Color = c
	return s
}

// WithRadius returns a copy of s with marker radius r.
func (s Style) WithRadius(r int) Style {
	s.Radius = r
	return s
}

// WithLabel returns a copy of s that captions the image with text.
func (s Style) WithLabel(text string) Style {
	s.Label = text
	return s
}
