// Package keypoint holds keypoint coordinates and the arithmetic used to place
// them on an image: mapping from the normalized [-1, 1] range to pixels and
// pairing two keypoint sets for match drawing.
package keypoint

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrLengthMismatch is returned when two keypoint sets that must pair up
// one-to-one have different lengths.
var ErrLengthMismatch = errors.New("keypoint sets differ in length")

// Point is a 2D keypoint. Depending on context it is either normalized to
// [-1, 1] or expressed in pixels.
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by other.
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Edge connects two keypoints by index within one instance.
type Edge struct {
	From, To int
}

// Unnormalize maps keypoints from [-1, 1] into the pixel space of an image
// with the given height and width. The input slice is left untouched.
func Unnormalize(height, width int, kps []Point) []Point {
	if kps == nil {
		return nil
	}
	w, h := float64(width), float64(height)
	out := make([]Point, len(kps))
	for i, kp := range kps {
		out[i] = Point{
			X: (kp.X + 1) * w / 2,
			Y: (kp.Y + 1) * h / 2,
		}
	}
	return out
}

// UnnormalizeInstances applies Unnormalize to every instance of a batch.
func UnnormalizeInstances(height, width int, instances [][]Point) [][]Point {
	out := make([][]Point, len(instances))
	for i, inst := range instances {
		out[i] = Unnormalize(height, width, inst)
	}
	return out
}

// Normalize is the inverse of Unnormalize.
func Normalize(height, width int, kps []Point) []Point {
	if kps == nil {
		return nil
	}
	w, h := float64(width), float64(height)
	out := make([]Point, len(kps))
	for i, kp := range kps {
		out[i] = Point{
			X: kp.X*2/w - 1,
			Y: kp.Y*2/h - 1,
		}
	}
	return out
}

// Translate returns a copy of kps shifted by offset.
func Translate(kps []Point, offset Point) []Point {
	out := make([]Point, len(kps))
	for i, kp := range kps {
		out[i] = kp.Add(offset)
	}
	return out
}

// MatchConnectivity pairs index i of the first set with index i of the second
// set once both have been concatenated into one instance, giving (i, i+n1).
func MatchConnectivity(n1, n2 int) ([]Edge, error) {
	if n1 != n2 {
		return nil, errors.Wrapf(ErrLengthMismatch, "%d vs %d", n1, n2)
	}
	edges := make([]Edge, n1)
	for i := range edges {
		edges[i] = Edge{From: i, To: i + n1}
	}
	return edges, nil
}
