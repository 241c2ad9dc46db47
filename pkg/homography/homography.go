// Package homography applies planar 3x3 transforms to keypoints using
// homogeneous coordinates.
package homography

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/Dzusmin/matchviz/pkg/keypoint"
)

// ErrShape is returned when a transform is not 3x3.
var ErrShape = errors.New("homography must be 3x3")

// Matrix is a 3x3 planar homography.
type Matrix struct {
	m *mat.Dense
}

// New builds a homography from 9 row-major values.
func New(vals []float64) (*Matrix, error) {
	if len(vals) != 9 {
		return nil, errors.Wrapf(ErrShape, "got %d values", len(vals))
	}
	data := make([]float64, 9)
	copy(data, vals)
	return &Matrix{m: mat.NewDense(3, 3, data)}, nil
}

// FromDense copies a gonum matrix into a homography.
func FromDense(m mat.Matrix) (*Matrix, error) {
	r, c := m.Dims()
	if r != 3 || c != 3 {
		return nil, errors.Wrapf(ErrShape, "got %dx%d", r, c)
	}
	return &Matrix{m: mat.DenseCopyOf(m)}, nil
}

// Identity returns the identity transform.
func Identity() *Matrix {
	return &Matrix{m: mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})}
}

// At returns the element at row i, column j.
func (h *Matrix) At(i, j int) float64 {
	return h.m.At(i, j)
}

// Dense returns a copy of the underlying gonum matrix.
func (h *Matrix) Dense() *mat.Dense {
	return mat.DenseCopyOf(h.m)
}

// Normalizer maps pixel coordinates of an image with the given size into
// [-1, 1].
func Normalizer(height, width int) *Matrix {
	w, h := float64(width), float64(height)
	return &Matrix{m: mat.NewDense(3, 3, []float64{
		2 / w, 0, -1,
		0, 2 / h, -1,
		0, 0, 1,
	})}
}

// Denormalizer is the inverse of Normalizer.
func Denormalizer(height, width int) *Matrix {
	w, h := float64(width), float64(height)
	return &Matrix{m: mat.NewDense(3, 3, []float64{
		w / 2, 0, w / 2,
		0, h / 2, h / 2,
		0, 0, 1,
	})}
}

// Compose returns the product ms[0]·ms[1]·...·ms[n-1], so the last matrix
// is applied to a point first.
func Compose(ms ...*Matrix) *Matrix {
	out := Identity()
	for _, m := range ms {
		var prod mat.Dense
		prod.Mul(out.m, m.m)
		out.m = &prod
	}
	return out
}

// ToNormalized rewrites a homography between pixel spaces of an index image
// and a query image as the equivalent homography between their [-1, 1]
// spaces.
func ToNormalized(h *Matrix, indexHeight, indexWidth, queryHeight, queryWidth int) *Matrix {
	return Compose(Normalizer(queryHeight, queryWidth), h, Denormalizer(indexHeight, indexWidth))
}

// Project maps pts through h: each point is padded with a 1, multiplied by
// the transpose of h and divided by its third coordinate. A zero third
// coordinate yields infinite or NaN coordinates.
func Project(h *Matrix, pts []keypoint.Point) []keypoint.Point {
	if len(pts) == 0 {
		return []keypoint.Point{}
	}

	padded := mat.NewDense(len(pts), 3, nil)
	for i, p := range pts {
		padded.Set(i, 0, p.X)
		padded.Set(i, 1, p.Y)
		padded.Set(i, 2, 1)
	}

	var projected mat.Dense
	projected.Mul(padded, h.m.T())

	out := make([]keypoint.Point, len(pts))
	for i := range out {
		w := projected.At(i, 2)
		out[i] = keypoint.Point{
			X: projected.At(i, 0) / w,
			Y: projected.At(i, 1) / w,
		}
	}
	return out
}
