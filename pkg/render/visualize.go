// Package render draws keypoints, match lines and homography overlays for
// visually debugging a matching pipeline. Drawing is done with gocv on a
// private 8-bit copy of each input; results come back as image.Image.
package render

import (
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/Dzusmin/matchviz/pkg/homography"
	"github.com/Dzusmin/matchviz/pkg/keypoint"
)

// ErrHeightMismatch is returned when two images cannot be placed side by side
// on one Mat.
var ErrHeightMismatch = errors.New("images differ in height")

// VisualizeKeypoints draws normalized keypoints on a copy of img.
func VisualizeKeypoints(img gocv.Mat, kps []keypoint.Point, style Style) (image.Image, error) {
	canvas, err := prepare(img)
	if err != nil {
		return nil, errors.Wrap(err, "visualize keypoints")
	}
	defer canvas.Close()

	px := keypoint.Unnormalize(canvas.Rows(), canvas.Cols(), kps)
	DrawKeypoints(&canvas, [][]keypoint.Point{px}, nil, style)
	return canvas.ToImage()
}

// DrawMatchLines places img1 and img2 side by side and connects kps1[i] to
// kps2[i] for every i. Both keypoint sets are normalized to their own image.
func DrawMatchLines(img1, img2 gocv.Mat, kps1, kps2 []keypoint.Point) (image.Image, error) {
	return DrawMatchLinesStyled(img1, img2, kps1, kps2, DefaultStyle())
}

// DrawMatchLinesStyled is DrawMatchLines with a caller-provided style.
func DrawMatchLinesStyled(img1, img2 gocv.Mat, kps1, kps2 []keypoint.Point, style Style) (image.Image, error) {
	edges, err := keypoint.MatchConnectivity(len(kps1), len(kps2))
	if err != nil {
		return nil, errors.Wrap(err, "draw match lines")
	}

	left, err := prepare(img1)
	if err != nil {
		return nil, errors.Wrap(err, "draw match lines: first image")
	}
	defer left.Close()

	right, err := prepare(img2)
	if err != nil {
		return nil, errors.Wrap(err, "draw match lines: second image")
	}
	defer right.Close()

	if left.Rows() != right.Rows() {
		return nil, errors.Wrapf(ErrHeightMismatch, "%d vs %d", left.Rows(), right.Rows())
	}

	px1 := keypoint.Unnormalize(left.Rows(), left.Cols(), kps1)
	px2 := keypoint.Unnormalize(right.Rows(), right.Cols(), kps2)
	px2 = keypoint.Translate(px2, keypoint.Pt(float64(left.Cols()), 0))

	all := make([]keypoint.Point, 0, len(px1)+len(px2))
	all = append(all, px1...)
	all = append(all, px2...)

	sideBySide := gocv.NewMat()
	defer sideBySide.Close()
	gocv.Hconcat(left, right, &sideBySide)

	DrawKeypoints(&sideBySide, [][]keypoint.Point{all}, edges, style)
	return sideBySide.ToImage()
}

// DrawTransformPoints shows how well h maps src onto dst. The index image
// gets src in red; the query image gets dst in red and src projected through
// h in blue. Keypoints are normalized and the projection happens in that
// normalized space.
func DrawTransformPoints(index, query gocv.Mat, h *homography.Matrix, src, dst []keypoint.Point) (image.Image, error) {
	return DrawTransformPointsStyled(index, query, h, src, dst, DefaultStyle())
}

// DrawTransformPointsStyled is DrawTransformPoints with a caller-provided
// style. Projected points keep the style but are drawn in blue, and the label
// is only drawn on the index image.
func DrawTransformPointsStyled(index, query gocv.Mat, h *homography.Matrix, src, dst []keypoint.Point, style Style) (image.Image, error) {
	if len(src) != len(dst) {
		return nil, errors.Wrapf(keypoint.ErrLengthMismatch, "draw transform points: %d vs %d", len(src), len(dst))
	}
	projected := homography.Project(h, src)

	indexOverlay, err := VisualizeKeypoints(index, src, style)
	if err != nil {
		return nil, errors.Wrap(err, "draw transform points: index image")
	}

	canvas, err := prepare(query)
	if err != nil {
		return nil, errors.Wrap(err, "draw transform points: query image")
	}
	defer canvas.Close()

	plain := style.WithLabel("")
	rows, cols := canvas.Rows(), canvas.Cols()
	DrawKeypoints(&canvas, [][]keypoint.Point{keypoint.Unnormalize(rows, cols, dst)}, nil, plain)
	DrawKeypoints(&canvas, [][]keypoint.Point{keypoint.Unnormalize(rows, cols, projected)}, nil, plain.WithColor(Blue))

	queryOverlay, err := canvas.ToImage()
	if err != nil {
		return nil, errors.Wrap(err, "draw transform points: query image")
	}
	return Concat(indexOverlay, queryOverlay, Horizontal), nil
}
