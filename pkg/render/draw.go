package render

import (
	"image"
	"math"

	"gocv.io/x/gocv"

	"github.com/Dzusmin/matchviz/pkg/keypoint"
)

// DrawKeypoints draws every instance of pixel-space keypoints onto dst as
// filled circles, then draws a segment for each edge. Edges index into each
// instance; edges that fall outside an instance are skipped.
func DrawKeypoints(dst *gocv.Mat, instances [][]keypoint.Point, edges []keypoint.Edge, style Style) {
	for _, kps := range instances {
		drawMarkers(dst, kps, style)
		drawSegments(dst, kps, edges, style)
	}
	if style.Label != "" {
		drawLabel(dst, style)
	}
}

func drawMarkers(img *gocv.Mat, kps []keypoint.Point, style Style) {
	for _, kp := range kps {
		pt, ok := pixel(kp)
		if !ok {
			continue
		}
		gocv.Circle(img, pt, style.Radius, style.Color, -1)
	}
}

func drawSegments(img *gocv.Mat, kps []keypoint.Point, edges []keypoint.Edge, style Style) {
	for _, e := range edges {
		if e.From < 0 || e.To < 0 || e.From >= len(kps) || e.To >= len(kps) {
			continue
		}
		u, okU := pixel(kps[e.From])
		v, okV := pixel(kps[e.To])
		if !okU || !okV {
			continue
		}
		gocv.Line(img, u, v, style.Color, max(style.Width, 1))
	}
}

func drawLabel(img *gocv.Mat, style Style) {
	gocv.PutText(img, style.Label, image.Pt(10, 20), gocv.FontHersheyPlain, 1.2, style.LabelColor, 2)
}

// pixel truncates kp to integer pixel coordinates. Points that are not finite
// (for example after projecting through a degenerate homography) cannot be
// drawn.
func pixel(kp keypoint.Point) (image.Point, bool) {
	if math.IsNaN(kp.X) || math.IsNaN(kp.Y) || math.IsInf(kp.X, 0) || math.IsInf(kp.Y, 0) {
		return image.Point{}, false
	}
	if math.Abs(kp.X) > math.MaxInt32 || math.Abs(kp.Y) > math.MaxInt32 {
		return image.Point{}, false
	}
	return image.Pt(int(kp.X), int(kp.Y)), true
}
