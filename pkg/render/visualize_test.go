package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"github.com/Dzusmin/matchviz/pkg/homography"
	"github.com/Dzusmin/matchviz/pkg/keypoint"
)

var black = color.RGBA{A: 255}

func TestVisualizeKeypoints(t *testing.T) {
	t.Run("draws marker at denormalized position", func(t *testing.T) {
		img := filled(t, 50, 100, gocv.MatTypeCV8UC3, 0)
		defer img.Close()

		out, err := VisualizeKeypoints(img, []keypoint.Point{keypoint.Pt(0, 0)}, DefaultStyle())
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 100, 50), out.Bounds())
		assert.Equal(t, Red, rgbaAt(out, 50, 25))
		assert.Equal(t, Red, rgbaAt(out, 52, 25))
		assert.Equal(t, black, rgbaAt(out, 10, 10))
	})

	t.Run("input image and keypoints untouched", func(t *testing.T) {
		img := filled(t, 50, 100, gocv.MatTypeCV8UC3, 0)
		defer img.Close()
		kps := []keypoint.Point{keypoint.Pt(0, 0)}

		_, err := VisualizeKeypoints(img, kps, DefaultStyle())
		require.NoError(t, err)
		assert.Equal(t, []uint8{0, 0, 0}, vecbAt(img, 25, 50))
		assert.Equal(t, keypoint.Pt(0, 0), kps[0])
	})

	t.Run("float grayscale input", func(t *testing.T) {
		img := filled(t, 20, 20, gocv.MatTypeCV32FC1, 1.0)
		defer img.Close()

		out, err := VisualizeKeypoints(img, []keypoint.Point{keypoint.Pt(-0.5, -0.5)}, DefaultStyle().WithColor(Blue))
		require.NoError(t, err)
		assert.Equal(t, Blue, rgbaAt(out, 5, 5))
		assert.Equal(t, White, rgbaAt(out, 15, 15))
	})

	t.Run("empty image", func(t *testing.T) {
		img := gocv.NewMat()
		defer img.Close()
		_, err := VisualizeKeypoints(img, nil, DefaultStyle())
		assert.Equal(t, ErrEmptyImage, errors.Cause(err))
	})
}

func TestDrawMatchLines(t *testing.T) {
	img1 := filled(t, 50, 100, gocv.MatTypeCV8UC3, 0)
	defer img1.Close()
	img2 := filled(t, 50, 80, gocv.MatTypeCV8UC3, 0)
	defer img2.Close()

	t.Run("side by side with connecting segment", func(t *testing.T) {
		kps1 := []keypoint.Point{keypoint.Pt(0, 0)}
		kps2 := []keypoint.Point{keypoint.Pt(0, 0)}

		out, err := DrawMatchLines(img1, img2, kps1, kps2)
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 180, 50), out.Bounds())
		assert.Equal(t, Red, rgbaAt(out, 50, 25))
		assert.Equal(t, Red, rgbaAt(out, 140, 25))
		assert.Equal(t, Red, rgbaAt(out, 95, 25))
		assert.Equal(t, black, rgbaAt(out, 95, 5))
		assert.Equal(t, keypoint.Pt(0, 0), kps2[0])
	})

	t.Run("length mismatch fails loudly", func(t *testing.T) {
		_, err := DrawMatchLines(img1, img2,
			[]keypoint.Point{keypoint.Pt(0, 0), keypoint.Pt(0.5, 0.5)},
			[]keypoint.Point{keypoint.Pt(0, 0)})
		require.Error(t, err)
		assert.Equal(t, keypoint.ErrLengthMismatch, errors.Cause(err))
	})

	t.Run("height mismatch", func(t *testing.T) {
		short := filled(t, 40, 80, gocv.MatTypeCV8UC3, 0)
		defer short.Close()
		_, err := DrawMatchLines(img1, short, nil, nil)
		assert.Equal(t, ErrHeightMismatch, errors.Cause(err))
	})

	t.Run("custom style", func(t *testing.T) {
		out, err := DrawMatchLinesStyled(img1, img2,
			[]keypoint.Point{keypoint.Pt(0, 0)},
			[]keypoint.Point{keypoint.Pt(0, 0)},
			DefaultStyle().WithColor(Green))
		require.NoError(t, err)
		assert.Equal(t, Green, rgbaAt(out, 95, 25))
	})
}

func TestDrawTransformPoints(t *testing.T) {
	index := filled(t, 50, 100, gocv.MatTypeCV8UC3, 0)
	defer index.Close()
	query := filled(t, 50, 100, gocv.MatTypeCV8UC3, 0)
	defer query.Close()

	src := []keypoint.Point{keypoint.Pt(0, 0)}

	t.Run("identity projects onto source", func(t *testing.T) {
		out, err := DrawTransformPoints(index, query, homography.Identity(), src, []keypoint.Point{keypoint.Pt(-0.5, -0.5)})
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 200, 50), out.Bounds())
		assert.Equal(t, Red, rgbaAt(out, 50, 25))
		// projected point lands where the source point was, in blue
		assert.Equal(t, Blue, rgbaAt(out, 150, 25))
		// target point in red
		assert.Equal(t, Red, rgbaAt(out, 125, 12))
	})

	t.Run("translation", func(t *testing.T) {
		h, err := homography.New([]float64{
			1, 0, 0.5,
			0, 1, 0,
			0, 0, 1,
		})
		require.NoError(t, err)
		out, err := DrawTransformPoints(index, query, h, src, src)
		require.NoError(t, err)
		assert.Equal(t, Red, rgbaAt(out, 150, 25))
		assert.Equal(t, Blue, rgbaAt(out, 175, 25))
	})

	t.Run("degenerate homography still renders", func(t *testing.T) {
		h, err := homography.New([]float64{1, 0, 0, 0, 1, 0, 0, 0, 0})
		require.NoError(t, err)
		out, err := DrawTransformPoints(index, query, h, src, src)
		require.NoError(t, err)
		assert.Equal(t, Red, rgbaAt(out, 150, 25))
	})

	t.Run("styled radius applies to every overlay", func(t *testing.T) {
		h, err := homography.New([]float64{
			1, 0, 0.5,
			0, 1, 0,
			0, 0, 1,
		})
		require.NoError(t, err)
		out, err := DrawTransformPointsStyled(index, query, h, src, src, DefaultStyle().WithRadius(6))
		require.NoError(t, err)
		assert.Equal(t, Red, rgbaAt(out, 55, 25))
		assert.Equal(t, Red, rgbaAt(out, 150, 20))
		assert.Equal(t, Blue, rgbaAt(out, 180, 25))
		assert.Equal(t, black, rgbaAt(out, 57, 25))
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := DrawTransformPoints(index, query, homography.Identity(), src, nil)
		assert.Equal(t, keypoint.ErrLengthMismatch, errors.Cause(err))
	})
}

func TestDrawKeypointsSkipsBadEdges(t *testing.T) {
	img := filled(t, 10, 10, gocv.MatTypeCV8UC3, 0)
	defer img.Close()

	kps := [][]keypoint.Point{{keypoint.Pt(2, 2)}}
	DrawKeypoints(&img, kps, []keypoint.Edge{{From: 0, To: 5}, {From: -1, To: 0}}, DefaultStyle())
	assert.Equal(t, []uint8{0, 0, 255}, vecbAt(img, 2, 2))
	assert.Equal(t, []uint8{0, 0, 0}, vecbAt(img, 9, 9))
}
