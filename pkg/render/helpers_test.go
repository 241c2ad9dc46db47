package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

// filled returns a rows x cols Mat of type mt with every channel set to v.
func filled(t *testing.T, rows, cols int, mt gocv.MatType, v float64) gocv.Mat {
	t.Helper()
	m := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(v, v, v, v), rows, cols, mt)
	require.False(t, m.Empty())
	return m
}

// vecbAt reads all channels of an 8-bit Mat at row, col.
func vecbAt(m gocv.Mat, row, col int) []uint8 {
	ch := m.Channels()
	v := make([]uint8, ch)
	for c := 0; c < ch; c++ {
		v[c] = m.GetUCharAt(row, col*ch+c)
	}
	return v
}

func rgbaAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}
