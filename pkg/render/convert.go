package render

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// ErrEmptyImage is returned when an input Mat holds no pixels.
var ErrEmptyImage = errors.New("empty image")

// depthMask extracts the per-channel depth from a Mat type.
const depthMask gocv.MatType = 7

// ToUint8 converts src to 8-bit depth, keeping its channel count.
// Floating point images are taken to be in [0, 1]. Signed and 16-bit depths
// are rescaled into [0, 255]. The caller must Close the returned Mat.
func ToUint8(src gocv.Mat) gocv.Mat {
	dst := gocv.NewMat()
	switch src.Type() & depthMask {
	case gocv.MatTypeCV8U:
		src.CopyTo(&dst)
	case gocv.MatTypeCV8S:
		src.ConvertToWithParams(&dst, gocv.MatTypeCV8U, 1, 128)
	case gocv.MatTypeCV16U:
		src.ConvertToWithParams(&dst, gocv.MatTypeCV8U, 1.0/257, 0)
	case gocv.MatTypeCV16S:
		src.ConvertToWithParams(&dst, gocv.MatTypeCV8U, 1.0/257, 128)
	case gocv.MatTypeCV32F, gocv.MatTypeCV64F:
		src.ConvertToWithParams(&dst, gocv.MatTypeCV8U, 255, 0)
	default:
		src.ConvertTo(&dst, gocv.MatTypeCV8U)
	}
	return dst
}

// toBGR returns an 8-bit, 3 channel copy of src that colored markers can be
// drawn on.
func toBGR(src gocv.Mat) (gocv.Mat, error) {
	dst := gocv.NewMat()
	switch src.Channels() {
	case 1:
		gocv.CvtColor(src, &dst, gocv.ColorGrayToBGR)
	case 3:
		src.CopyTo(&dst)
	case 4:
		gocv.CvtColor(src, &dst, gocv.ColorBGRAToBGR)
	default:
		dst.Close()
		return gocv.Mat{}, errors.Errorf("unsupported channel count %d", src.Channels())
	}
	return dst, nil
}

// prepare turns any input image into a fresh 8-bit BGR canvas. The input is
// never modified. On error the returned Mat is the zero Mat and owns nothing.
func prepare(img gocv.Mat) (gocv.Mat, error) {
	if img.Empty() {
		return gocv.Mat{}, ErrEmptyImage
	}
	u8 := ToUint8(img)
	defer u8.Close()
	return toBGR(u8)
}
