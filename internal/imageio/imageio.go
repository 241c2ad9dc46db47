// Package imageio moves images between files, image.Image and gocv.Mat.
package imageio

import (
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode reads any registered image format from path.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open image")
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return img, nil
}

// ReadMat decodes path into a 3 channel BGR Mat. The caller must Close it.
// On error the zero Mat is returned and there is nothing to Close.
func ReadMat(path string) (gocv.Mat, error) {
	img, err := Decode(path)
	if err != nil {
		return gocv.Mat{}, err
	}
	m, err := gocv.ImageToMatRGB(img)
	if err != nil {
		m.Close()
		return gocv.Mat{}, errors.Wrapf(err, "convert %s", path)
	}
	return m, nil
}

// Write encodes img to path, picking the format from the file extension.
func Write(path string, img image.Image) (err error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp":
	default:
		return errors.Errorf("unsupported output format %q", ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "close output")
		}
	}()

	switch ext {
	case ".png":
		err = png.Encode(f, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	case ".tif", ".tiff":
		err = tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	case ".bmp":
		err = bmp.Encode(f, img)
	}
	return errors.Wrapf(err, "encode %s", path)
}
