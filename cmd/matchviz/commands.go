package main

import (
	"fmt"
	"image"
	"log"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gocv.io/x/gocv"

	"github.com/Dzusmin/matchviz/internal/imageio"
	"github.com/Dzusmin/matchviz/internal/scene"
	"github.com/Dzusmin/matchviz/pkg/render"
)

type options struct {
	out    string
	show   bool
	radius int
	label  bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "matchviz",
		Short:         "Render keypoints and correspondences for visual debugging",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.out, "out", "o", "out.png", "output image (.png, .jpg, .tif, .bmp)")
	root.PersistentFlags().BoolVar(&opts.show, "show", false, "also display the result in a window")
	root.PersistentFlags().IntVar(&opts.radius, "radius", 2, "marker radius in pixels")
	root.PersistentFlags().BoolVar(&opts.label, "label", false, "caption the output with keypoint counts")

	root.AddCommand(
		&cobra.Command{
			Use:   "keypoints SCENE",
			Short: "Draw the source keypoints on the index image",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(args[0], opts, renderKeypoints)
			},
		},
		&cobra.Command{
			Use:   "matches SCENE",
			Short: "Draw lines between source and target keypoints side by side",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(args[0], opts, renderMatches)
			},
		},
		&cobra.Command{
			Use:   "transform SCENE",
			Short: "Overlay source, target and projected keypoints",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(args[0], opts, renderTransform)
			},
		},
	)
	return root
}

type renderFunc func(s *scene.Scene, opts *options) (image.Image, error)

func run(path string, opts *options, fn renderFunc) error {
	s, err := scene.Load(path)
	if err != nil {
		return err
	}
	log.Printf("Scene %s: %d source, %d target keypoints", path, len(s.Source), len(s.Target))

	out, err := fn(s, opts)
	if err != nil {
		return err
	}

	if err := imageio.Write(opts.out, out); err != nil {
		return err
	}
	log.Printf("Wrote %s (%dx%d)", opts.out, out.Bounds().Dx(), out.Bounds().Dy())

	if opts.show {
		return show(out)
	}
	return nil
}

func renderKeypoints(s *scene.Scene, opts *options) (image.Image, error) {
	index, err := imageio.ReadMat(s.Index)
	if err != nil {
		return nil, err
	}
	defer index.Close()

	style := render.DefaultStyle().WithRadius(opts.radius)
	if opts.label {
		style = style.WithLabel(fmt.Sprintf("KPS: %d", len(s.Source)))
	}
	return render.VisualizeKeypoints(index, s.Normalized(s.Source, index.Rows(), index.Cols()), style)
}

func renderMatches(s *scene.Scene, opts *options) (image.Image, error) {
	index, query, err := readPair(s)
	if err != nil {
		return nil, err
	}
	defer index.Close()
	defer query.Close()

	style := render.DefaultStyle().WithRadius(opts.radius)
	if opts.label {
		style = style.WithLabel(fmt.Sprintf("Matches: %d", len(s.Source)))
	}
	return render.DrawMatchLinesStyled(index, query,
		s.Normalized(s.Source, index.Rows(), index.Cols()),
		s.Normalized(s.Target, query.Rows(), query.Cols()),
		style)
}

func renderTransform(s *scene.Scene, opts *options) (image.Image, error) {
	index, query, err := readPair(s)
	if err != nil {
		return nil, err
	}
	defer index.Close()
	defer query.Close()

	h, err := s.NormalizedHomography(index.Rows(), index.Cols(), query.Rows(), query.Cols())
	if err != nil {
		return nil, err
	}

	style := render.DefaultStyle().WithRadius(opts.radius)
	if opts.label {
		style = style.WithLabel(fmt.Sprintf("Projected: %d", len(s.Source)))
	}
	return render.DrawTransformPointsStyled(index, query, h,
		s.Normalized(s.Source, index.Rows(), index.Cols()),
		s.Normalized(s.Target, query.Rows(), query.Cols()),
		style)
}

// readPair loads the index and query images. Both are closed on error.
func readPair(s *scene.Scene) (gocv.Mat, gocv.Mat, error) {
	index, err := imageio.ReadMat(s.Index)
	if err != nil {
		return gocv.Mat{}, gocv.Mat{}, err
	}
	query, err := imageio.ReadMat(s.Query)
	if err != nil {
		index.Close()
		return gocv.Mat{}, gocv.Mat{}, err
	}
	return index, query, nil
}

func show(img image.Image) error {
	m, err := gocv.ImageToMatRGB(img)
	if err != nil {
		m.Close()
		return errors.Wrap(err, "show")
	}
	defer m.Close()

	window := gocv.NewWindow("matchviz")
	defer window.Close()

	window.IMShow(m)
	window.WaitKey(0)
	return nil
}
