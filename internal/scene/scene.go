// Package scene loads YAML files describing what to render: the image pair,
// their keypoint sets and the homography between them.
//
// Example:
//
//	index: frames/0001.png
//	query: frames/0002.png
//	source: [[0.1, -0.2], {x: 0.3, y: 0.4}]
//	target: [[0.12, -0.18], [0.31, 0.42]]
//	homography: [1, 0, 0, 0, 1, 0, 0, 0, 1]
package scene

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/Dzusmin/matchviz/pkg/homography"
	"github.com/Dzusmin/matchviz/pkg/keypoint"
)

// Scene is the decoded content of a scene file.
type Scene struct {
	Index string `yaml:"index"`
	Query string `yaml:"query"`

	Source Points `yaml:"source"`
	Target Points `yaml:"target"`

	// Matrix holds 9 row-major values. Empty means identity. It maps index
	// image coordinates to query image coordinates in the same space as the
	// keypoints: pixels when Pixel is set, [-1, 1] otherwise.
	Matrix []float64 `yaml:"homography"`

	// Pixel marks Source and Target as pixel coordinates instead of [-1, 1].
	Pixel bool `yaml:"pixel"`
}

// Points decodes keypoints written either as [x, y] pairs or as {x:, y:}
// mappings.
type Points []keypoint.Point

type point keypoint.Point

func (p *point) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var pair []float64
	if err := unmarshal(&pair); err == nil {
		if len(pair) != 2 {
			return errors.Errorf("keypoint needs 2 coordinates, got %d", len(pair))
		}
		*p = point{X: pair[0], Y: pair[1]}
		return nil
	}
	var kp keypoint.Point
	if err := unmarshal(&kp); err != nil {
		return err
	}
	*p = point(kp)
	return nil
}

func (ps *Points) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw []point
	if err := unmarshal(&raw); err != nil {
		return err
	}
	out := make(Points, len(raw))
	for i, p := range raw {
		out[i] = keypoint.Point(p)
	}
	*ps = out
	return nil
}

// Parse decodes a scene from YAML.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.UnmarshalStrict(data, &s); err != nil {
		return nil, errors.Wrap(err, "parse scene")
	}
	if len(s.Matrix) != 0 && len(s.Matrix) != 9 {
		return nil, errors.Wrapf(homography.ErrShape, "scene homography has %d values", len(s.Matrix))
	}
	return &s, nil
}

// Load reads a scene file. Relative image paths are resolved against the
// directory holding the file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read scene")
	}
	s, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	dir := filepath.Dir(path)
	s.Index = resolve(dir, s.Index)
	s.Query = resolve(dir, s.Query)
	return s, nil
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// Homography returns the scene's transform, or identity when none is given.
func (s *Scene) Homography() (*homography.Matrix, error) {
	if len(s.Matrix) == 0 {
		return homography.Identity(), nil
	}
	return homography.New(s.Matrix)
}

// NormalizedHomography returns the scene's transform acting on [-1, 1]
// coordinates. A pixel-space matrix is rewritten using the sizes of the
// index and query images.
func (s *Scene) NormalizedHomography(indexHeight, indexWidth, queryHeight, queryWidth int) (*homography.Matrix, error) {
	h, err := s.Homography()
	if err != nil {
		return nil, err
	}
	if !s.Pixel {
		return h, nil
	}
	return homography.ToNormalized(h, indexHeight, indexWidth, queryHeight, queryWidth), nil
}

// Normalized returns pts in [-1, 1] for an image of the given size,
// converting from pixels when the scene says so.
func (s *Scene) Normalized(pts Points, height, width int) []keypoint.Point {
	if s.Pixel {
		return keypoint.Normalize(height, width, pts)
	}
	return append([]keypoint.Point(nil), pts...)
}
