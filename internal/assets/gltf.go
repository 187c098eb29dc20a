package assets

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// ReadGLTFPositions returns the POSITION data of every mesh primitive in a
// .gltf or .glb file. Node transforms are not applied.
func ReadGLTFPositions(path string) ([]mgl32.Vec3, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, err
	}

	var points []mgl32.Vec3
	for mi, mesh := range doc.Meshes {
		for pi, prim := range mesh.Primitives {
			idx, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				continue
			}
			if idx < 0 || idx >= len(doc.Accessors) {
				return nil, fmt.Errorf("mesh %d primitive %d: accessor %d out of range", mi, pi, idx)
			}
			pos, err := modeler.ReadPosition(doc, doc.Accessors[idx], nil)
			if err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d: %w", mi, pi, err)
			}
			for _, p := range pos {
				points = append(points, mgl32.Vec3(p))
			}
		}
	}
	return points, nil
}

// Normalize centers points on their bounding box and scales the largest
// extent to 1. Degenerate input is only centered.
func Normalize(points []mgl32.Vec3) []mgl32.Vec3 {
	if len(points) == 0 {
		return nil
	}
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		for a := 0; a < 3; a++ {
			lo[a] = min(lo[a], p[a])
			hi[a] = max(hi[a], p[a])
		}
	}
	center := lo.Add(hi).Mul(0.5)
	size := hi.Sub(lo)
	extent := max(size[0], size[1], size[2])

	out := make([]mgl32.Vec3, len(points))
	for i, p := range points {
		q := p.Sub(center)
		if extent > 0 {
			q = q.Mul(1 / extent)
		}
		out[i] = q
	}
	return out
}

// Sample picks n points spread evenly over the input order. When the input
// has fewer than n points they are repeated cyclically.
func Sample(points []mgl32.Vec3, n int) []mgl32.Vec3 {
	if n <= 0 || len(points) == 0 {
		return nil
	}
	out := make([]mgl32.Vec3, n)
	if len(points) < n {
		for i := range out {
			out[i] = points[i%len(points)]
		}
		return out
	}
	step := float64(len(points)) / float64(n)
	for i := range out {
		out[i] = points[int(float64(i)*step)]
	}
	return out
}
