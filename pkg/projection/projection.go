// Package projection flattens a 3D mesh into a 2D outline. Uses a
// convex-hull projection of the mesh's vertices rather than an exact
// silhouette extraction — a documented simplification, in the same spirit
// as treating Minkowski sums as an approximation.
package projection

import (
	"github.com/chazu/csgforge/pkg/meshkit"
	"github.com/chazu/csgforge/pkg/polygon2d"
	"github.com/chazu/csgforge/pkg/vecmath"
)

// Project drops the Z coordinate of every vertex in m and returns the 2D
// convex hull of the resulting point set. This is exact for convex solids
// projected along Z; for non-convex solids it over-approximates the true
// silhouette (concave boundary features are lost), which callers should
// treat as a fast preview rather than a manufacturing-accurate outline.
func Project(m *meshkit.Mesh) polygon2d.Profile {
	pts := make([]vecmath.Vec2, 0, len(m.Vertices))
	for _, v := range m.Vertices {
		pts = append(pts, vecmath.Vec2{X: v.X, Y: v.Y})
	}
	ring := polygon2d.Hull2D(pts)
	return polygon2d.Profile{Outer: ring}
}
