package projection

import (
	"testing"

	"github.com/chazu/csgforge/pkg/primitives"
)

func TestProjectCubeGivesFourCornerOutline(t *testing.T) {
	cube := primitives.Cube(4, 4, 4)
	profile := Project(cube)

	if len(profile.Outer) < 3 {
		t.Fatalf("cube projection outline has %d points, want at least 3", len(profile.Outer))
	}
	if len(profile.Holes) != 0 {
		t.Errorf("a convex-hull projection should never produce holes, got %d", len(profile.Holes))
	}

	minX, maxX := profile.Outer[0].X, profile.Outer[0].X
	minY, maxY := profile.Outer[0].Y, profile.Outer[0].Y
	for _, p := range profile.Outer {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	if maxX-minX < 3.999 || maxY-minY < 3.999 {
		t.Errorf("projected cube outline spans [%v,%v] x [%v,%v], want ~4x4", minX, maxX, minY, maxY)
	}
}

func TestProjectSphereIsConvex(t *testing.T) {
	sphere := primitives.Sphere(5, 8)
	profile := Project(sphere)
	if len(profile.Outer) < 3 {
		t.Errorf("sphere projection outline has %d points, want at least 3", len(profile.Outer))
	}
}
