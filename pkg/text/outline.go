package text

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/chazu/csgforge/pkg/polygon2d"
	"github.com/chazu/csgforge/pkg/vecmath"
)

// curveSteps controls how finely quadratic/cubic Bezier segments in a
// glyph's outline are flattened into line segments.
const curveSteps = 8

// glyphOutline returns one ring per contour of the glyph for r (an outer
// boundary plus, for letters like "o" or "e", one or more counter-wound
// hole rings — see outlineToProfile), the glyph's horizontal advance
// scaled to size, and whether the glyph was found at all.
func glyphOutline(f *sfnt.Font, buf *sfnt.Buffer, r rune, size float64) ([]polygon2d.Ring, float64, bool) {
	gi, err := f.GlyphIndex(buf, r)
	if err != nil || gi == 0 {
		return nil, 0, false
	}

	ppem := fixed.Int26_6(size * 64)
	segments, err := f.LoadGlyph(buf, gi, ppem, nil)
	if err != nil {
		return nil, 0, false
	}

	advance := size * 0.6
	if a, err := f.GlyphAdvance(buf, gi, ppem, font.HintingNone); err == nil {
		advance = fixedToFloat(a)
	}

	var rings []polygon2d.Ring
	var cur polygon2d.Ring
	var pen vecmath.Vec2

	flush := func() {
		if len(cur) >= 3 {
			rings = append(rings, cur)
		}
		cur = nil
	}

	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			flush()
			pen = point(seg.Args[0])
			cur = append(cur, pen)
		case sfnt.SegmentOpLineTo:
			pen = point(seg.Args[0])
			cur = append(cur, pen)
		case sfnt.SegmentOpQuadTo:
			ctrl := point(seg.Args[0])
			end := point(seg.Args[1])
			cur = appendQuadBezier(cur, pen, ctrl, end, curveSteps)
			pen = end
		case sfnt.SegmentOpCubeTo:
			c1 := point(seg.Args[0])
			c2 := point(seg.Args[1])
			end := point(seg.Args[2])
			cur = appendCubicBezier(cur, pen, c1, c2, end, curveSteps)
			pen = end
		}
	}
	flush()

	return rings, advance, len(rings) > 0
}

// outlineToProfile partitions a glyph's contour rings into a single
// polygon2d.Profile: the ring with the largest absolute signed area becomes
// the outer boundary, every other ring becomes a hole. This assumes a
// simple (non-multi-shell) glyph, true for every Latin letterform.
func outlineToProfile(rings []polygon2d.Ring) polygon2d.Profile {
	if len(rings) == 0 {
		return polygon2d.Profile{}
	}
	outerIdx := 0
	outerArea := ringArea(rings[0])
	for i := 1; i < len(rings); i++ {
		if a := ringArea(rings[i]); a > outerArea {
			outerArea = a
			outerIdx = i
		}
	}
	profile := polygon2d.Profile{Outer: rings[outerIdx]}
	for i, ring := range rings {
		if i != outerIdx {
			profile.Holes = append(profile.Holes, ring)
		}
	}
	return profile
}

func ringArea(ring polygon2d.Ring) float64 {
	var sum float64
	n := len(ring)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += ring[i].X*ring[j].Y - ring[j].X*ring[i].Y
	}
	if sum < 0 {
		sum = -sum
	}
	return sum / 2
}

func point(p fixed.Point26_6) vecmath.Vec2 {
	return vecmath.Vec2{X: fixedToFloat(p.X), Y: fixedToFloat(p.Y)}
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func appendQuadBezier(ring polygon2d.Ring, p0, p1, p2 vecmath.Vec2, steps int) polygon2d.Ring {
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		mt := 1 - t
		x := mt*mt*p0.X + 2*mt*t*p1.X + t*t*p2.X
		y := mt*mt*p0.Y + 2*mt*t*p1.Y + t*t*p2.Y
		ring = append(ring, vecmath.Vec2{X: x, Y: y})
	}
	return ring
}

func appendCubicBezier(ring polygon2d.Ring, p0, p1, p2, p3 vecmath.Vec2, steps int) polygon2d.Ring {
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		mt := 1 - t
		x := mt*mt*mt*p0.X + 3*mt*mt*t*p1.X + 3*mt*t*t*p2.X + t*t*t*p3.X
		y := mt*mt*mt*p0.Y + 3*mt*mt*t*p1.Y + 3*mt*t*t*p2.Y + t*t*t*p3.Y
		ring = append(ring, vecmath.Vec2{X: x, Y: y})
	}
	return ring
}
