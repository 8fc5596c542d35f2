// Package text tessellates TrueType/OpenType glyph outlines into extruded
// 3D letterforms, for the text() builtin. Outlines are extracted via
// golang.org/x/image/font/sfnt and walked into 2D polygons, then extruded
// through pkg/extrude. A per-path font cache and a block-glyph fallback
// cover unmapped glyphs or missing fonts.
package text

import (
	"golang.org/x/image/font/sfnt"
	"github.com/rivo/uniseg"

	"github.com/chazu/csgforge/pkg/extrude"
	"github.com/chazu/csgforge/pkg/meshkit"
	"github.com/chazu/csgforge/pkg/polygon2d"
	"github.com/chazu/csgforge/pkg/vecmath"
)

// spaceAdvanceFactor and fallbackAdvanceFactor are cursor-advance heuristics
// for the space character and for glyphs with no outline at all.
const (
	spaceAdvanceFactor    = 0.3
	fallbackAdvanceFactor = 0.6
	glyphSpacingFactor    = 0.05
)

// Render tessellates content into an extruded 3D mesh. size is the glyph
// em-height in model units; thickness is the extrusion depth along Z. If
// fontPath is empty or fails to load, every grapheme renders as a filled
// rectangle (text.rs's "Fallback for missing glyphs" behavior, applied here
// to the whole string rather than per-glyph since there is no bundled
// default face to fall back to individually).
func Render(content, fontPath string, size, thickness float64) *meshkit.Mesh {
	if size <= 0 {
		size = 1
	}

	var font *sfnt.Font
	if fontPath != "" {
		if f, err := LoadFont(fontPath); err == nil {
			font = f
		}
	}

	out := meshkit.New()
	var buf sfnt.Buffer
	cursorX := 0.0

	gr := uniseg.NewGraphemes(content)
	for gr.Next() {
		cluster := gr.Runes()
		if len(cluster) == 0 {
			continue
		}
		r := cluster[0]
		if r == ' ' {
			cursorX += size * spaceAdvanceFactor
			continue
		}

		var glyphMesh *meshkit.Mesh
		var advance float64

		if font != nil {
			if rings, adv, ok := glyphOutline(font, &buf, r, size); ok {
				profile := outlineToProfile(rings)
				if thickness > 0 {
					glyphMesh = extrude.Linear(profile, thickness, 0, 1)
				} else {
					glyphMesh = flatProfileMesh(profile)
				}
				advance = adv
			}
		}

		if glyphMesh == nil {
			glyphMesh = fallbackGlyphMesh(size, thickness)
			advance = size * fallbackAdvanceFactor
		}

		placed := glyphMesh.Transform(vecmath.Translate(vecmath.Vec3{X: cursorX, Y: 0, Z: 0}))
		out.Merge(placed)
		cursorX += advance + size*glyphSpacingFactor
	}

	return out
}

// fallbackGlyphMesh draws a block rectangle standing in for a glyph that
// has no outline available, per text.rs's missing-glyph behavior.
func fallbackGlyphMesh(size, thickness float64) *meshkit.Mesh {
	profile := polygon2d.Square(size*0.5, size)
	// polygon2d.Square centers at origin; shift so the block sits on the
	// baseline like a real glyph would.
	shifted := polygon2d.Profile{Outer: make(polygon2d.Ring, len(profile.Outer))}
	for i, p := range profile.Outer {
		shifted.Outer[i] = vecmath.Vec2{X: p.X + size*0.25, Y: p.Y + size*0.5}
	}
	if thickness > 0 {
		return extrude.Linear(shifted, thickness, 0, 1)
	}
	return flatProfileMesh(shifted)
}

// flatProfileMesh triangulates a profile in the XY plane with zero
// thickness, for content.Thickness == 0 (flat 2D text silhouette).
func flatProfileMesh(profile polygon2d.Profile) *meshkit.Mesh {
	m := meshkit.New()
	ring := polygon2d.Flatten(profile)
	tris := polygon2d.Triangulate(ring)
	for _, t := range tris {
		a := vecmath.Vec3{X: ring[t[0]].X, Y: ring[t[0]].Y, Z: 0}
		b := vecmath.Vec3{X: ring[t[1]].X, Y: ring[t[1]].Y, Z: 0}
		c := vecmath.Vec3{X: ring[t[2]].X, Y: ring[t[2]].Y, Z: 0}
		m.AddTriangle(a, b, c)
	}
	return m.Smoothed()
}
