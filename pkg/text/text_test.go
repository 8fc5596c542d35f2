package text

import "testing"

func TestRenderWithoutFontUsesFallbackBlocks(t *testing.T) {
	mesh := Render("AB", "", 10, 2)
	if mesh.IsEmpty() {
		t.Fatal("fallback rendering should still produce geometry")
	}
}

func TestRenderEmptyStringProducesEmptyMesh(t *testing.T) {
	mesh := Render("", "", 10, 2)
	if !mesh.IsEmpty() {
		t.Error("empty string should produce an empty mesh")
	}
}

func TestRenderSpacesOnlyAdvanceCursor(t *testing.T) {
	mesh := Render("   ", "", 10, 2)
	if !mesh.IsEmpty() {
		t.Error("an all-space string has no glyphs to render")
	}
}

func TestRenderFlatWhenNoThickness(t *testing.T) {
	mesh := Render("A", "", 10, 0)
	if mesh.IsEmpty() {
		t.Fatal("flat text should still produce a triangulated silhouette")
	}
}

func TestRenderNonexistentFontPathFallsBack(t *testing.T) {
	mesh := Render("A", "/nonexistent/path/font.ttf", 10, 2)
	if mesh.IsEmpty() {
		t.Fatal("a missing font file should fall back to block glyphs, not an empty mesh")
	}
}

func TestRenderMultiRuneString(t *testing.T) {
	mesh := Render("Hi!", "", 10, 2)
	if mesh.IsEmpty() {
		t.Fatal("multi-character string should render multiple glyph slots")
	}
}
