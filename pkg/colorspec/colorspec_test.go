package colorspec

import "testing"

func TestParseNamedColor(t *testing.T) {
	c, err := Parse("red")
	if err != nil {
		t.Fatalf("Parse(\"red\") error = %v", err)
	}
	if c.R != 1 || c.G != 0 || c.B != 0 {
		t.Errorf("red = %+v, want R=1 G=0 B=0", c)
	}
}

func TestParseNamedColorCaseInsensitive(t *testing.T) {
	c, err := Parse("ReD")
	if err != nil {
		t.Fatalf("Parse(\"ReD\") error = %v", err)
	}
	if c.R != 1 || c.G != 0 || c.B != 0 {
		t.Errorf("ReD = %+v, want R=1 G=0 B=0", c)
	}
}

func TestParseHexRGB(t *testing.T) {
	c, err := Parse("#ff8000")
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	if c.A != 1 {
		t.Errorf("hex without alpha should default A=1, got %v", c.A)
	}
	if c.Hex() != "#ff8000" {
		t.Errorf("round-tripped hex = %q, want #ff8000", c.Hex())
	}
}

func TestParseHexRGBA(t *testing.T) {
	c, err := Parse("#11223380")
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	if c.Hex() != "#11223380" {
		t.Errorf("round-tripped hex = %q, want #11223380", c.Hex())
	}
}

func TestParseInvalidHex(t *testing.T) {
	if _, err := Parse("#zzz"); err == nil {
		t.Error("Parse should reject a malformed hex color")
	}
}

func TestParseUnknownName(t *testing.T) {
	if _, err := Parse("not-a-real-color"); err == nil {
		t.Error("Parse should reject an unknown color name")
	}
}

func TestRGBAConstructor(t *testing.T) {
	c := RGBA(0.1, 0.2, 0.3, 0.4)
	if c.R != 0.1 || c.G != 0.2 || c.B != 0.3 || c.A != 0.4 {
		t.Errorf("RGBA = %+v, want {0.1 0.2 0.3 0.4}", c)
	}
}

func TestPropagateKeepsFirstOperand(t *testing.T) {
	first := RGBA(1, 0, 0, 1)
	second := RGBA(0, 1, 0, 1)
	got := Propagate(first, second)
	if got != first {
		t.Errorf("Propagate = %+v, want the first operand %+v", got, first)
	}
}

func TestClampByteBounds(t *testing.T) {
	if got := clampByte(-1); got != 0 {
		t.Errorf("clampByte(-1) = %d, want 0", got)
	}
	if got := clampByte(2); got != 255 {
		t.Errorf("clampByte(2) = %d, want 255", got)
	}
}
