package graph

import (
	"strings"
	"testing"

	"github.com/chazu/csgforge/pkg/vecmath"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

// buildValidUnion builds a graph rooted at a group containing a union of a
// cube and a sphere — a minimal valid CSG scene touching every Tier 1 edge
// (children, names, roots).
func buildValidUnion() *DesignGraph {
	g := New()

	cubeID := IDFromName("cube/1")
	sphereID := IDFromName("sphere/1")
	unionID := IDFromName("union/1")
	groupID := IDFromName("group/root")

	g.AddNode(&Node{
		ID: cubeID, Kind: NodePrimitive, Name: "box",
		Data: CubeData{Size: vecmath.Vec3{X: 10, Y: 10, Z: 10}},
	})
	g.AddNode(&Node{
		ID: sphereID, Kind: NodePrimitive, Name: "ball",
		Data: SphereData{Radius: 6, Detail: 8},
	})
	g.AddNode(&Node{
		ID: unionID, Kind: NodeBoolean, Name: "combined",
		Children: []NodeID{cubeID, sphereID},
		Data:     BooleanData{Kind: BoolUnion},
	})
	g.AddNode(&Node{
		ID: groupID, Kind: NodeGroup, Name: "scene",
		Children: []NodeID{unionID},
		Data:     GroupData{},
	})
	g.AddRoot(groupID)

	return g
}

func hasMessage(errs []ValidationError, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Validate (Tier 1) tests
// ---------------------------------------------------------------------------

func TestValidate_ValidGraphHasNoErrors(t *testing.T) {
	g := buildValidUnion()
	errs := Validate(g)
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidate_EmptyGraphIsValid(t *testing.T) {
	g := New()
	errs := Validate(g)
	if len(errs) != 0 {
		t.Fatalf("empty graph should have no errors, got %v", errs)
	}
}

func TestValidate_DanglingChildReference(t *testing.T) {
	g := New()
	unionID := IDFromName("union/1")
	g.AddNode(&Node{
		ID: unionID, Kind: NodeBoolean,
		Children: []NodeID{IDFromName("does-not-exist")},
		Data:     BooleanData{Kind: BoolUnion},
	})
	errs := Validate(g)
	if !hasMessage(errs, "does not exist") {
		t.Errorf("expected a dangling reference error, got %v", errs)
	}
}

func TestValidate_CycleDetected(t *testing.T) {
	g := New()
	aID := IDFromName("group/a")
	bID := IDFromName("group/b")
	g.AddNode(&Node{ID: aID, Kind: NodeGroup, Children: []NodeID{bID}, Data: GroupData{}})
	g.AddNode(&Node{ID: bID, Kind: NodeGroup, Children: []NodeID{aID}, Data: GroupData{}})

	errs := Validate(g)
	if !hasMessage(errs, "cycle detected") {
		t.Errorf("expected a cycle error, got %v", errs)
	}
}

func TestValidate_DuplicateNames(t *testing.T) {
	g := New()
	aID := IDFromName("cube/a")
	bID := IDFromName("cube/b")
	g.AddNode(&Node{ID: aID, Kind: NodePrimitive, Name: "dup", Data: CubeData{Size: vecmath.Vec3{X: 1, Y: 1, Z: 1}}})
	g.Nodes[bID] = &Node{ID: bID, Kind: NodePrimitive, Name: "dup", Data: CubeData{Size: vecmath.Vec3{X: 1, Y: 1, Z: 1}}}

	errs := Validate(g)
	if !hasMessage(errs, "duplicate name") {
		t.Errorf("expected duplicate name error, got %v", errs)
	}
}

func TestValidate_DanglingRoot(t *testing.T) {
	g := New()
	g.AddRoot(IDFromName("nonexistent"))
	errs := Validate(g)
	if !hasMessage(errs, "root reference") {
		t.Errorf("expected a dangling root error, got %v", errs)
	}
}

func TestValidate_OrphanNodeWarning(t *testing.T) {
	g := buildValidUnion()
	orphanID := IDFromName("cube/orphan")
	g.AddNode(&Node{ID: orphanID, Kind: NodePrimitive, Name: "lonely", Data: CubeData{Size: vecmath.Vec3{X: 1, Y: 1, Z: 1}}})

	result := ValidateAll(g)
	if len(result.Errors) != 0 {
		t.Fatalf("orphan should not be a blocking error, got %v", result.Errors)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w.Message, "orphan") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an orphan warning, got %v", result.Warnings)
	}
}

func TestValidate_BooleanArity(t *testing.T) {
	g := New()
	cubeID := IDFromName("cube/1")
	unionID := IDFromName("union/1")
	g.AddNode(&Node{ID: cubeID, Kind: NodePrimitive, Data: CubeData{Size: vecmath.Vec3{X: 1, Y: 1, Z: 1}}})
	g.AddNode(&Node{ID: unionID, Kind: NodeBoolean, Children: []NodeID{cubeID}, Data: BooleanData{Kind: BoolUnion}})

	errs := Validate(g)
	if !hasMessage(errs, "needs at least 2") {
		t.Errorf("expected boolean arity error, got %v", errs)
	}
}

func TestValidate_MinkowskiArity(t *testing.T) {
	g := New()
	cubeID := IDFromName("cube/1")
	mkID := IDFromName("minkowski/1")
	g.AddNode(&Node{ID: cubeID, Kind: NodePrimitive, Data: CubeData{Size: vecmath.Vec3{X: 1, Y: 1, Z: 1}}})
	g.AddNode(&Node{ID: mkID, Kind: NodeMinkowski, Children: []NodeID{cubeID}, Data: MinkowskiData{}})

	errs := Validate(g)
	if !hasMessage(errs, "needs exactly 2") {
		t.Errorf("expected minkowski arity error, got %v", errs)
	}
}

func TestValidate_HullEmptyOperands(t *testing.T) {
	g := New()
	hullID := IDFromName("hull/1")
	g.AddNode(&Node{ID: hullID, Kind: NodeHull, Data: HullData{}})

	errs := Validate(g)
	if !hasMessage(errs, "no operands") {
		t.Errorf("expected hull operand error, got %v", errs)
	}
}

func TestValidate_ExtrudeArity(t *testing.T) {
	g := New()
	circleID := IDFromName("circle/1")
	extrudeID := IDFromName("extrude/1")
	g.AddNode(&Node{ID: circleID, Kind: NodePrimitive, Data: Circle2DData{Radius: 5, Segments: 16}})
	g.AddNode(&Node{
		ID: extrudeID, Kind: NodeExtrude,
		Children: []NodeID{circleID, circleID}, // bogus: two profiles
		Data:     ExtrudeData{Kind: ExtrudeLinear, Height: 10},
	})
	// Using circleID twice is still 2 children structurally.
	errs := Validate(g)
	if !hasMessage(errs, "needs exactly 1") {
		t.Errorf("expected extrude arity error, got %v", errs)
	}
}
