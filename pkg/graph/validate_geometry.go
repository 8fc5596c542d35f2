package graph

import "fmt"

// ---------------------------------------------------------------------------
// Tier 2 — Geometric validation (errors + warnings)
// ---------------------------------------------------------------------------

// validateGeometry runs all Tier 2 geometric checks.
func validateGeometry(g *DesignGraph) ([]ValidationError, []ValidationWarning) {
	var errs []ValidationError
	var warnings []ValidationWarning

	errs = append(errs, validatePositiveDimensions(g)...)
	errs = append(errs, validateBooleanSelfReference(g)...)
	warnings = append(warnings, validateSingularTransforms(g)...)

	return errs, warnings
}

// validatePositiveDimensions checks that every sized primitive has strictly
// positive extents.
func validatePositiveDimensions(g *DesignGraph) []ValidationError {
	var errs []ValidationError

	fail := func(node *Node, msg string) {
		errs = append(errs, ValidationError{NodeID: node.ID, Message: msg, Severity: SeverityError})
	}

	for _, node := range g.Nodes {
		switch d := node.Data.(type) {
		case CubeData:
			if d.Size.X <= 0 || d.Size.Y <= 0 || d.Size.Z <= 0 {
				fail(node, fmt.Sprintf("cube size (%.4f, %.4f, %.4f) must be positive in every axis", d.Size.X, d.Size.Y, d.Size.Z))
			}
		case SphereData:
			if d.Radius <= 0 {
				fail(node, fmt.Sprintf("sphere radius %.4f must be positive", d.Radius))
			}
		case CylinderData:
			if d.Height <= 0 {
				fail(node, fmt.Sprintf("cylinder height %.4f must be positive", d.Height))
			}
			if d.RadiusBottom <= 0 && d.RadiusTop <= 0 {
				fail(node, "cylinder must have a positive radius at top or bottom")
			}
		case PrismData:
			if d.Sides < 3 {
				fail(node, fmt.Sprintf("prism needs at least 3 sides, got %d", d.Sides))
			}
			if d.Height <= 0 || d.Radius <= 0 {
				fail(node, "prism height and radius must be positive")
			}
		case PolyhedronData:
			if len(d.Points) < 4 {
				fail(node, fmt.Sprintf("polyhedron has %d point(s), needs at least 4 to enclose a volume", len(d.Points)))
			}
			if len(d.Faces) < 4 {
				fail(node, fmt.Sprintf("polyhedron has %d face(s), needs at least 4 to enclose a volume", len(d.Faces)))
			}
		}
	}

	return errs
}

// validateBooleanSelfReference catches a boolean node that (directly)
// lists itself as one of its own operands.
func validateBooleanSelfReference(g *DesignGraph) []ValidationError {
	var errs []ValidationError
	for _, node := range g.Nodes {
		if node.Kind != NodeBoolean {
			continue
		}
		for _, c := range node.Children {
			if c == node.ID {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  "boolean node references itself as an operand",
					Severity: SeverityError,
				})
			}
		}
	}
	return errs
}

// validateSingularTransforms warns about a multmatrix/transform node whose
// linear part is near-singular (determinant magnitude below 1e-9), since
// normal transport silently falls back to the identity matrix there.
func validateSingularTransforms(g *DesignGraph) []ValidationWarning {
	var warnings []ValidationWarning
	for _, node := range g.Nodes {
		td, ok := node.Data.(TransformData)
		if !ok {
			continue
		}
		det := td.Matrix.Determinant3()
		if det < 0 {
			det = -det
		}
		if det < 1e-9 {
			warnings = append(warnings, ValidationWarning{
				NodeID:  node.ID,
				Message: fmt.Sprintf("transform matrix is near-singular (det=%.3e); normal transport may degrade", det),
			})
		}
	}
	return warnings
}

// A no-op-difference warning (subtrahend's bounds never touch the base
// operand) requires concrete bounding boxes, which only exist once the
// graph is tessellated, so it is not made here; pkg/tessellate does not
// make it either. Tier 2 in this package stays purely structural/metadata-based.

// ---------------------------------------------------------------------------
// Tier 3 — Advisory warnings
// ---------------------------------------------------------------------------

// validateMaterial runs all Tier 3 advisory checks. This currently covers
// color/material metadata sanity; kept as its own tier (rather than folded
// into Tier 2) so future material-aware checks (e.g. print settings,
// multi-material warnings) can land here without reshuffling callers.
func validateMaterial(g *DesignGraph) []ValidationWarning {
	var warnings []ValidationWarning
	for _, node := range g.Nodes {
		if node.Color != nil && node.Color.A <= 0 && node.Kind == NodePrimitive {
			warnings = append(warnings, ValidationWarning{
				NodeID:  node.ID,
				Message: "primitive has fully transparent color (alpha=0); it will tessellate but render invisibly",
			})
		}
	}
	return warnings
}
