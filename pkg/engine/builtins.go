package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/chazu/csgforge/pkg/colorspec"
	"github.com/chazu/csgforge/pkg/graph"
	"github.com/chazu/csgforge/pkg/vecmath"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms CSG DSL source code before passing it to
// zygomys. It performs three transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: linear-extrude -> linear_extrude
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
//  3. Comment conversion: ; line comments -> // line comments, since
//     zygomys does not accept the Lisp ; comment syntax.
//
// All three transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpNodeRef wraps a graph.NodeID so it can be passed between builtins as
// an operand reference.
type sexpNodeRef struct {
	id   graph.NodeID
	name string // human-readable name for error messages, may be empty
}

func (n *sexpNodeRef) SexpString(ps *zygo.PrintState) string {
	if n.name != "" {
		return fmt.Sprintf("(noderef %q)", n.name)
	}
	return fmt.Sprintf("(noderef %s)", n.id.Short())
}
func (n *sexpNodeRef) Type() *zygo.RegisteredType { return nil }

// sexpVec3 wraps a vecmath.Vec3, used for polyhedron points and as a
// general 3-component literal.
type sexpVec3 struct {
	vec vecmath.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %.3f %.3f %.3f)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpVec2 wraps a vecmath.Vec2, used for polygon2d points.
type sexpVec2 struct {
	vec vecmath.Vec2
}

func (v *sexpVec2) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec2 %.3f %.3f)", v.vec.X, v.vec.Y)
}
func (v *sexpVec2) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value — treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toInt(s zygo.Sexp) (int, error) {
	f, err := toFloat64(s)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toNodeRef extracts a NodeID from a sexpNodeRef.
func toNodeRef(s zygo.Sexp) (graph.NodeID, error) {
	if ref, ok := s.(*sexpNodeRef); ok {
		return ref.id, nil
	}
	return graph.ZeroID, fmt.Errorf("expected a shape, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a Vec3 from a sexpVec3.
func toVec3(s zygo.Sexp) (vecmath.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return vecmath.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toVec2 extracts a Vec2 from a sexpVec2.
func toVec2(s zygo.Sexp) (vecmath.Vec2, error) {
	if v, ok := s.(*sexpVec2); ok {
		return v.vec, nil
	}
	return vecmath.Vec2{}, fmt.Errorf("expected vec2, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// toVec3List converts a list of (vec3 ...) values into a []vecmath.Vec3.
func toVec3List(s zygo.Sexp) ([]vecmath.Vec3, error) {
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, err
	}
	out := make([]vecmath.Vec3, len(items))
	for i, item := range items {
		v, err := toVec3(item)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// toVec2List converts a list of (vec2 ...) values into a []vecmath.Vec2.
func toVec2List(s zygo.Sexp) ([]vecmath.Vec2, error) {
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, err
	}
	out := make([]vecmath.Vec2, len(items))
	for i, item := range items {
		v, err := toVec2(item)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// toFaceList converts a list of lists of integers into a [][]int, the
// polyhedron face-index form.
func toFaceList(s zygo.Sexp) ([][]int, error) {
	rows, err := sexpListToSlice(s)
	if err != nil {
		return nil, err
	}
	out := make([][]int, len(rows))
	for i, row := range rows {
		cols, err := sexpListToSlice(row)
		if err != nil {
			return nil, fmt.Errorf("face %d: %w", i, err)
		}
		face := make([]int, len(cols))
		for j, c := range cols {
			idx, err := toInt(c)
			if err != nil {
				return nil, fmt.Errorf("face %d index %d: %w", i, j, err)
			}
			face[j] = idx
		}
		out[i] = face
	}
	return out, nil
}

// toMat4 converts a list of 4 rows of 4 numbers each (multmatrix's
// row-major convention, translation in the last column) into a vecmath.Mat4.
func toMat4(s zygo.Sexp) (vecmath.Mat4, error) {
	rowsSexp, err := sexpListToSlice(s)
	if err != nil {
		return vecmath.Identity(), fmt.Errorf("expected a list of 4 rows: %w", err)
	}
	if len(rowsSexp) != 4 {
		return vecmath.Identity(), fmt.Errorf("expected exactly 4 rows, got %d", len(rowsSexp))
	}
	var rows [4][4]float64
	for i, rowSexp := range rowsSexp {
		cols, err := sexpListToSlice(rowSexp)
		if err != nil {
			return vecmath.Identity(), fmt.Errorf("row %d: %w", i, err)
		}
		if len(cols) != 4 {
			return vecmath.Identity(), fmt.Errorf("row %d: expected 4 columns, got %d", i, len(cols))
		}
		for j, c := range cols {
			f, err := toFloat64(c)
			if err != nil {
				return vecmath.Identity(), fmt.Errorf("row %d column %d: %w", i, j, err)
			}
			rows[i][j] = f
		}
	}
	return vecmath.FromRows(rows), nil
}

// ---------------------------------------------------------------------------
// Node construction helpers
// ---------------------------------------------------------------------------

// contentID derives a deterministic NodeID from a node's kind, a
// description of its own data, and its ordered children, so that two
// evaluations of identical source produce byte-identical graphs.
func contentID(kind graph.NodeKind, payload string, children []graph.NodeID) graph.NodeID {
	var b strings.Builder
	fmt.Fprintf(&b, "%d|%s", kind, payload)
	for _, c := range children {
		b.WriteByte('|')
		b.WriteString(string(c))
	}
	return graph.NewNodeID(graph.HashContent([]byte(b.String())))
}

// addShapeNode registers n in the graph and marks it as a root: every shape
// starts out top-level, and loses that status via consumeChildren once
// some other builtin consumes it as an operand.
func addShapeNode(g *graph.DesignGraph, n *graph.Node) *sexpNodeRef {
	g.AddNode(n)
	g.AddRoot(n.ID)
	return &sexpNodeRef{id: n.ID, name: n.Name}
}

// consumeChildren un-roots each id: it is no longer a top-level shape once
// some other builtin has taken it as an operand.
func consumeChildren(g *graph.DesignGraph, ids ...graph.NodeID) {
	for _, id := range ids {
		g.Unroot(id)
	}
}

// registerTransformNode builds and installs a NodeTransform wrapping a
// single child under the resolved affine matrix m.
func registerTransformNode(g *graph.DesignGraph, kind graph.TransformKind, payload string, m vecmath.Mat4, childID graph.NodeID) *sexpNodeRef {
	consumeChildren(g, childID)
	id := contentID(graph.NodeTransform, payload, []graph.NodeID{childID})
	n := &graph.Node{
		ID:       id,
		Kind:     graph.NodeTransform,
		Children: []graph.NodeID{childID},
		Data:     graph.TransformData{Kind: kind, Matrix: m},
	}
	return addShapeNode(g, n)
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs all CSG DSL builtins into a zygomys environment.
// The builtins operate on the provided DesignGraph, populating it during
// evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation
// so that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, g *graph.DesignGraph) {

	// -----------------------------------------------------------------------
	// (vec3 1 2 3), (vec2 1 2)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: y: %w", err)
		}
		z, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: z: %w", err)
		}
		return &sexpVec3{vec: vecmath.Vec3{X: x, Y: y, Z: z}}, nil
	})

	env.AddFunction("vec2", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("vec2 requires exactly 2 arguments, got %d", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec2: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec2: y: %w", err)
		}
		return &sexpVec2{vec: vecmath.Vec2{X: x, Y: y}}, nil
	})

	// -----------------------------------------------------------------------
	// 3D primitives
	// -----------------------------------------------------------------------

	env.AddFunction("cube", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("cube requires exactly 3 arguments (x y z), got %d", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cube: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cube: y: %w", err)
		}
		z, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cube: z: %w", err)
		}
		data := graph.CubeData{Size: vecmath.Vec3{X: x, Y: y, Z: z}}
		id := contentID(graph.NodePrimitive, fmt.Sprintf("cube:%g,%g,%g", x, y, z), nil)
		return addShapeNode(g, &graph.Node{ID: id, Kind: graph.NodePrimitive, Data: data}), nil
	})

	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("sphere requires a radius argument")
		}
		r, err := toFloat64(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: radius: %w", err)
		}
		detail := 16
		if v, ok := pa.kw["detail"]; ok {
			detail, err = toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("sphere: detail: %w", err)
			}
		}
		data := graph.SphereData{Radius: r, Detail: detail}
		id := contentID(graph.NodePrimitive, fmt.Sprintf("sphere:%g,%d", r, detail), nil)
		return addShapeNode(g, &graph.Node{ID: id, Kind: graph.NodePrimitive, Data: data}), nil
	})

	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 3 {
			return zygo.SexpNull, fmt.Errorf("cylinder requires height, radius_bottom, radius_top, got %d positional args", len(pa.positional))
		}
		h, err := toFloat64(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: height: %w", err)
		}
		r1, err := toFloat64(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: radius_bottom: %w", err)
		}
		r2, err := toFloat64(pa.positional[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: radius_top: %w", err)
		}
		segments := 32
		if v, ok := pa.kw["segments"]; ok {
			segments, err = toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("cylinder: segments: %w", err)
			}
		}
		data := graph.CylinderData{Height: h, RadiusBottom: r1, RadiusTop: r2, Segments: segments}
		id := contentID(graph.NodePrimitive, fmt.Sprintf("cylinder:%g,%g,%g,%d", h, r1, r2, segments), nil)
		return addShapeNode(g, &graph.Node{ID: id, Kind: graph.NodePrimitive, Data: data}), nil
	})

	env.AddFunction("cone", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 2 {
			return zygo.SexpNull, fmt.Errorf("cone requires height and radius, got %d positional args", len(pa.positional))
		}
		h, err := toFloat64(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cone: height: %w", err)
		}
		r, err := toFloat64(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cone: radius: %w", err)
		}
		segments := 32
		if v, ok := pa.kw["segments"]; ok {
			segments, err = toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("cone: segments: %w", err)
			}
		}
		data := graph.CylinderData{Height: h, RadiusBottom: r, RadiusTop: 0, Segments: segments}
		id := contentID(graph.NodePrimitive, fmt.Sprintf("cone:%g,%g,%d", h, r, segments), nil)
		return addShapeNode(g, &graph.Node{ID: id, Kind: graph.NodePrimitive, Data: data}), nil
	})

	env.AddFunction("prism", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("prism requires sides, height, radius, got %d args", len(args))
		}
		sides, err := toInt(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("prism: sides: %w", err)
		}
		h, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("prism: height: %w", err)
		}
		r, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("prism: radius: %w", err)
		}
		data := graph.PrismData{Sides: sides, Height: h, Radius: r}
		id := contentID(graph.NodePrimitive, fmt.Sprintf("prism:%d,%g,%g", sides, h, r), nil)
		return addShapeNode(g, &graph.Node{ID: id, Kind: graph.NodePrimitive, Data: data}), nil
	})

	env.AddFunction("polyhedron", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("polyhedron requires points and faces arguments, got %d", len(args))
		}
		points, err := toVec3List(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("polyhedron: points: %w", err)
		}
		faces, err := toFaceList(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("polyhedron: faces: %w", err)
		}
		data := graph.PolyhedronData{Points: points, Faces: faces}
		var sb strings.Builder
		sb.WriteString("polyhedron:")
		for _, p := range points {
			fmt.Fprintf(&sb, "%g,%g,%g;", p.X, p.Y, p.Z)
		}
		for _, f := range faces {
			fmt.Fprintf(&sb, "%v;", f)
		}
		id := contentID(graph.NodePrimitive, sb.String(), nil)
		return addShapeNode(g, &graph.Node{ID: id, Kind: graph.NodePrimitive, Data: data}), nil
	})

	// -----------------------------------------------------------------------
	// 2D primitives
	// -----------------------------------------------------------------------

	env.AddFunction("circle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("circle requires a radius argument")
		}
		r, err := toFloat64(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("circle: radius: %w", err)
		}
		segments := 32
		if v, ok := pa.kw["segments"]; ok {
			segments, err = toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("circle: segments: %w", err)
			}
		}
		data := graph.Circle2DData{Radius: r, Segments: segments}
		id := contentID(graph.NodePrimitive, fmt.Sprintf("circle:%g,%d", r, segments), nil)
		return addShapeNode(g, &graph.Node{ID: id, Kind: graph.NodePrimitive, Data: data}), nil
	})

	env.AddFunction("square", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("square requires x and y, got %d args", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("square: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("square: y: %w", err)
		}
		data := graph.Square2DData{Size: vecmath.Vec2{X: x, Y: y}}
		id := contentID(graph.NodePrimitive, fmt.Sprintf("square:%g,%g", x, y), nil)
		return addShapeNode(g, &graph.Node{ID: id, Kind: graph.NodePrimitive, Data: data}), nil
	})

	env.AddFunction("polygon2d", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("polygon2d requires a points argument, got %d args", len(args))
		}
		points, err := toVec2List(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("polygon2d: points: %w", err)
		}
		data := graph.Polygon2DData{Points: points}
		var sb strings.Builder
		sb.WriteString("polygon2d:")
		for _, p := range points {
			fmt.Fprintf(&sb, "%g,%g;", p.X, p.Y)
		}
		id := contentID(graph.NodePrimitive, sb.String(), nil)
		return addShapeNode(g, &graph.Node{ID: id, Kind: graph.NodePrimitive, Data: data}), nil
	})

	// -----------------------------------------------------------------------
	// (text "hello" :font "path/to/font.ttf" :size 10 :thickness 2)
	// -----------------------------------------------------------------------
	env.AddFunction("text", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("text requires a string content argument")
		}
		content, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("text: content: %w", err)
		}
		td := graph.TextData{Content: content, Size: 10, Thickness: 1}
		if v, ok := pa.kw["font"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("text: font: %w", err)
			}
			td.FontPath = s
		}
		if v, ok := pa.kw["size"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("text: size: %w", err)
			}
			td.Size = f
		}
		if v, ok := pa.kw["thickness"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("text: thickness: %w", err)
			}
			td.Thickness = f
		}
		id := contentID(graph.NodePrimitive, fmt.Sprintf("text:%s,%s,%g,%g", td.Content, td.FontPath, td.Size, td.Thickness), nil)
		return addShapeNode(g, &graph.Node{ID: id, Kind: graph.NodePrimitive, Data: td}), nil
	})

	// -----------------------------------------------------------------------
	// (linear_extrude profile :height 10 :twist 90 :scale 0.5)
	// (rotate_extrude profile :angle 360 :segments 64)
	// -----------------------------------------------------------------------
	env.AddFunction("linear_extrude", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("linear_extrude requires a 2D profile argument")
		}
		childID, err := toNodeRef(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("linear_extrude: profile: %w", err)
		}
		ed := graph.ExtrudeData{Kind: graph.ExtrudeLinear, Scale: 1}
		if v, ok := pa.kw["height"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("linear_extrude: height: %w", err)
			}
			ed.Height = f
		}
		if v, ok := pa.kw["twist"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("linear_extrude: twist: %w", err)
			}
			ed.Twist = f
		}
		if v, ok := pa.kw["scale"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("linear_extrude: scale: %w", err)
			}
			ed.Scale = f
		}
		consumeChildren(g, childID)
		payload := fmt.Sprintf("linear_extrude:%g,%g,%g", ed.Height, ed.Twist, ed.Scale)
		id := contentID(graph.NodeExtrude, payload, []graph.NodeID{childID})
		n := &graph.Node{ID: id, Kind: graph.NodeExtrude, Children: []graph.NodeID{childID}, Data: ed}
		return addShapeNode(g, n), nil
	})

	env.AddFunction("rotate_extrude", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("rotate_extrude requires a 2D profile argument")
		}
		childID, err := toNodeRef(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate_extrude: profile: %w", err)
		}
		ed := graph.ExtrudeData{Kind: graph.ExtrudeRotate, Angle: 360, Segments: 32}
		if v, ok := pa.kw["angle"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("rotate_extrude: angle: %w", err)
			}
			ed.Angle = f
		}
		if v, ok := pa.kw["segments"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("rotate_extrude: segments: %w", err)
			}
			ed.Segments = n
		}
		consumeChildren(g, childID)
		payload := fmt.Sprintf("rotate_extrude:%g,%d", ed.Angle, ed.Segments)
		id := contentID(graph.NodeExtrude, payload, []graph.NodeID{childID})
		n := &graph.Node{ID: id, Kind: graph.NodeExtrude, Children: []graph.NodeID{childID}, Data: ed}
		return addShapeNode(g, n), nil
	})

	// -----------------------------------------------------------------------
	// Transforms: translate, rotate_x/y/z, rotate_axis, scale,
	// mirror_x/y/z, multmatrix.
	// -----------------------------------------------------------------------

	env.AddFunction("translate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 4 {
			return zygo.SexpNull, fmt.Errorf("translate requires x y z shape, got %d args", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("translate: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("translate: y: %w", err)
		}
		z, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("translate: z: %w", err)
		}
		childID, err := toNodeRef(args[3])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("translate: shape: %w", err)
		}
		m := vecmath.Translate(vecmath.Vec3{X: x, Y: y, Z: z})
		payload := fmt.Sprintf("translate:%g,%g,%g", x, y, z)
		return registerTransformNode(g, graph.TransformTranslate, payload, m, childID), nil
	})

	rotations := []struct {
		name string
		fn   func(float64) vecmath.Mat4
	}{
		{"rotate_x", vecmath.RotateX},
		{"rotate_y", vecmath.RotateY},
		{"rotate_z", vecmath.RotateZ},
	}
	for _, axis := range rotations {
		axis := axis
		env.AddFunction(axis.name, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 2 {
				return zygo.SexpNull, fmt.Errorf("%s requires degrees and shape, got %d args", axis.name, len(args))
			}
			deg, err := toFloat64(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: degrees: %w", axis.name, err)
			}
			childID, err := toNodeRef(args[1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: shape: %w", axis.name, err)
			}
			m := axis.fn(deg * math.Pi / 180)
			payload := fmt.Sprintf("%s:%g", axis.name, deg)
			return registerTransformNode(g, graph.TransformRotate, payload, m, childID), nil
		})
	}

	env.AddFunction("rotate_axis", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 5 {
			return zygo.SexpNull, fmt.Errorf("rotate_axis requires deg ax ay az shape, got %d args", len(args))
		}
		deg, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate_axis: degrees: %w", err)
		}
		ax, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate_axis: ax: %w", err)
		}
		ay, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate_axis: ay: %w", err)
		}
		az, err := toFloat64(args[3])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate_axis: az: %w", err)
		}
		childID, err := toNodeRef(args[4])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate_axis: shape: %w", err)
		}
		m := vecmath.RotateAxis(vecmath.Vec3{X: ax, Y: ay, Z: az}, deg*math.Pi/180)
		payload := fmt.Sprintf("rotate_axis:%g,%g,%g,%g", deg, ax, ay, az)
		return registerTransformNode(g, graph.TransformRotate, payload, m, childID), nil
	})

	env.AddFunction("scale", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 4 {
			return zygo.SexpNull, fmt.Errorf("scale requires x y z shape, got %d args", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scale: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scale: y: %w", err)
		}
		z, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scale: z: %w", err)
		}
		childID, err := toNodeRef(args[3])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scale: shape: %w", err)
		}
		m := vecmath.Scale(vecmath.Vec3{X: x, Y: y, Z: z})
		payload := fmt.Sprintf("scale:%g,%g,%g", x, y, z)
		return registerTransformNode(g, graph.TransformScale, payload, m, childID), nil
	})

	mirrors := []struct {
		name string
		vec  vecmath.Vec3
	}{
		{"mirror_x", vecmath.Vec3{X: -1, Y: 1, Z: 1}},
		{"mirror_y", vecmath.Vec3{X: 1, Y: -1, Z: 1}},
		{"mirror_z", vecmath.Vec3{X: 1, Y: 1, Z: -1}},
	}
	for _, axis := range mirrors {
		axis := axis
		env.AddFunction(axis.name, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 1 {
				return zygo.SexpNull, fmt.Errorf("%s requires exactly 1 argument (shape), got %d", axis.name, len(args))
			}
			childID, err := toNodeRef(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: shape: %w", axis.name, err)
			}
			m := vecmath.Scale(axis.vec)
			return registerTransformNode(g, graph.TransformMirror, axis.name, m, childID), nil
		})
	}

	env.AddFunction("multmatrix", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("multmatrix requires a matrix and a shape, got %d args", len(args))
		}
		m, err := toMat4(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("multmatrix: matrix: %w", err)
		}
		childID, err := toNodeRef(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("multmatrix: shape: %w", err)
		}
		return registerTransformNode(g, graph.TransformMultmatrix, "multmatrix", m, childID), nil
	})

	// -----------------------------------------------------------------------
	// Boolean operations: union, difference, intersection, hull, minkowski.
	// -----------------------------------------------------------------------

	booleans := []struct {
		name string
		kind graph.BooleanKind
	}{
		{"union", graph.BoolUnion},
		{"difference", graph.BoolDifference},
		{"intersection", graph.BoolIntersection},
	}
	for _, op := range booleans {
		op := op
		env.AddFunction(op.name, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) < 2 {
				return zygo.SexpNull, fmt.Errorf("%s requires at least 2 operands, got %d", op.name, len(args))
			}
			children := make([]graph.NodeID, len(args))
			for i, a := range args {
				id, err := toNodeRef(a)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("%s: operand %d: %w", op.name, i, err)
				}
				children[i] = id
			}
			consumeChildren(g, children...)
			id := contentID(graph.NodeBoolean, fmt.Sprintf("%s:%d", op.name, op.kind), children)
			n := &graph.Node{ID: id, Kind: graph.NodeBoolean, Children: children, Data: graph.BooleanData{Kind: op.kind}}
			if first := g.Get(children[0]); first != nil && first.Color != nil {
				c := colorspec.Propagate(*first.Color, colorspec.ColorSpec{})
				n.Color = &c
			}
			return addShapeNode(g, n), nil
		})
	}

	env.AddFunction("hull", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("hull requires at least 1 operand, got %d", len(args))
		}
		children := make([]graph.NodeID, len(args))
		for i, a := range args {
			id, err := toNodeRef(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("hull: operand %d: %w", i, err)
			}
			children[i] = id
		}
		consumeChildren(g, children...)
		id := contentID(graph.NodeHull, "hull", children)
		n := &graph.Node{ID: id, Kind: graph.NodeHull, Children: children, Data: graph.HullData{}}
		return addShapeNode(g, n), nil
	})

	env.AddFunction("minkowski", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("minkowski requires exactly 2 operands, got %d", len(args))
		}
		children := make([]graph.NodeID, len(args))
		for i, a := range args {
			id, err := toNodeRef(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("minkowski: operand %d: %w", i, err)
			}
			children[i] = id
		}
		consumeChildren(g, children...)
		id := contentID(graph.NodeMinkowski, "minkowski", children)
		n := &graph.Node{ID: id, Kind: graph.NodeMinkowski, Children: children, Data: graph.MinkowskiData{}}
		return addShapeNode(g, n), nil
	})

	// -----------------------------------------------------------------------
	// Color and grouping.
	// -----------------------------------------------------------------------

	env.AddFunction("color", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("color requires a color name and a shape, got %d args", len(args))
		}
		colorName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("color: name: %w", err)
		}
		spec, err := colorspec.Parse(colorName)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("color: %w", err)
		}
		ref, err := toNodeRef(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("color: shape: %w", err)
		}
		target := g.Get(ref)
		if target == nil {
			return zygo.SexpNull, fmt.Errorf("color: unknown shape reference")
		}
		target.Color = &spec
		return &sexpNodeRef{id: ref, name: target.Name}, nil
	})

	env.AddFunction("color_rgba", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 5 {
			return zygo.SexpNull, fmt.Errorf("color_rgba requires r g b a and a shape, got %d args", len(args))
		}
		r, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("color_rgba: r: %w", err)
		}
		gr, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("color_rgba: g: %w", err)
		}
		b, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("color_rgba: b: %w", err)
		}
		a, err := toFloat64(args[3])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("color_rgba: a: %w", err)
		}
		ref, err := toNodeRef(args[4])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("color_rgba: shape: %w", err)
		}
		target := g.Get(ref)
		if target == nil {
			return zygo.SexpNull, fmt.Errorf("color_rgba: unknown shape reference")
		}
		spec := colorspec.ColorSpec{R: r, G: gr, B: b, A: a}
		target.Color = &spec
		return &sexpNodeRef{id: ref, name: target.Name}, nil
	})

	env.AddFunction("group", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("group requires a name argument")
		}
		groupName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("group: name: %w", err)
		}
		children := make([]graph.NodeID, 0, len(args)-1)
		for i := 1; i < len(args); i++ {
			id, err := toNodeRef(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("group: child %d: %w", i, err)
			}
			children = append(children, id)
		}
		consumeChildren(g, children...)
		id := contentID(graph.NodeGroup, "group:"+groupName, children)
		n := &graph.Node{ID: id, Kind: graph.NodeGroup, Name: groupName, Children: children, Data: graph.GroupData{}}
		return addShapeNode(g, n), nil
	})
}
