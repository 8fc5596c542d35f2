// Package tessellate walks a design graph and lowers it to triangle meshes
// using a geometry kernel. One mesh is produced per rendered object: a
// group's children each render separately, while everything else (a
// primitive, a transform, a boolean/hull/Minkowski, an extrude) collapses
// into a single kernel.Solid before being lowered.
package tessellate

import (
	"fmt"

	"github.com/chazu/csgforge/pkg/extrude"
	"github.com/chazu/csgforge/pkg/graph"
	"github.com/chazu/csgforge/pkg/kernel"
	"github.com/chazu/csgforge/pkg/meshkit"
	"github.com/chazu/csgforge/pkg/polygon2d"
	"github.com/chazu/csgforge/pkg/text"
	"github.com/chazu/csgforge/pkg/vecmath"
)

// Tessellate walks the design graph's roots and produces one triangle mesh
// per rendered object using the provided geometry kernel. The tessellator
// is read-only and never mutates the graph.
func Tessellate(g *graph.DesignGraph, k kernel.Kernel) ([]*kernel.Mesh, error) {
	if g == nil {
		return nil, nil
	}

	var meshes []*kernel.Mesh
	for _, rootID := range g.Roots {
		root := g.Get(rootID)
		if root == nil {
			continue
		}
		collected, err := collectMeshes(g, k, root)
		if err != nil {
			return nil, fmt.Errorf("tessellate: error walking root %s: %w", rootID.Short(), err)
		}
		meshes = append(meshes, collected...)
	}

	return meshes, nil
}

// collectMeshes expands a node into the list of meshes it renders as. A
// group is transparent and contributes one mesh per child; every other
// node kind collapses to a single solid and lowers to exactly one mesh.
func collectMeshes(g *graph.DesignGraph, k kernel.Kernel, n *graph.Node) ([]*kernel.Mesh, error) {
	if n.Kind == graph.NodeGroup {
		var meshes []*kernel.Mesh
		for _, child := range g.Children(n) {
			collected, err := collectMeshes(g, k, child)
			if err != nil {
				return nil, err
			}
			meshes = append(meshes, collected...)
		}
		return meshes, nil
	}

	solid, err := buildSolid(g, k, n)
	if err != nil {
		return nil, err
	}

	mesh, err := k.ToMesh(solid)
	if err != nil {
		return nil, fmt.Errorf("tessellate: ToMesh failed for node %s: %w", n.ID.Short(), err)
	}

	if n.Name != "" {
		mesh.NodeName = n.Name
	} else {
		mesh.NodeName = n.ID.Short()
	}
	mesh.NodeID = string(n.ID)

	return []*kernel.Mesh{mesh}, nil
}

// buildSolid recursively lowers n and its children to a single kernel.Solid.
func buildSolid(g *graph.DesignGraph, k kernel.Kernel, n *graph.Node) (kernel.Solid, error) {
	switch n.Kind {
	case graph.NodePrimitive:
		return buildPrimitive(k, n)
	case graph.NodeTransform:
		return buildTransform(g, k, n)
	case graph.NodeBoolean:
		return buildBoolean(g, k, n)
	case graph.NodeHull:
		return buildHull(g, k, n)
	case graph.NodeMinkowski:
		return buildMinkowski(g, k, n)
	case graph.NodeExtrude:
		return buildExtrude(g, k, n)
	case graph.NodeGroup:
		return nil, fmt.Errorf("tessellate: group node %s cannot be used as an operand", n.ID.Short())
	default:
		return nil, fmt.Errorf("tessellate: node %s has unknown kind %v", n.ID.Short(), n.Kind)
	}
}

// buildPrimitive constructs the solid for a NodePrimitive, dispatching on
// its concrete data type. The 2D profile data types (Circle2DData,
// Square2DData, Polygon2DData) are valid only as an extrude's profile
// child, never as a directly-rendered solid, so they error here.
func buildPrimitive(k kernel.Kernel, n *graph.Node) (kernel.Solid, error) {
	switch data := n.Data.(type) {
	case graph.CubeData:
		return k.Box(data.Size.X, data.Size.Y, data.Size.Z), nil
	case graph.SphereData:
		return k.Sphere(data.Radius, data.Detail), nil
	case graph.CylinderData:
		return k.Cylinder(data.Height, data.RadiusBottom, data.RadiusTop, data.Segments), nil
	case graph.PrismData:
		return k.Prism(data.Sides, data.Height, data.Radius), nil
	case graph.PolyhedronData:
		return k.Polyhedron(data.Points, data.Faces), nil
	case graph.TextData:
		mesh := text.Render(data.Content, data.FontPath, data.Size, data.Thickness)
		return k.Import(mesh), nil
	case graph.Circle2DData, graph.Square2DData, graph.Polygon2DData:
		return nil, fmt.Errorf("node %s: 2D profile used outside linear_extrude/rotate_extrude", n.ID.Short())
	default:
		return nil, fmt.Errorf("node %s: unsupported primitive data type %T", n.ID.Short(), n.Data)
	}
}

// buildTransform recurses into the single child, then applies the node's
// affine matrix to the resulting solid.
func buildTransform(g *graph.DesignGraph, k kernel.Kernel, n *graph.Node) (kernel.Solid, error) {
	td, ok := n.Data.(graph.TransformData)
	if !ok {
		return nil, fmt.Errorf("transform node %s has unexpected data type %T", n.ID.Short(), n.Data)
	}

	children := g.Children(n)
	if len(children) != 1 {
		return nil, fmt.Errorf("transform node %s has %d children, want 1", n.ID.Short(), len(children))
	}

	child, err := buildSolid(g, k, children[0])
	if err != nil {
		return nil, err
	}

	return k.Transform(child, td.Matrix), nil
}

// buildBoolean folds the operand solids left to right through the kernel's
// union/difference/intersection, with the first child as the base operand.
func buildBoolean(g *graph.DesignGraph, k kernel.Kernel, n *graph.Node) (kernel.Solid, error) {
	bd, ok := n.Data.(graph.BooleanData)
	if !ok {
		return nil, fmt.Errorf("boolean node %s has unexpected data type %T", n.ID.Short(), n.Data)
	}

	children := g.Children(n)
	if len(children) < 2 {
		return nil, fmt.Errorf("boolean node %s has %d operand(s), need at least 2", n.ID.Short(), len(children))
	}

	acc, err := buildSolid(g, k, children[0])
	if err != nil {
		return nil, err
	}

	for _, c := range children[1:] {
		operand, err := buildSolid(g, k, c)
		if err != nil {
			return nil, err
		}
		switch bd.Kind {
		case graph.BoolUnion:
			acc = k.Union(acc, operand)
		case graph.BoolDifference:
			acc = k.Difference(acc, operand)
		case graph.BoolIntersection:
			acc = k.Intersection(acc, operand)
		default:
			return nil, fmt.Errorf("boolean node %s has unknown kind %v", n.ID.Short(), bd.Kind)
		}
	}

	return acc, nil
}

// buildHull lowers every child to a solid and wraps them in the kernel's
// convex hull.
func buildHull(g *graph.DesignGraph, k kernel.Kernel, n *graph.Node) (kernel.Solid, error) {
	children := g.Children(n)
	if len(children) < 1 {
		return nil, fmt.Errorf("hull node %s has no operands", n.ID.Short())
	}

	solids := make([]kernel.Solid, 0, len(children))
	for _, c := range children {
		s, err := buildSolid(g, k, c)
		if err != nil {
			return nil, err
		}
		solids = append(solids, s)
	}

	return k.Hull(solids), nil
}

// buildMinkowski lowers exactly two children and returns their Minkowski sum.
func buildMinkowski(g *graph.DesignGraph, k kernel.Kernel, n *graph.Node) (kernel.Solid, error) {
	children := g.Children(n)
	if len(children) != 2 {
		return nil, fmt.Errorf("minkowski node %s has %d operand(s), need exactly 2", n.ID.Short(), len(children))
	}

	a, err := buildSolid(g, k, children[0])
	if err != nil {
		return nil, err
	}
	b, err := buildSolid(g, k, children[1])
	if err != nil {
		return nil, err
	}

	return k.Minkowski(a, b), nil
}

// buildExtrude resolves the node's single 2D profile child and sweeps it
// linearly or rotationally, importing the resulting mesh as a solid.
func buildExtrude(g *graph.DesignGraph, k kernel.Kernel, n *graph.Node) (kernel.Solid, error) {
	ed, ok := n.Data.(graph.ExtrudeData)
	if !ok {
		return nil, fmt.Errorf("extrude node %s has unexpected data type %T", n.ID.Short(), n.Data)
	}

	children := g.Children(n)
	if len(children) != 1 {
		return nil, fmt.Errorf("extrude node %s has %d profile child(ren), need exactly 1", n.ID.Short(), len(children))
	}

	profile, err := buildProfile(g, children[0])
	if err != nil {
		return nil, fmt.Errorf("extrude node %s: %w", n.ID.Short(), err)
	}

	var mesh *meshkit.Mesh
	switch ed.Kind {
	case graph.ExtrudeLinear:
		scale := ed.Scale
		if scale == 0 {
			scale = 1
		}
		mesh = extrude.Linear(profile, ed.Height, ed.Twist, scale)
	case graph.ExtrudeRotate:
		mesh = extrude.Rotate(profile, ed.Angle, ed.Segments)
	default:
		return nil, fmt.Errorf("extrude node %s has unknown kind %v", n.ID.Short(), ed.Kind)
	}

	return k.Import(mesh), nil
}

// buildProfile resolves a 2D profile tree: a leaf primitive (circle, square,
// polygon) or a hull of leaf profiles (the only 2D combinator supported,
// since the geometry kernel's boolean ops are 3D-only).
func buildProfile(g *graph.DesignGraph, n *graph.Node) (polygon2d.Profile, error) {
	switch data := n.Data.(type) {
	case graph.Circle2DData:
		return polygon2d.Circle(data.Radius, data.Segments), nil
	case graph.Square2DData:
		return polygon2d.Square(data.Size.X, data.Size.Y), nil
	case graph.Polygon2DData:
		return polygon2d.Polygon(data.Points), nil
	default:
		if n.Kind == graph.NodeHull {
			return buildProfileHull(g, n)
		}
		return polygon2d.Profile{}, fmt.Errorf("node %s: unsupported profile node kind %v (%T)", n.ID.Short(), n.Kind, data)
	}
}

// buildProfileHull combines its children's profile points into a single
// outer ring via the 2D convex hull.
func buildProfileHull(g *graph.DesignGraph, n *graph.Node) (polygon2d.Profile, error) {
	children := g.Children(n)
	if len(children) < 1 {
		return polygon2d.Profile{}, fmt.Errorf("hull profile node %s has no operands", n.ID.Short())
	}

	var points []vecmath.Vec2
	for _, c := range children {
		p, err := buildProfile(g, c)
		if err != nil {
			return polygon2d.Profile{}, err
		}
		points = append(points, p.Outer...)
		for _, hole := range p.Holes {
			points = append(points, hole...)
		}
	}

	return polygon2d.Profile{Outer: polygon2d.Hull2D(points)}, nil
}
