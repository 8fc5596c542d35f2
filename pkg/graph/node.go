package graph

import "github.com/chazu/csgforge/pkg/colorspec"

// NodeKind enumerates the types of nodes in the design graph.
type NodeKind int

const (
	NodePrimitive NodeKind = iota // cube, sphere, cylinder, cone, prism, polyhedron, 2D shapes, text
	NodeTransform                 // translate/rotate/scale/mirror/multmatrix
	NodeBoolean                   // union, difference, intersection
	NodeHull                      // convex hull over its children
	NodeMinkowski                 // Minkowski sum of exactly two children
	NodeExtrude                   // linear_extrude / rotate_extrude of a single 2D profile child
	NodeGroup                     // transparent grouping
)

func (k NodeKind) String() string {
	switch k {
	case NodePrimitive:
		return "primitive"
	case NodeTransform:
		return "transform"
	case NodeBoolean:
		return "boolean"
	case NodeHull:
		return "hull"
	case NodeMinkowski:
		return "minkowski"
	case NodeExtrude:
		return "extrude"
	case NodeGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Node is the fundamental element of the design graph.
type Node struct {
	ID          NodeID      `json:"id"`
	Kind        NodeKind    `json:"kind"`
	Name        string      `json:"name,omitempty"`
	Source      SourceRef   `json:"source"`
	ContentHash ContentHash `json:"content_hash"`
	Children    []NodeID    `json:"children,omitempty"`
	Color       *colorspec.ColorSpec `json:"color,omitempty"`
	Data        NodeData    `json:"data"`
}

// NodeData is the interface for kind-specific node payloads.
type NodeData interface {
	nodeData() // marker method restricting implementations to this package
}
