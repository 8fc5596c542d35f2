// Package graph defines the design graph types for csgforge.
// The design graph is an immutable DAG of primitives, transforms, booleans,
// hulls, Minkowski sums, extrusions and groups produced by evaluating a
// script (see pkg/engine) and consumed by pkg/tessellate.
package graph
