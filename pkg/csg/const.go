package csg

// Tolerance policy: fixed epsilons for BSP classification and splitting.
const (
	epsClassify  = 1e-4 // point-vs-plane classification tolerance
	epsDegenerate = 1e-4 // polygon-normal / split degeneracy tolerance

	maxBSPDepth = 100 // recursion cap against pathological splitting chains
)
