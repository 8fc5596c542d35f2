package graph

import (
	"encoding/hex"
	"fmt"

	"github.com/glycerine/blake2b"
)

// NodeID is a content address: a hex-encoded prefix of the blake2b digest
// of a node's (kind, name, data, children) tuple, so that two evaluations
// of textually-identical scripts produce byte-identical node IDs.
type NodeID string

// ZeroID is the sentinel for "no node" (an unset reference field).
const ZeroID NodeID = ""

func (id NodeID) IsZero() bool { return id == ZeroID }

func (id NodeID) String() string { return string(id) }

// Short returns an 8-character prefix, for compact log/error messages.
func (id NodeID) Short() string {
	if len(id) <= 8 {
		return string(id)
	}
	return string(id[:8])
}

// ContentHash is the full digest a NodeID is derived from.
type ContentHash [32]byte

func (h ContentHash) String() string { return hex.EncodeToString(h[:]) }

// HashContent blake2b-hashes an arbitrary byte payload (typically a
// deterministic encoding of a node's kind/name/data/children) into a
// ContentHash.
func HashContent(payload []byte) ContentHash {
	var out ContentHash
	sum := blake2b.Sum256(payload)
	copy(out[:], sum[:])
	return out
}

// NewNodeID derives a NodeID from a ContentHash, truncated to 16 hex
// characters (64 bits) — ample collision resistance for a single design
// graph's node count, while keeping IDs short enough to read in errors.
func NewNodeID(hash ContentHash) NodeID {
	return NodeID(hash.String()[:16])
}

// IDFromName is a convenience constructor used by tests and by builtins
// that want a deterministic NodeID derived directly from a string key
// (e.g. an anonymous node's kind+counter suffix) rather than hashing a
// full content payload.
func IDFromName(s string) NodeID {
	return NewNodeID(HashContent([]byte(s)))
}

// SourceRef is a script-source location, attached to every node for error
// reporting.
type SourceRef struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

func (s SourceRef) String() string {
	return fmt.Sprintf("%d:%d", s.Line, s.Col)
}

// Axis selects one of the three principal axes, used by rotate/mirror
// builtins.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return "?"
	}
}
