package rgerr

// Detail is a key/value pair attached to an [Error] to make structured
// reports (offending nodes, edges, attribute keys) programmatically
// inspectable instead of buried in a formatted message.
type Detail struct {
	Key   string
	Value string
}

// Standard detail keys, kept consistent across packages so callers can
// filter details without string drift.
const (
	DetailKeyNode     = "node"
	DetailKeyEdge     = "edge"
	DetailKeyGraph    = "graph"
	DetailKeyAttr     = "attr"
	DetailKeyReason   = "reason"
	DetailKeyTyping   = "typing"
	DetailKeyRelation = "relation"
)
