package rule

import (
	"fmt"
	"strings"
)

// String renders a human-readable summary of the rule's derived sets,
// mirroring the original implementation's rule-summary printing.
func (r *Rule) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Rule: L(%d nodes, %d edges) -> R(%d nodes, %d edges)\n",
		r.L.NodeCount(), r.L.EdgeCount(), r.R.NodeCount(), r.R.EdgeCount())

	if cloned := r.ClonedNodes(); len(cloned) > 0 {
		fmt.Fprintf(&sb, "  clone: %v\n", cloned)
	}
	if merged := r.MergedNodes(); len(merged) > 0 {
		fmt.Fprintf(&sb, "  merge: %v\n", merged)
	}
	if removed := r.RemovedNodes(); len(removed) > 0 {
		fmt.Fprintf(&sb, "  remove nodes: %v\n", removed)
	}
	if added := r.AddedNodes(); len(added) > 0 {
		fmt.Fprintf(&sb, "  add nodes: %v\n", added)
	}
	if removed := r.RemovedEdges(); len(removed) > 0 {
		fmt.Fprintf(&sb, "  remove edges: %v\n", removed)
	}
	if added := r.AddedEdges(); len(added) > 0 {
		fmt.Fprintf(&sb, "  add edges: %v\n", added)
	}
	return sb.String()
}
