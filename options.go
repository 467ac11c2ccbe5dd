package regraph

// Options controls a single Rewrite call.
type Options struct {
	// Strict enables the static pre-checks of spec.md §7: every added
	// R-node must have a typing hint in RHSTyping for each of the
	// rewritten graph's direct successors, merged L-nodes must not
	// already diverge in any successor, every added edge must already
	// exist in every successor, and every added attribute must already
	// be present on the successor's image. Strict mode also disables
	// downward propagation entirely.
	Strict bool

	// PTyping supplies, per direct predecessor graph id, a P-typing
	// hint restricting which clone each predecessor node should stick
	// to during upward propagation (keyed by the predecessor node id).
	PTyping map[string]map[string]string

	// RHSTyping supplies, per direct successor graph id, an RHS-typing
	// hint giving the successor image to reuse for an added R-node
	// (keyed by the rule's R-node id) instead of minting a fresh one
	// during downward propagation. It also drives the strict-mode
	// added-node check.
	RHSTyping map[string]map[string]string
}
