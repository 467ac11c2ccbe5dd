package regraph

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Kappa-Dev/ReGraph-sub002/hierarchy"
	"github.com/Kappa-Dev/ReGraph-sub002/homo"
	"github.com/Kappa-Dev/ReGraph-sub002/internal/trace"
	"github.com/Kappa-Dev/ReGraph-sub002/propagate"
	"github.com/Kappa-Dev/ReGraph-sub002/rewrite"
	"github.com/Kappa-Dev/ReGraph-sub002/rgerr"
	"github.com/Kappa-Dev/ReGraph-sub002/rule"
)

// Session owns a hierarchy and serializes rewrites against it
// (spec.md §5): reads of Hierarchy may run concurrently with each
// other, but Rewrite takes an exclusive lock for the whole
// rewrite-then-propagate chain, so no caller ever observes an
// intermediate state.
type Session struct {
	mu     sync.RWMutex
	h      *hierarchy.Hierarchy
	logger *slog.Logger
}

// SessionOption configures a Session at construction time.
type SessionOption func(*Session)

// WithLogger attaches a logger used for operation tracing.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) { s.logger = logger }
}

// NewSession wraps an existing hierarchy in a session.
func NewSession(h *hierarchy.Hierarchy, opts ...SessionOption) *Session {
	s := &Session{h: h}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hierarchy returns the session's current hierarchy. The returned
// value reflects the state as of the most recently committed Rewrite;
// it must not be mutated directly by callers that also use Rewrite,
// since a concurrent Rewrite can swap it out from under them.
func (s *Session) Hierarchy() *hierarchy.Hierarchy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.h
}

// Rewrite applies r on an instance of r.L in the named graph and
// propagates the resulting edits through the hierarchy (spec.md §2):
// (a) validate the instance and, in strict mode, the rhs typing
// statically; (b) apply the rule, yielding the R→G' map; (c) if the
// rule is restrictive, propagate up through predecessors; (d) if the
// rule is relaxing and not strict, propagate down through successors.
// The whole chain is all-or-nothing: on any error the session's
// hierarchy is left exactly as it was before the call.
func (s *Session) Rewrite(ctx context.Context, graphID string, r *rule.Rule, instance homo.Mapping, opts Options) (homo.Mapping, []*rgerr.Error, error) {
	op := trace.Begin(ctx, s.logger, "regraph.session.rewrite", slog.String("graph", graphID))
	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.h.Clone()

	g, err := working.Graph(graphID)
	if err != nil {
		wrapped := errGraphNotFound(graphID, err)
		op.End(wrapped)
		return nil, nil, wrapped
	}

	if !instance.IsInjective() {
		wrapped := errInstanceNotInjective(graphID)
		op.End(wrapped)
		return nil, nil, wrapped
	}
	if err := homo.Check(r.L, g, instance); err != nil {
		wrapped := errInstanceNotHomomorphism(graphID, err)
		op.End(wrapped)
		return nil, nil, wrapped
	}

	if opts.Strict {
		if err := checkStrict(working, graphID, r, instance, opts.RHSTyping); err != nil {
			op.End(err)
			return nil, nil, err
		}
	}

	rg, pg, err := rewrite.Execute(ctx, g, instance, r)
	if err != nil {
		wrapped := errRewrite(graphID, err)
		op.End(wrapped)
		return nil, nil, wrapped
	}

	warnings := rgerr.NewCollector()
	summary := propagate.FromRewrite(r, instance, pg)

	if r.IsRestrictive() {
		if err := propagate.Upward(ctx, working, graphID, summary, opts.PTyping, warnings); err != nil {
			op.End(err)
			return nil, nil, err
		}
	}

	if r.IsRelaxing() && !opts.Strict {
		hints := rhsHints(rg, opts.RHSTyping)
		if err := propagate.Downward(ctx, working, graphID, summary, hints, warnings); err != nil {
			op.End(err)
			return nil, nil, err
		}
	}

	s.h = working
	op.End(nil)
	return rg, warnings.Warnings(), nil
}

// rhsHints translates a caller's RHS-typing (keyed by R-node id, the
// only id a caller can name before the rule has actually been applied)
// into downward-propagation hints (keyed by the post-rewrite g0 node
// id that rNode was mapped to), using the R→G' map Execute produced.
func rhsHints(rg homo.Mapping, rhsTyping map[string]map[string]string) propagate.Hints {
	if rhsTyping == nil {
		return nil
	}
	out := make(propagate.Hints, len(rhsTyping))
	for suc, byRNode := range rhsTyping {
		translated := make(map[string]string, len(byRNode))
		for rNode, target := range byRNode {
			g0Node, ok := rg[rNode]
			if !ok {
				continue
			}
			translated[g0Node] = target
		}
		out[suc] = translated
	}
	return out
}
