package match

import (
	"sort"

	"github.com/Kappa-Dev/ReGraph-sub002/graph"
	"github.com/Kappa-Dev/ReGraph-sub002/homo"
)

// FindMatches enumerates every injective homomorphism pattern → host
// satisfying opts' constraints. An empty pattern yields a single
// match: the empty mapping.
func FindMatches(pattern, host *graph.Graph, opts Options) ([]homo.Mapping, error) {
	order := orderedPatternNodes(pattern)
	if len(order) == 0 {
		return []homo.Mapping{{}}, nil
	}

	candidates := make(map[string][]string, len(order))
	for _, n := range order {
		cs, err := candidatesFor(pattern, host, n, opts)
		if err != nil {
			return nil, err
		}
		if len(cs) == 0 {
			return nil, nil
		}
		candidates[n] = cs
	}

	var matches []homo.Mapping
	partial := make(map[string]string, len(order))
	used := make(map[string]struct{}, len(order))

	var backtrack func(i int) error
	backtrack = func(i int) error {
		if i == len(order) {
			matches = append(matches, homo.Mapping(cloneMap(partial)))
			return nil
		}
		n := order[i]
		for _, v := range candidates[n] {
			if _, taken := used[v]; taken {
				continue
			}
			ok, err := consistent(pattern, host, partial, n, v)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			partial[n] = v
			used[v] = struct{}{}
			if err := backtrack(i + 1); err != nil {
				delete(partial, n)
				delete(used, v)
				return err
			}
			delete(partial, n)
			delete(used, v)
		}
		return nil
	}

	if err := backtrack(0); err != nil {
		return nil, err
	}
	return matches, nil
}

// orderedPatternNodes returns pattern nodes sorted by decreasing degree,
// ties broken by id, for deterministic and effective backtracking.
func orderedPatternNodes(pattern *graph.Graph) []string {
	nodes := pattern.Nodes()
	sort.Slice(nodes, func(i, j int) bool {
		di, dj := pattern.Degree(nodes[i]), pattern.Degree(nodes[j])
		if di != dj {
			return di > dj
		}
		return nodes[i] < nodes[j]
	})
	return nodes
}

func candidatesFor(pattern, host *graph.Graph, n string, opts Options) ([]string, error) {
	pAttrs, err := pattern.NodeAttrs(n)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, v := range host.Nodes() {
		if !opts.nodeAllowed(v) {
			continue
		}
		if !typingCompatible(opts, n, v) {
			continue
		}
		hAttrs, err := host.NodeAttrs(v)
		if err != nil {
			return nil, err
		}
		included, err := pAttrs.Includes(hAttrs)
		if err != nil {
			return nil, err
		}
		if included {
			out = append(out, v)
		}
	}
	return out, nil
}

func typingCompatible(opts Options, n, v string) bool {
	for _, c := range opts.Typings {
		want, pinned := c.Tau[n]
		if !pinned {
			continue
		}
		got, ok := c.HostTyping[v]
		if !ok || got != want {
			return false
		}
	}
	return true
}

func consistent(pattern, host *graph.Graph, partial map[string]string, n, v string) (bool, error) {
	if pattern.HasEdge(n, n) {
		ok, err := edgeOK(pattern, host, n, n, v, v)
		if err != nil || !ok {
			return false, err
		}
	}
	for m, hv := range partial {
		if pattern.HasEdge(n, m) {
			ok, err := edgeOK(pattern, host, n, m, v, hv)
			if err != nil || !ok {
				return false, err
			}
		}
		if pattern.HasEdge(m, n) {
			ok, err := edgeOK(pattern, host, m, n, hv, v)
			if err != nil || !ok {
				return false, err
			}
		}
	}
	return true, nil
}

func edgeOK(pattern, host *graph.Graph, pFrom, pTo, hFrom, hTo string) (bool, error) {
	if !host.HasEdge(hFrom, hTo) {
		return false, nil
	}
	pAttrs, err := pattern.EdgeAttrs(pFrom, pTo)
	if err != nil {
		return false, err
	}
	hAttrs, err := host.EdgeAttrs(hFrom, hTo)
	if err != nil {
		return false, err
	}
	return pAttrs.Includes(hAttrs)
}

func cloneMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
