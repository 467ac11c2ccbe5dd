package propagate

import (
	"sort"

	"github.com/Kappa-Dev/ReGraph-sub002/hierarchy"
)

// ancestorOrder returns every transitive predecessor of g0, ordered so
// that a graph appears only after every one of its own successors
// within the ancestor set (and g0 itself) has already been visited.
// Processing in this order lets each predecessor's propagation read
// already-settled typing edges toward g0, and visits each predecessor
// exactly once (spec.md §4.8's ordering guarantee).
func ancestorOrder(h *hierarchy.Hierarchy, g0 string) []string {
	ancestors := collectReachable(h, g0, h.Predecessors)

	remaining := make(map[string]int, len(ancestors))
	for id := range ancestors {
		count := 0
		for _, suc := range h.Successors(id) {
			if suc == g0 {
				count++
				continue
			}
			if _, ok := ancestors[suc]; ok {
				count++
			}
		}
		remaining[id] = count
	}

	done := map[string]struct{}{g0: {}}
	var order []string
	for len(order) < len(ancestors) {
		progressed := false
		for _, id := range sortedKeys(ancestors) {
			if _, ok := done[id]; ok {
				continue
			}
			if remaining[id] != countDone(h.Successors(id), done, g0) {
				continue
			}
			order = append(order, id)
			done[id] = struct{}{}
			progressed = true
		}
		if !progressed {
			break // cyclic typing can't happen (hierarchy forbids it), but don't spin forever
		}
	}
	return order
}

// descendantOrder is ancestorOrder's mirror for downward propagation:
// every transitive successor of g0, ordered so a graph appears only
// after every one of its predecessors within the set (and g0) has been
// visited.
func descendantOrder(h *hierarchy.Hierarchy, g0 string) []string {
	descendants := collectReachable(h, g0, h.Successors)

	remaining := make(map[string]int, len(descendants))
	for id := range descendants {
		count := 0
		for _, pred := range h.Predecessors(id) {
			if pred == g0 {
				count++
				continue
			}
			if _, ok := descendants[pred]; ok {
				count++
			}
		}
		remaining[id] = count
	}

	done := map[string]struct{}{g0: {}}
	var order []string
	for len(order) < len(descendants) {
		progressed := false
		for _, id := range sortedKeys(descendants) {
			if _, ok := done[id]; ok {
				continue
			}
			if remaining[id] != countDone(h.Predecessors(id), done, g0) {
				continue
			}
			order = append(order, id)
			done[id] = struct{}{}
			progressed = true
		}
		if !progressed {
			break
		}
	}
	return order
}

func collectReachable(h *hierarchy.Hierarchy, start string, neighbors func(string) []string) map[string]struct{} {
	out := make(map[string]struct{})
	queue := neighbors(start)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if _, ok := out[id]; ok {
			continue
		}
		out[id] = struct{}{}
		queue = append(queue, neighbors(id)...)
	}
	return out
}

func countDone(neighbors []string, done map[string]struct{}, g0 string) int {
	n := 0
	for _, id := range neighbors {
		if id == g0 {
			n++
			continue
		}
		if _, ok := done[id]; ok {
			n++
		}
	}
	return n
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	// Hierarchy ids are already comparable strings; a simple sort keeps
	// iteration order (and thus tie-breaking among equally-ready nodes)
	// deterministic.
	sort.Strings(out)
	return out
}
