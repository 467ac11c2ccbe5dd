package propagate

import (
	"sort"

	"github.com/Kappa-Dev/ReGraph-sub002/homo"
	"github.com/Kappa-Dev/ReGraph-sub002/rule"
)

// Summary describes, in terms of the rewritten graph's own node ids,
// what a single rewrite did to it; it is the only input propagation
// needs beyond the (already mutated) hierarchy itself.
type Summary struct {
	// Images maps a pre-rewrite node id to every post-rewrite node id it
	// became, sorted with the lowest-sorted id first. A node absent from
	// Images was untouched (its single image is itself). An entry with
	// an empty slice names a removed node.
	Images map[string][]string

	// MergedInto maps a post-rewrite node id that resulted from merging
	// to the sorted, pre-rewrite node ids that were folded into it.
	// Nodes produced by a rewrite that merged nothing don't appear here.
	MergedInto map[string][]string
}

// FromRewrite builds the Summary propagation needs from a rule
// application: r.ClonedNodes maps directly to Images entries with more
// than one post-rewrite id, r.RemovedNodes to empty Images entries, and
// r.MergedNodes to MergedInto, all read through instance (the pre-rewrite
// L -> G map) and pg (the post-rewrite P -> G map returned by
// rewrite.Execute).
func FromRewrite(r *rule.Rule, instance, pg homo.Mapping) Summary {
	s := Summary{
		Images:     make(map[string][]string),
		MergedInto: make(map[string][]string),
	}

	for l, preimages := range r.ClonedNodes() {
		old := instance[l]
		images := make([]string, 0, len(preimages))
		seen := make(map[string]struct{}, len(preimages))
		for _, p := range preimages {
			img := pg[p]
			if _, ok := seen[img]; ok {
				continue
			}
			seen[img] = struct{}{}
			images = append(images, img)
		}
		s.Images[old] = sortedCopy(images)
	}

	for _, l := range r.RemovedNodes() {
		s.Images[instance[l]] = nil
	}

	for _, preimages := range r.MergedNodes() {
		olds := make([]string, 0, len(preimages))
		var mergedInto string
		for _, p := range preimages {
			old := instance[r.PL[p]]
			olds = append(olds, old)
			mergedInto = pg[p]
		}
		s.MergedInto[mergedInto] = sortedCopy(olds)
	}

	return s
}

// imageOf returns the post-rewrite images of a pre-rewrite node, or the
// node itself if the summary doesn't mention it.
func (s Summary) imageOf(old string) []string {
	if images, ok := s.Images[old]; ok {
		return images
	}
	return []string{old}
}

func sortedCopy(ss []string) []string {
	out := make([]string, len(ss))
	copy(out, ss)
	sort.Strings(out)
	return out
}
