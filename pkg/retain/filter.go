package retain

import (
	"sort"

	"halcyon-ops/chronoprune/pkg/policy"
)

// DefaultLeeway is the spacing tolerance applied when the caller does not
// supply one. A small proportional slack keeps items that drift marginally
// inside the spacing window, as backup jobs that do not start at exactly the
// same instant each day tend to do.
const DefaultLeeway = "1%"

// Filter partitions items into those to keep and those to discard under the
// given policy and leeway. The two results are disjoint and their union is
// the input set.
//
// Leeway is a policy value: a relative leeway scales every band's interval
// by (1 - leeway) and must be below 100%, while an absolute leeway is
// subtracted from every interval. Both returned slices are ordered oldest
// first, following the traversal that assigns them.
//
// All policy and leeway errors surface before any decision is made, so a
// malformed policy never yields a partial partition.
func Filter(items []Item, policyStr, leeway string) (keep, discard []Item, err error) {
	terms, err := policy.Terms(policyStr)
	if err != nil {
		return nil, nil, err
	}

	leewayValue, leewayRelative, err := policy.ParseValue(leeway)
	if err != nil {
		return nil, nil, err
	}
	if leewayRelative && leewayValue >= 1 {
		return nil, nil, &policy.LeewayError{Leeway: leeway, Message: "relative leeway must be less than 100%"}
	}

	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Age < sorted[j].Age })

	groups, err := groupItems(sorted, terms)
	if err != nil {
		return nil, nil, err
	}

	// Walk bands oldest to newest, and within each band from its oldest
	// item back toward its youngest. The first item visited has no kept
	// predecessor and is always retained; every later item must clear the
	// band's adjusted interval from the last item kept.
	for gi := len(groups) - 1; gi >= 0; gi-- {
		group := groups[gi]

		interval := group.Interval
		if leewayRelative {
			interval *= 1 - leewayValue
		} else {
			interval -= leewayValue
		}

		for ii := len(group.Items) - 1; ii >= 0; ii-- {
			item := group.Items[ii]
			if len(keep) > 0 && item.Age+interval > keep[len(keep)-1].Age {
				discard = append(discard, item)
			} else {
				keep = append(keep, item)
			}
		}
	}

	return keep, discard, nil
}
