package retain

import "halcyon-ops/chronoprune/pkg/policy"

// Group is one age band: the items whose age falls below the band's maximum
// age, together with the minimum spacing that applies inside the band. Items
// are stored in ascending age order, as appended during grouping.
type Group struct {
	Interval float64
	Items    []Item
}

// groupItems buckets items, already sorted ascending by age, into
// consecutive groups by pulling terms from the policy iterator. A group
// closes when the next item's age reaches the current term's maximum age.
//
// If the term sequence ends while items remain (a finite policy with items
// older than its last band), the leftover items are collected into a final
// overflow group that reuses the last term's interval. They stay subject to
// the last band's spacing rather than escaping the partition entirely.
func groupItems(items []Item, terms *policy.Iterator) ([]Group, error) {
	// The first term is pulled even when there is nothing to group, so a
	// malformed policy is reported regardless of what the paths matched.
	term, ok := terms.Next()
	if !ok {
		return nil, terms.Err()
	}

	if len(items) == 0 {
		return nil, nil
	}

	var groups []Group
	current := Group{Interval: term.Interval}
	exhausted := false

	for _, item := range items {
		for !exhausted && item.Age >= term.MaxAge {
			groups = append(groups, current)
			next, ok := terms.Next()
			if !ok {
				if err := terms.Err(); err != nil {
					return nil, err
				}
				// Overflow band: everything older than the last
				// explicit bound shares its interval.
				exhausted = true
				current = Group{Interval: term.Interval}
				break
			}
			term = next
			current = Group{Interval: term.Interval}
		}
		current.Items = append(current.Items, item)
	}

	if len(current.Items) > 0 {
		groups = append(groups, current)
	}

	return groups, nil
}
