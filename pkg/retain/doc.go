// Package retain decides which timestamped items to keep and which to
// discard under a retention policy.
//
// Items are bucketed into age bands by pulling terms from a compiled policy,
// then the bands are walked from oldest to newest applying each band's
// minimum-spacing rule: an item is kept only if it sits at least the band's
// interval away from the most recently kept item. The oldest item overall
// is always kept.
//
// The engine is a pure function over its inputs. It performs no I/O, reads
// no clocks, and holds no state between calls, so it is safe to invoke from
// any number of goroutines at once.
package retain
