package retain

import "time"

// Item is a single candidate for retention: an opaque name and an age in
// seconds relative to the run's reference instant. Items are immutable once
// constructed.
type Item struct {
	Age  float64
	Name string
}

// TimestampFunc resolves the timestamp of a named item. Implementations are
// provided by the timestamp package; the engine only needs the resolved
// value.
type TimestampFunc func(name string) (time.Time, error)

// AgedItems resolves each name to an Item whose age is measured backwards
// from ref. Names whose timestamp lies at or after ref are skipped: an item
// from the future has no age to thin by. The reference instant is passed in
// explicitly so runs are reproducible.
func AgedItems(names []string, ts TimestampFunc, ref time.Time) ([]Item, error) {
	items := make([]Item, 0, len(names))
	for _, name := range names {
		t, err := ts(name)
		if err != nil {
			return nil, err
		}
		age := ref.Sub(t).Seconds()
		if age <= 0 {
			continue
		}
		items = append(items, Item{Age: age, Name: name})
	}
	return items, nil
}
