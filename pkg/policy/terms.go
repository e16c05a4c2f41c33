package policy

import "strings"

// Term is one resolved retention band: items younger than MaxAge (and older
// than the previous term's MaxAge) must be spaced at least Interval seconds
// apart to be retained.
type Term struct {
	MaxAge   float64 // upper age bound of the band, in seconds
	Interval float64 // minimum spacing between kept items, in seconds
}

// Iterator lazily produces the term sequence compiled from a policy string.
// The sequence is infinite when the final policy segment establishes an age
// multiplier, so callers must bound their own consumption. Each call to
// Terms returns an independent iterator; iterators share no state.
type Iterator struct {
	segments []string
	next     int

	maxAge       float64
	interval     float64
	havePrev     bool // maxAge holds the previous segment's resolved age
	ageMult      float64
	intervalMult float64

	err error
}

// Terms compiles a policy string into a term iterator. An empty policy is
// rejected immediately; errors inside individual segments surface from Next
// via Err, before any term past the faulty segment is produced.
func Terms(policy string) (*Iterator, error) {
	segments := strings.Split(strings.TrimSpace(policy), ",")
	if segments[0] == "" {
		return nil, &PolicyError{Message: "empty policy"}
	}
	return &Iterator{segments: segments}, nil
}

// Next produces the next term. It returns false when the sequence is
// exhausted or when compilation fails; the two cases are distinguished by
// Err.
func (it *Iterator) Next() (Term, bool) {
	if it.err != nil {
		return Term{}, false
	}

	if it.next < len(it.segments) {
		return it.nextExplicit()
	}

	// Geometric tail: with an active age multiplier the policy thins
	// forever, each band wider than the last.
	if it.ageMult != 0 {
		it.maxAge *= it.ageMult
		if it.intervalMult != 0 {
			it.interval *= it.intervalMult
		} else {
			it.interval *= it.ageMult
		}
		return Term{MaxAge: it.maxAge, Interval: it.interval}, true
	}

	return Term{}, false
}

// nextExplicit resolves the next explicit policy segment.
func (it *Iterator) nextExplicit() (Term, bool) {
	segment := it.segments[it.next]
	it.next++

	prevAge, prevInterval, hadPrev := it.maxAge, it.interval, it.havePrev

	if it.ageMult != 0 {
		return it.fail(segment, "age multiplier must only be used in the last policy segment")
	}

	ageStr, intervalStr, hasInterval, ok := splitSegment(segment)
	if !ok {
		return it.fail(segment, "segment must be AGE or AGE:INTERVAL")
	}

	maxAge, ageRelative, err := ParseValue(ageStr)
	if err != nil {
		it.err = err
		return Term{}, false
	}
	if ageRelative {
		if maxAge <= 1 {
			return it.fail(segment, "age multiplier must be greater than 1")
		}
		it.ageMult = maxAge
		if hadPrev {
			maxAge *= prevAge
		} else {
			maxAge *= Day
		}
	}

	var interval float64
	switch {
	case hasInterval:
		v, intervalRelative, err := ParseValue(intervalStr)
		if err != nil {
			it.err = err
			return Term{}, false
		}
		if intervalRelative {
			if v <= 1 {
				return it.fail(segment, "interval multiplier must be greater than 1")
			}
			it.intervalMult = v
			v *= prevInterval
		}
		interval = v

	case ageRelative:
		// No explicit interval: scale the previous one along with the age.
		if prevInterval != 0 {
			interval = prevInterval * it.ageMult
		} else {
			interval = Day
		}

	default:
		// Spacing defaults to the previous band's boundary.
		if hadPrev {
			interval = prevAge
		} else {
			interval = Day
		}
	}

	if hadPrev && maxAge < prevAge {
		return it.fail(segment, "policy ages must be in time order")
	}

	it.maxAge = maxAge
	it.interval = interval
	it.havePrev = true

	return Term{MaxAge: maxAge, Interval: interval}, true
}

// Err returns the compilation error that stopped the iterator, if any.
func (it *Iterator) Err() error {
	return it.err
}

// Infinite reports whether the sequence produced so far has established an
// age multiplier, meaning the iterator will keep producing terms forever.
func (it *Iterator) Infinite() bool {
	return it.ageMult != 0
}

func (it *Iterator) fail(segment, message string) (Term, bool) {
	it.err = &PolicyError{Segment: segment, Message: message}
	return Term{}, false
}

// splitSegment splits a policy segment into its age and optional interval
// parts. More than one colon is rejected.
func splitSegment(segment string) (age, interval string, hasInterval, ok bool) {
	parts := strings.Split(segment, ":")
	switch len(parts) {
	case 1:
		return parts[0], "", false, true
	case 2:
		return parts[0], parts[1], true, true
	default:
		return "", "", false, false
	}
}

// Validate compiles every explicit segment of a policy, returning the first
// error encountered. It is used to reject bad policies up front, before any
// items are examined.
func Validate(policy string) error {
	it, err := Terms(policy)
	if err != nil {
		return err
	}
	for range it.segments {
		if _, ok := it.Next(); !ok {
			return it.Err()
		}
	}
	return nil
}
