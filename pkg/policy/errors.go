package policy

import "fmt"

// ParseError reports a policy value whose numeric portion could not be
// parsed.
type ParseError struct {
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid policy value %q: %v", e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// PolicyError reports a structural violation in a policy string: an empty
// policy, a malformed segment, ages out of time order, or a multiplier that
// is not greater than one.
type PolicyError struct {
	Segment string // offending segment, empty when the whole policy is at fault
	Message string
}

func (e *PolicyError) Error() string {
	if e.Segment != "" {
		return fmt.Sprintf("invalid policy segment %q: %s", e.Segment, e.Message)
	}
	return fmt.Sprintf("invalid policy: %s", e.Message)
}

// LeewayError reports an unusable leeway specification, such as a relative
// leeway of 100% or more.
type LeewayError struct {
	Leeway  string
	Message string
}

func (e *LeewayError) Error() string {
	return fmt.Sprintf("invalid leeway %q: %s", e.Leeway, e.Message)
}
