// Package policy implements the retention policy language used by chronoprune.
//
// A policy is a comma-separated list of segments, each of the form AGE or
// AGE:INTERVAL. It compiles into an ordered sequence of terms, where each
// term defines an age band (everything younger than the term's maximum age
// and older than the previous band) and the minimum spacing required between
// retained items inside that band.
//
// Values in a policy are either absolute durations or relative multipliers:
//
//   - "2w"   two weeks (units: h, d, w, m, y)
//   - "10"   ten days (bare numbers are days)
//   - ""     effectively forever (also "oo", "inf" and the infinity symbol)
//   - "3x"   three times the previous value (also "3*")
//   - "150%" 1.5 times the previous value
//
// When the final segment uses an age multiplier the term sequence is
// infinite: each further term scales the previous one geometrically. The
// sequence is produced lazily by an Iterator so callers only pay for the
// terms they consume.
//
// Example policies:
//
//	"w,m,y"       daily-ish copies for a week, then weekly for a month,
//	              then monthly for a year
//	"d,2x"        one band per day, each band twice as wide as the last
//	"4w:1w,oo:4w" weekly spacing up to four weeks, then four-weekly forever
package policy
