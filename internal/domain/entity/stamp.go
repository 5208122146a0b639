package entity

import "time"

// StampPrecision is the finest timestamp resolution kept by every store.
// Postgres TIMESTAMPTZ holds microseconds.
const StampPrecision = time.Microsecond

// Stamp overwrites the write timestamp of v with now in UTC, truncated to
// StampPrecision, and reports whether v carries one. Entity types that
// participate in stamping are listed here and nowhere else; any other value
// is left untouched.
func Stamp(v any, now time.Time) bool {
	switch e := v.(type) {
	case *Article:
		if e == nil {
			return false
		}
		e.Timestamp = now.UTC().Truncate(StampPrecision)
		return true
	default:
		return false
	}
}
