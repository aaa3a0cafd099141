package resource

import "time"

// Servers in the wild disagree on field casing (snake_case vs camelCase) and
// omit optional fields entirely. Normalization pins everything to the
// canonical in-memory shapes: missing strings become "", missing timestamps
// become the current time, and nothing null-ish leaks to callers.

// timeFromEpoch converts epoch seconds (which DynamoDB-backed endpoints
// serialize as JSON numbers, sometimes with a fractional part) into UTC time.
// Absent or zero values substitute the current time rather than a zero time.
func timeFromEpoch(v *float64) time.Time {
	if v == nil || *v == 0 {
		return time.Now().UTC()
	}
	sec := int64(*v)
	nsec := int64((*v - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec).UTC()
}

// firstNum returns the first non-nil numeric value, tolerating responses
// that use either created_at or createdAt.
func firstNum(vals ...*float64) *float64 {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}