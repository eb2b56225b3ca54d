package grib2

import (
	"fmt"
	"time"
)

// ReferenceTime reconstructs Section 1's reference time as a UTC
// time.Time. Unlike temporal_info (gated behind the timecalc build tag,
// see time_enabled.go/time_stub.go), this needs no forecast-time
// arithmetic, so it's always available — the teacher's gogrib2.go calls
// this internal.RefTime, grounded here on original_source/src/time.rs's
// UtcDateTime.
func (s *Submessage) ReferenceTime() time.Time {
	id := s.raw.Section1
	return time.Date(int(id.Year), time.Month(id.Month), int(id.Day),
		int(id.Hour), int(id.Minute), int(id.Second), 0, time.UTC)
}

// formatUtcDateTime renders Section 1's reference time the way
// original_source/src/time.rs's UtcDateTime::Display does.
func formatUtcDateTime(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d UTC",
		t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
}
