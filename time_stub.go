//go:build !timecalc

package grib2

import "time"

// TemporalInfo mirrors time_enabled.go's type so callers can reference it
// regardless of build tags; without timecalc, TemporalInfo() always fails.
type TemporalInfo struct {
	ReferenceTime  time.Time
	ForecastTarget time.Time
}

// TemporalInfo always fails without the timecalc build tag. Unlike the
// other capability flags this one gates no external dependency — it's
// gated purely because spec.md documents "time-calculation" as an opt-in
// capability, not because stdlib time is unavailable by default.
func (s *Submessage) TemporalInfo() (*TemporalInfo, error) {
	return nil, &UnsupportedEncoding{TemplateNumber: 0, Detail: "built without the timecalc tag"}
}
