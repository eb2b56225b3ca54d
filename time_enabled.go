//go:build timecalc

package grib2

import (
	"fmt"
	"time"

	"github.com/sdifrance/grib2/section"
)

// TemporalInfo is ReferenceTime plus the forecast target instant that the
// forecast-time offset implies; the offset itself is not kept as a
// separate time.Duration. Grounded on
// original_source/src/time.rs's TemporalInfo/BasicTimeDelta: each of
// Table 4.4's unit codes this module recognizes maps to a fixed
// time.Duration multiplier.
type TemporalInfo struct {
	ReferenceTime  time.Time
	ForecastTarget time.Time
}

// TemporalInfo combines Identification()'s reference time with
// ProdDef()'s forecast time and time-range unit into a verification
// instant, gated behind the timecalc build tag per spec.md §6's
// "time-calculation" capability flag.
func (s *Submessage) TemporalInfo() (*TemporalInfo, error) {
	tmpl, ok := s.raw.Section4.Template.(*section.ProductDefinitionTemplate0)
	if !ok {
		return nil, &UnsupportedTemplate{TemplateNumber: s.raw.Section4.TemplateNumber, Detail: "forecast time is not known for this product definition template"}
	}
	delta, err := forecastDelta(tmpl.TimeRangeUnit, tmpl.ForecastTime)
	if err != nil {
		return nil, err
	}
	ref := s.ReferenceTime()
	return &TemporalInfo{ReferenceTime: ref, ForecastTarget: ref.Add(delta)}, nil
}

// forecastDelta converts a Table 4.4 time-range unit code plus a forecast
// time value into a time.Duration. Only the units original_source's
// BasicTimeDelta recognizes (seconds through whole days) are supported;
// calendar-relative units (month, year, decade, normal, century) have no
// fixed-duration equivalent and are reported as UnsupportedEncoding.
func forecastDelta(unit uint8, value uint32) (time.Duration, error) {
	switch unit {
	case 13: // second
		return time.Duration(value) * time.Second, nil
	case 0: // minute
		return time.Duration(value) * time.Minute, nil
	case 1: // hour
		return time.Duration(value) * time.Hour, nil
	case 10: // 3 hours
		return time.Duration(value) * 3 * time.Hour, nil
	case 11: // 6 hours
		return time.Duration(value) * 6 * time.Hour, nil
	case 12: // 12 hours
		return time.Duration(value) * 12 * time.Hour, nil
	case 2: // day
		return time.Duration(value) * 24 * time.Hour, nil
	default:
		return 0, &UnsupportedEncoding{TemplateNumber: 0, Detail: fmt.Sprintf("time-range unit code %d has no fixed-duration equivalent", unit)}
	}
}
