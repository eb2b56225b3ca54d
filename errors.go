package grib2

import (
	"github.com/sdifrance/grib2/bitio"
	"github.com/sdifrance/grib2/decode"
	"github.com/sdifrance/grib2/grid"
	"github.com/sdifrance/grib2/scanner"
)

// ParseError reports malformed input at a byte offset, per spec.md §7.
// Type-aliased from scanner so callers never need to import it directly
// to type-switch on errors Open/Handle return.
type ParseError = scanner.ParseError

// UnsupportedTemplate reports a data representation template this build
// has no decoder for.
type UnsupportedTemplate = decode.UnsupportedTemplateError

// UnsupportedGrid reports a grid definition template, or an unsupported
// flag combination on a supported one.
type UnsupportedGrid = grid.UnsupportedGridError

// UnsupportedEncoding reports a structurally-parsed template whose field
// values this build declines to decode (an unhandled original-field-type,
// an unrecognized missing-value-management mode, and so on).
type UnsupportedEncoding = decode.UnsupportedEncodingError

// DecodeError reports a decode-time inconsistency that isn't one of the
// more specific categories above (group/length mismatches, and similar).
type DecodeError = decode.DecodeError

// EndOfBuffer reports a bit-level read running past the end of its
// backing byte slice, per spec.md §4.A.
type EndOfBuffer = bitio.ErrEndOfBuffer
