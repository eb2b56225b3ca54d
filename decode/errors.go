package decode

import "fmt"

// UnsupportedTemplateError reports a Data Representation Template number
// this build recognises in code tables but has no decoder for.
type UnsupportedTemplateError struct {
	TemplateNumber uint16
	Detail         string
}

func (e *UnsupportedTemplateError) Error() string {
	return fmt.Sprintf("decode: unsupported data representation template %d: %s", e.TemplateNumber, e.Detail)
}

// UnsupportedEncodingError reports a template this build decodes in
// general, but whose parameters rule out decoding for this submessage
// (e.g. complex packing declaring a non-floating-point original field).
type UnsupportedEncodingError struct {
	TemplateNumber uint16
	Detail         string
}

func (e *UnsupportedEncodingError) Error() string {
	return fmt.Sprintf("decode: template %d not supported for this submessage: %s", e.TemplateNumber, e.Detail)
}

// DecodeError reports a structural inconsistency discovered while
// unpacking a well-formed section 7 payload, e.g. a complex-packing group
// layout that does not exactly cover the declared payload.
type DecodeError struct {
	Detail string
}

func (e *DecodeError) Error() string {
	return "decode: " + e.Detail
}
