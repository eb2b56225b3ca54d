// Package scanner walks a GRIB2 byte stream and groups sections into
// submessages, applying the repeated-section rule: a submessage is formed
// every time a Section 7 is read, inheriting whichever Section 2/3/4/5/6
// were most recently seen in the enclosing message. This mirrors
// gribio.ReadFile's forward single-pass style (peek header, read record,
// advance offset, log at message granularity) generalized from "one GRIB1
// message" to "every submessage a GRIB2 message implies".
package scanner

import (
	"bufio"
	"io"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/sdifrance/grib2/section"
)

// Source is a random-access byte source of known length.
type Source interface {
	io.ReaderAt
	Len() (int64, error)
}

// ParseError reports malformed input at a byte offset, per spec.md §7.
type ParseError struct {
	Offset int64
	Detail string
}

func (e *ParseError) Error() string {
	return errors.Errorf("scanner: parse error at byte offset %d: %s", e.Offset, e.Detail).Error()
}

// Submessage is the scanner's output unit: the 0/1 plus whichever
// 2/3/4/5/6/7 were in scope when the closing Section 7 was read.
type Submessage struct {
	MessageIndex    int
	SubmessageIndex int

	Section0 *section.Section0
	Section1 *section.Section1
	Section2 *section.Section2
	Section3 *section.Section3
	Section4 *section.Section4
	Section5 *section.Section5
	Section6 *section.Section6
	Section7 *section.Section7
}

// Scan walks a seekable Source and returns every submessage it contains.
func Scan(src Source) ([]Submessage, error) {
	total, err := src.Len()
	if err != nil {
		return nil, errors.Wrap(err, "scanner: reading source length")
	}
	bs := &randomAccessCursor{src: src, total: total}
	return scanCore(bs)
}

// ScanStream walks a single-pass io.Reader, for sources that don't support
// random access: it reads forward only and never seeks. Like Scan, it
// returns every submessage at once, each holding copies of its sections'
// bytes, so the whole input's sections stay in memory.
func ScanStream(r io.Reader) ([]Submessage, error) {
	bs := &streamCursor{br: bufio.NewReaderSize(r, 64*1024)}
	return scanCore(bs)
}

// cursor abstracts the forward-only read pattern the scan algorithm needs,
// letting Scan and ScanStream share one implementation.
type cursor interface {
	// readExact reads n bytes at the current position and advances it.
	readExact(n int) ([]byte, error)
	// peek4 returns the next 4 bytes without advancing the cursor; ok is
	// false when fewer than 4 bytes remain.
	peek4() (b []byte, ok bool)
	// skip advances the position by one byte, used to hunt for the next
	// message's magic through non-GRIB padding.
	skip() error
	pos() int64
	atEOF() bool
}

func scanCore(bs cursor) ([]Submessage, error) {
	var out []Submessage
	messageIndex := 0
	for {
		skipped, err := skipToMagic(bs)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, err
		}
		if bs.atEOF() {
			return out, nil
		}
		if skipped > 0 {
			glog.Infof("scanner: skipped %d non-GRIB bytes before message %d", skipped, messageIndex)
		}
		startOffset := bs.pos()
		glog.Infof("scanner: reading message %d at byte offset %d", messageIndex, startOffset)
		subs, err := scanOneMessage(bs, messageIndex)
		if err != nil {
			return nil, err
		}
		out = append(out, subs...)
		messageIndex++
	}
}

func skipToMagic(bs cursor) (int, error) {
	skipped := 0
	for {
		if bs.atEOF() {
			return skipped, nil
		}
		b, ok := bs.peek4()
		if !ok {
			// Fewer than 4 bytes remain and they don't start a message;
			// treat as trailing padding, same as EOF.
			return skipped, nil
		}
		if string(b) == "GRIB" {
			return skipped, nil
		}
		if err := bs.skip(); err != nil {
			return skipped, err
		}
		skipped++
	}
}

func scanOneMessage(bs cursor, messageIndex int) ([]Submessage, error) {
	startOffset := bs.pos()
	sec0Bytes, err := bs.readExact(16)
	if err != nil {
		return nil, &ParseError{Offset: startOffset, Detail: "truncated section 0: " + err.Error()}
	}
	sec0, _, err := section.ParseSection0(sec0Bytes)
	if err != nil {
		return nil, &ParseError{Offset: startOffset, Detail: err.Error()}
	}

	header, payload, err := readSection(bs)
	if err != nil {
		return nil, err
	}
	if header.Number != 1 {
		return nil, &ParseError{Offset: bs.pos(), Detail: "expected section 1 immediately after section 0"}
	}
	sec1, _, err := section.ParseSection1(payload, header)
	if err != nil {
		return nil, &ParseError{Offset: bs.pos(), Detail: err.Error()}
	}

	var current struct {
		s2 *section.Section2
		s3 *section.Section3
		s4 *section.Section4
		s5 *section.Section5
		s6 *section.Section6
	}
	var lastBitmap *section.Section6
	var submessages []Submessage
	submessageIndex := 0

	for {
		offsetBefore := bs.pos()
		header, payload, err = readSection(bs)
		if err != nil {
			return nil, err
		}
		switch header.Number {
		case 8:
			if err := checkEndMarker(payload); err != nil {
				return nil, &ParseError{Offset: offsetBefore, Detail: err.Error()}
			}
			consumed := bs.pos() - startOffset
			if uint64(consumed) != sec0.TotalLength {
				return nil, &ParseError{
					Offset: startOffset,
					Detail: errors.Errorf("message declared length %d but consumed %d bytes", sec0.TotalLength, consumed).Error(),
				}
			}
			return submessages, nil
		case 2:
			s2, _, err := section.ParseSection2(payload, header)
			if err != nil {
				return nil, &ParseError{Offset: offsetBefore, Detail: err.Error()}
			}
			current.s2 = s2
		case 3:
			s3, _, err := section.ParseSection3(payload, header)
			if err != nil {
				return nil, &ParseError{Offset: offsetBefore, Detail: err.Error()}
			}
			current.s3 = s3
		case 4:
			if current.s3 == nil {
				return nil, &ParseError{Offset: offsetBefore, Detail: "section 4 encountered with no grid definition in scope"}
			}
			s4, _, err := section.ParseSection4(payload, header)
			if err != nil {
				return nil, &ParseError{Offset: offsetBefore, Detail: err.Error()}
			}
			current.s4 = s4
		case 5:
			if current.s4 == nil {
				return nil, &ParseError{Offset: offsetBefore, Detail: "section 5 encountered with no product definition in scope"}
			}
			s5, _, err := section.ParseSection5(payload, header)
			if err != nil {
				return nil, &ParseError{Offset: offsetBefore, Detail: err.Error()}
			}
			current.s5 = s5
		case 6:
			if current.s5 == nil {
				return nil, &ParseError{Offset: offsetBefore, Detail: "section 6 encountered with no data representation in scope"}
			}
			s6, _, err := section.ParseSection6(payload, header)
			if err != nil {
				return nil, &ParseError{Offset: offsetBefore, Detail: err.Error()}
			}
			if s6.Indicator == section.BitmapReuse {
				if lastBitmap == nil {
					return nil, &ParseError{Offset: offsetBefore, Detail: "section 6 requests bitmap reuse but no bitmap was previously defined"}
				}
				current.s6 = lastBitmap
			} else {
				current.s6 = s6
				lastBitmap = s6
			}
		case 7:
			if current.s6 == nil {
				return nil, &ParseError{Offset: offsetBefore, Detail: "section 7 encountered with no bitmap in scope"}
			}
			s7, _, err := section.ParseSection7(payload, header)
			if err != nil {
				return nil, &ParseError{Offset: offsetBefore, Detail: err.Error()}
			}
			submessages = append(submessages, Submessage{
				MessageIndex:    messageIndex,
				SubmessageIndex: submessageIndex,
				Section0:        sec0,
				Section1:        sec1,
				Section2:        current.s2,
				Section3:        current.s3,
				Section4:        current.s4,
				Section5:        current.s5,
				Section6:        current.s6,
				Section7:        s7,
			})
			submessageIndex++
		default:
			return nil, &ParseError{Offset: offsetBefore, Detail: errors.Errorf("unknown section number %d", header.Number).Error()}
		}
	}
}

func checkEndMarker(payload []byte) error {
	if len(payload) < 4 || string(payload[0:4]) != "7777" {
		return errors.New("section 8 magic mismatch")
	}
	return nil
}

// readSection reads one section's 5-byte header plus its payload, returning
// the header and the full section bytes (header+payload) for the section.*
// parse functions, which expect the header still prefixed. Section 8 has
// no length prefix, so its 4-byte "7777" marker is checked for by peeking
// before committing to the 5-byte header read every other section needs.
func readSection(bs cursor) (section.Header, []byte, error) {
	offset := bs.pos()
	if b, ok := bs.peek4(); ok && string(b) == "7777" {
		end, err := bs.readExact(4)
		if err != nil {
			return section.Header{}, nil, &ParseError{Offset: offset, Detail: "truncated section 8: " + err.Error()}
		}
		return section.Header{Number: 8}, end, nil
	}
	hdrBytes, err := bs.readExact(5)
	if err != nil {
		return section.Header{}, nil, &ParseError{Offset: offset, Detail: "truncated section header: " + err.Error()}
	}
	header, err := section.ParseHeader(hdrBytes)
	if err != nil {
		return section.Header{}, nil, &ParseError{Offset: offset, Detail: err.Error()}
	}
	rest, err := bs.readExact(int(header.Length) - 5)
	if err != nil {
		return section.Header{}, nil, &ParseError{Offset: offset, Detail: "truncated section payload: " + err.Error()}
	}
	full := append(append([]byte{}, hdrBytes...), rest...)
	return header, full, nil
}

type randomAccessCursor struct {
	src    Source
	total  int64
	offset int64
}

func (c *randomAccessCursor) readExact(n int) ([]byte, error) {
	buf := make([]byte, n)
	read, err := c.src.ReadAt(buf, c.offset)
	c.offset += int64(read)
	if err != nil && !(err == io.EOF && read == n) {
		return buf[:read], err
	}
	return buf, nil
}

func (c *randomAccessCursor) peek4() ([]byte, bool) {
	if c.offset+4 > c.total {
		return nil, false
	}
	buf := make([]byte, 4)
	if _, err := c.src.ReadAt(buf, c.offset); err != nil {
		return nil, false
	}
	return buf, true
}

func (c *randomAccessCursor) skip() error {
	c.offset++
	return nil
}

func (c *randomAccessCursor) pos() int64 { return c.offset }
func (c *randomAccessCursor) atEOF() bool { return c.offset >= c.total }

type streamCursor struct {
	br     *bufio.Reader
	offset int64
	eof    bool
}

func (c *streamCursor) readExact(n int) ([]byte, error) {
	buf := make([]byte, n)
	read, err := io.ReadFull(c.br, buf)
	c.offset += int64(read)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		c.eof = true
	}
	return buf[:read], err
}

func (c *streamCursor) peek4() ([]byte, bool) {
	buf, err := c.br.Peek(4)
	if err != nil {
		return nil, false
	}
	return buf, true
}

func (c *streamCursor) skip() error {
	_, err := c.br.ReadByte()
	if err != nil {
		c.eof = true
		return err
	}
	c.offset++
	return nil
}

func (c *streamCursor) pos() int64 { return c.offset }
func (c *streamCursor) atEOF() bool {
	if c.eof {
		return true
	}
	if _, err := c.br.Peek(1); err != nil {
		c.eof = true
		return true
	}
	return false
}
