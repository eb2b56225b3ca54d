// Package grib2 is the public facade over this module's section, scanner,
// bitmap, decode, and grid packages: open a GRIB2 byte source and walk its
// submessages without needing to know any of those packages' internals.
// Generalizes the teacher's single-shot gogrib2.Read(data) ([]GRIB2, error)
// into a lazily-accessed Handle, per SPEC_FULL.md §6.J.
package grib2

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sdifrance/grib2/scanner"
)

// Source is a random-access byte source of known length — a file, or bytes
// held entirely in memory. Re-exported from package scanner so callers
// never need to import it directly just to call Open.
type Source = scanner.Source

// BytesSource adapts an in-memory byte slice to Source.
type BytesSource struct {
	r *bytes.Reader
}

// NewBytesSource wraps data for use with Open.
func NewBytesSource(data []byte) *BytesSource {
	return &BytesSource{r: bytes.NewReader(data)}
}

func (b *BytesSource) ReadAt(p []byte, off int64) (int, error) { return b.r.ReadAt(p, off) }
func (b *BytesSource) Len() (int64, error)                    { return int64(b.r.Len()), nil }
func (b *BytesSource) Read(p []byte) (int, error)              { return b.r.Read(p) }

// FileSource adapts an os.File to Source.
type FileSource struct {
	f *os.File
}

// OpenFile opens path for random-access reading, for use with Open.
func OpenFile(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "grib2: opening file")
	}
	return &FileSource{f: f}, nil
}

func (f *FileSource) ReadAt(p []byte, off int64) (int, error) { return f.f.ReadAt(p, off) }
func (f *FileSource) Read(p []byte) (int, error)              { return f.f.Read(p) }
func (f *FileSource) Len() (int64, error) {
	info, err := f.f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Close releases the underlying file.
func (f *FileSource) Close() error { return f.f.Close() }

// Option configures Open. WithStreamingScan is the only one; capability
// flags are build tags (SPEC_FULL.md §6.J), not options.
type Option func(*openConfig)

type openConfig struct {
	streaming bool
}

// WithStreamingScan forces ScanStream's single-pass reader instead of
// random-access Scan, for sources where src.Len() is expensive or
// unavailable — spec.md §4.E's streaming mode.
func WithStreamingScan() Option {
	return func(c *openConfig) { c.streaming = true }
}

// Open scans src and returns a Handle over every submessage it contains.
func Open(src Source, opts ...Option) (*Handle, error) {
	cfg := &openConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	var subs []scanner.Submessage
	var err error
	if cfg.streaming {
		r, ok := src.(io.Reader)
		if !ok {
			return nil, errors.New("grib2: WithStreamingScan requires a Source that is also an io.Reader")
		}
		subs, err = scanner.ScanStream(r)
	} else {
		subs, err = scanner.Scan(src)
	}
	if err != nil {
		return nil, err
	}
	return &Handle{submessages: subs}, nil
}
