// example is a small CLI demonstrating the grib2 facade: open a file, log
// a one-line summary of every submessage it contains, and log the first
// handful of decoded values for the first one. Mirrors the teacher's own
// example/example.go (flag-parsed input path, glog-based logging).
package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/golang/glog"
	"github.com/sdifrance/grib2"
)

var input = flag.String("input", "", "Path to the input GRIB2 file.")

func main() {
	flag.Parse()
	if err := run(context.Background()); err != nil {
		glog.Exitf("got fatal error: %v", err)
	}
}

func run(_ context.Context) error {
	if *input == "" {
		return fmt.Errorf("-input is required")
	}
	src, err := grib2.OpenFile(*input)
	if err != nil {
		return err
	}
	defer src.Close()

	h, err := grib2.Open(src)
	if err != nil {
		return fmt.Errorf("error parsing grib file contents: %w", err)
	}

	glog.Infof("found %d submessages", h.Len())
	for _, entry := range h.All() {
		glog.Infof("submessage[%d]: %s", entry.Index.Submessage, entry.Submessage)
	}

	if h.Len() == 0 {
		return nil
	}
	first, err := h.Submessage(0)
	if err != nil {
		return err
	}
	values, err := first.Values()
	if err != nil {
		return fmt.Errorf("error building decoder for first submessage: %w", err)
	}
	const sample = 5
	for i := 0; i < sample; i++ {
		v, ok, err := values.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		glog.Infof("value[%d] = %v", i, v)
	}
	return nil
}
