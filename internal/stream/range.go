// Package stream implements byte-range request parsing for the
// streaming responder.
package stream

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrMalformed means the Range header does not match
	// "bytes=<start>-[<end>]".
	ErrMalformed = errors.New("malformed range header")

	// ErrUnsatisfiable means the requested window falls outside
	// [0, size-1].
	ErrUnsatisfiable = errors.New("range not satisfiable")
)

// ByteRange is an inclusive byte window [Start, End] within a resource.
type ByteRange struct {
	Start int64
	End   int64
}

// Length is the number of bytes in the window.
func (r ByteRange) Length() int64 {
	return r.End - r.Start + 1
}

// ParseRange parses a Range header value against a resource of the
// given size. End defaults to size-1 when omitted. Multi-range requests
// and suffix ranges ("bytes=-n") are rejected as malformed; a window
// with start > end or any bound outside [0, size-1] is unsatisfiable.
func ParseRange(header string, size int64) (ByteRange, error) {
	value, ok := strings.CutPrefix(header, "bytes=")
	if !ok {
		return ByteRange{}, ErrMalformed
	}
	if strings.Contains(value, ",") {
		return ByteRange{}, ErrMalformed
	}

	startStr, endStr, ok := strings.Cut(value, "-")
	if !ok {
		return ByteRange{}, ErrMalformed
	}

	start, err := strconv.ParseInt(strings.TrimSpace(startStr), 10, 64)
	if err != nil {
		return ByteRange{}, ErrMalformed
	}

	end := size - 1
	if endStr = strings.TrimSpace(endStr); endStr != "" {
		end, err = strconv.ParseInt(endStr, 10, 64)
		if err != nil {
			return ByteRange{}, ErrMalformed
		}
	}

	if start < 0 || end < start || end >= size {
		return ByteRange{}, ErrUnsatisfiable
	}

	return ByteRange{Start: start, End: end}, nil
}
