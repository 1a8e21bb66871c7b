package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformed is matched by every error returned for a version that is not dotted-numeric.
var ErrMalformed = errors.New("malformed version")

// FormatError reports the offending version and segment.
type FormatError struct {
	Version string
	Segment string
	Index   int
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed version %q: segment %d (%q) is not a non-negative integer", e.Version, e.Index, e.Segment)
}

func (e *FormatError) Unwrap() error {
	return ErrMalformed
}

// Compare returns -1, 0 or +1 when a is less than, equal to or greater than b.
// Both versions are parsed in full before comparing, so a malformed segment
// is reported even when an earlier segment already decides the order.
func Compare(a, b string) (int, error) {
	as, err := parse(a)
	if err != nil {
		return 0, err
	}
	bs, err := parse(b)
	if err != nil {
		return 0, err
	}

	n := max(len(as), len(bs))
	for i := 0; i < n; i++ {
		x, y := at(as, i), at(bs, i)
		switch {
		case x < y:
			return -1, nil
		case x > y:
			return 1, nil
		}
	}
	return 0, nil
}

// Reached reports whether current has caught up to or passed threshold.
// The boundary is inclusive.
func Reached(current, threshold string) (bool, error) {
	c, err := Compare(current, threshold)
	if err != nil {
		return false, err
	}
	return c >= 0, nil
}

// Validate returns a *FormatError if v is not dotted-numeric.
func Validate(v string) error {
	_, err := parse(v)
	return err
}

func parse(v string) ([]uint64, error) {
	parts := strings.Split(v, ".")
	segments := make([]uint64, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return nil, &FormatError{Version: v, Segment: p, Index: i}
		}
		segments[i] = n
	}
	return segments, nil
}

// at treats missing trailing segments as zero.
func at(segments []uint64, i int) uint64 {
	if i < len(segments) {
		return segments[i]
	}
	return 0
}
