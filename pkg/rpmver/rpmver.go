package rpmver

import (
	"fmt"
	"strings"
)

// EVR is the epoch-version-release triple that orders RPM-style
// packages. A missing epoch is the zero value.
type EVR struct {
	Epoch   int64
	Version string
	Release string
}

func (e EVR) String() string {
	if e.Epoch != 0 {
		return fmt.Sprintf("%d:%s-%s", e.Epoch, e.Version, e.Release)
	}
	return fmt.Sprintf("%s-%s", e.Version, e.Release)
}

// Compare orders two triples the way rpm does: epoch first, then
// version, then release. It returns -1, 0 or 1 if a is older than,
// equal to, or newer than b.
func Compare(a, b EVR) int {
	if a.Epoch != b.Epoch {
		if a.Epoch < b.Epoch {
			return -1
		}
		return 1
	}
	if c := compareSegments(a.Version, b.Version); c != 0 {
		return c
	}
	return compareSegments(a.Release, b.Release)
}

type segment struct {
	text    string
	numeric bool
}

// split breaks a version string into maximal digit and letter runs.
// Anything else is a separator: it produces no segment of its own but
// always terminates the current run, so "1.2" and "1-2" split
// identically.
func split(s string) []segment {
	var segs []segment
	for i := 0; i < len(s); {
		switch c := s[i]; {
		case isDigit(c):
			j := i
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			segs = append(segs, segment{text: s[i:j], numeric: true})
			i = j
		case isAlpha(c):
			j := i
			for j < len(s) && isAlpha(s[j]) {
				j++
			}
			segs = append(segs, segment{text: s[i:j]})
			i = j
		default:
			i++
		}
	}
	return segs
}

func compareSegments(a, b string) int {
	as := split(a)
	bs := split(b)

	n := len(as)
	if len(bs) < n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		sa, sb := as[i], bs[i]
		switch {
		case sa.numeric && sb.numeric:
			if c := compareNumeric(sa.text, sb.text); c != 0 {
				return c
			}
		case !sa.numeric && !sb.numeric:
			if c := strings.Compare(sa.text, sb.text); c != 0 {
				return c
			}
		case sa.numeric:
			// mismatched run types: the numeric side always wins
			return 1
		default:
			return -1
		}
	}
	switch {
	case len(as) == len(bs):
		return 0
	case len(as) > len(bs):
		// a trailing numeric suffix means newer, a trailing
		// alphabetic suffix means a pre-release tag
		if as[n].numeric {
			return 1
		}
		return -1
	default:
		if bs[n].numeric {
			return -1
		}
		return 1
	}
}

func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
