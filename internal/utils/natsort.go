package utils // utils holds small helpers shared across packages

import "strings"

// NaturalLess compares two strings treating runs of digits as numbers,
// so "Amphi 2" sorts before "Amphi 10".  Comparison is case-insensitive
// on the non-numeric parts.  The location list is ordered with this
// comparator because range-based auto-distribution selects a contiguous
// slice of it.
func NaturalLess(a, b string) bool {
	ai, bi := 0, 0
	for ai < len(a) && bi < len(b) {
		ca, cb := a[ai], b[bi]
		if isDigit(ca) && isDigit(cb) {
			// Compare the whole digit runs numerically.  Leading zeros
			// are skipped so "007" == "7"; ties fall through to the
			// rest of the string.
			aStart, bStart := ai, bi
			for ai < len(a) && isDigit(a[ai]) {
				ai++
			}
			for bi < len(b) && isDigit(b[bi]) {
				bi++
			}
			na := strings.TrimLeft(a[aStart:ai], "0")
			nb := strings.TrimLeft(b[bStart:bi], "0")
			if len(na) != len(nb) {
				return len(na) < len(nb)
			}
			if na != nb {
				return na < nb
			}
			continue
		}
		la, lb := lower(ca), lower(cb)
		if la != lb {
			return la < lb
		}
		ai++
		bi++
	}
	return len(a)-ai < len(b)-bi
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
