// SPDX-FileCopyrightText: 2025 Beanbag, Inc.
// SPDX-License-Identifier: MIT

// Package versions parses and compares loosely-structured version
// strings.
//
// Distribution and product versions are dot-delimited sequences whose
// parts may be numbers or arbitrary tokens ("22.04", "9", "2023.a").
// Comparison is positional: numeric parts compare numerically, any pair
// involving a non-numeric part compares as strings, and a version that
// is a strict prefix of another orders before it. Comparing any two
// versions is always well-defined.
package versions

import "strconv"

// Part is a single dot-delimited component of a version.
type Part struct {
	Num   int
	Str   string
	IsNum bool
}

// Parsed is a version split into its components.
type Parsed []Part

// MatchFunc reports whether a parsed version satisfies a comparison
// against a fixed reference version.
type MatchFunc func(version Parsed) bool

// Op is a comparison operator for version matching.
type Op string

// Comparison operators accepted by Match.
const (
	OpEQ Op = "=="
	OpNE Op = "!="
	OpGT Op = ">"
	OpGE Op = ">="
	OpLT Op = "<"
	OpLE Op = "<="
)

// N builds a numeric version part.
func N(n int) Part {
	return Part{Num: n, IsNum: true}
}

// S builds a string version part.
func S(s string) Part {
	return Part{Str: s}
}

func (p Part) String() string {
	if p.IsNum {
		return strconv.Itoa(p.Num)
	}

	return p.Str
}

// Parse splits a version string on dots, treating every part that looks
// like an integer as a number. An empty string parses to an empty
// version.
func Parse(version string) Parsed {
	if version == "" {
		return nil
	}

	var parsed Parsed

	start := 0

	for i := 0; i <= len(version); i++ {
		if i == len(version) || version[i] == '.' {
			parsed = append(parsed, parsePart(version[start:i]))
			start = i + 1
		}
	}

	return parsed
}

func parsePart(s string) Part {
	if n, err := strconv.Atoi(s); err == nil {
		return N(n)
	}

	return S(s)
}

// comparePart orders two parts. Numbers compare numerically; any other
// pairing compares both sides as strings.
func comparePart(a, b Part) int {
	if a.IsNum && b.IsNum {
		switch {
		case a.Num < b.Num:
			return -1
		case a.Num > b.Num:
			return 1
		default:
			return 0
		}
	}

	as := a.String()
	bs := b.String()

	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}

// Compare orders two parsed versions, returning -1, 0, or 1. A strict
// prefix orders before its extension.
func Compare(a, b Parsed) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	for i := 0; i < n; i++ {
		if c := comparePart(a[i], b[i]); c != 0 {
			return c
		}
	}

	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// Match returns a predicate comparing a version against the given
// numeric reference version with op. The reference is fixed when the
// predicate is built; the version under test is supplied per call.
func Match(op Op, ref ...int) MatchFunc {
	matched := make(Parsed, len(ref))
	for i, n := range ref {
		matched[i] = N(n)
	}

	return MatchParsed(op, matched)
}

// MatchParsed returns a predicate comparing a version against an
// already-parsed reference version with op.
func MatchParsed(op Op, ref Parsed) MatchFunc {
	return func(version Parsed) bool {
		c := Compare(version, ref)

		switch op {
		case OpEQ:
			return c == 0
		case OpNE:
			return c != 0
		case OpGT:
			return c > 0
		case OpGE:
			return c >= 0
		case OpLT:
			return c < 0
		case OpLE:
			return c <= 0
		default:
			return false
		}
	}
}
