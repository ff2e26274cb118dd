// SPDX-FileCopyrightText: 2025 Beanbag, Inc.
// SPDX-License-Identifier: MIT

package versions_test

import (
	"testing"

	"github.com/reviewboard/rbinstall/internal/versions"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		version  string
		expected versions.Parsed
	}{
		{
			name:     "numeric parts",
			version:  "1.2.3",
			expected: versions.Parsed{versions.N(1), versions.N(2), versions.N(3)},
		},
		{
			name:     "trailing string part",
			version:  "1.2.abc",
			expected: versions.Parsed{versions.N(1), versions.N(2), versions.S("abc")},
		},
		{
			name:     "single part",
			version:  "9",
			expected: versions.Parsed{versions.N(9)},
		},
		{
			name:     "mixed token",
			version:  "22.04.4-beta",
			expected: versions.Parsed{versions.N(22), versions.N(4), versions.S("4-beta")},
		},
		{
			name:     "empty string",
			version:  "",
			expected: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, versions.Parse(tc.version))
		})
	}
}

func TestParseKeepsLeadingZeroDistinction(t *testing.T) {
	t.Parallel()

	// "04" parses as the number 4, so Ubuntu-style versions compare
	// numerically.
	assert.Equal(t,
		versions.Parsed{versions.N(22), versions.N(4)},
		versions.Parse("22.04"))
}

func TestCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		a        string
		b        string
		expected int
	}{
		{name: "equal", a: "1.2.3", b: "1.2.3", expected: 0},
		{name: "numeric less", a: "1.2.3", b: "1.2.4", expected: -1},
		{name: "numeric greater", a: "10.0", b: "9.9", expected: 1},
		{name: "prefix orders before extension", a: "1.2", b: "1.2.0", expected: -1},
		{name: "extension orders after prefix", a: "9.1", b: "9", expected: 1},
		{name: "string parts compare as strings", a: "1.abc", b: "1.abd", expected: -1},
		{name: "mixed types compare as strings", a: "1.10", b: "1.9a", expected: -1},
		{name: "empty orders before everything", a: "", b: "0", expected: -1},
		{name: "both empty", a: "", b: "", expected: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := versions.Compare(versions.Parse(tc.a), versions.Parse(tc.b))
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestCompareNeverPanicsOnMixedTypes(t *testing.T) {
	t.Parallel()

	// A numeric part against a string part must fall back to string
	// comparison instead of failing.
	a := versions.Parse("6.0.rc1")
	b := versions.Parse("6.0.1")

	assert.NotPanics(t, func() {
		versions.Compare(a, b)
		versions.Compare(b, a)
	})

	// "rc1" > "1" as strings.
	assert.Equal(t, 1, versions.Compare(a, b))
}

func TestMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		op       versions.Op
		ref      []int
		version  string
		expected bool
	}{
		{name: "eq matches same version", op: versions.OpEQ, ref: []int{2}, version: "2", expected: true},
		{name: "eq rejects longer version", op: versions.OpEQ, ref: []int{2}, version: "2.0", expected: false},
		{name: "ge matches greater major", op: versions.OpGE, ref: []int{9}, version: "9.3", expected: true},
		{name: "ge matches equal", op: versions.OpGE, ref: []int{9}, version: "9", expected: true},
		{name: "ge rejects lesser", op: versions.OpGE, ref: []int{9}, version: "8.9", expected: false},
		{name: "le matches lesser", op: versions.OpLE, ref: []int{9}, version: "8.10", expected: true},
		{name: "le matches equal", op: versions.OpLE, ref: []int{9}, version: "9", expected: true},
		{name: "le rejects an extension of the reference", op: versions.OpLE, ref: []int{9}, version: "9.1", expected: false},
		{name: "lt on prefix", op: versions.OpLT, ref: []int{9, 0}, version: "9", expected: true},
		{name: "gt rejects equal", op: versions.OpGT, ref: []int{6, 0}, version: "6.0", expected: false},
		{name: "ne matches different", op: versions.OpNE, ref: []int{7}, version: "8", expected: true},
		{name: "multi-part reference", op: versions.OpGE, ref: []int{6, 0}, version: "6.0.2", expected: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			match := versions.Match(tc.op, tc.ref...)
			assert.Equal(t, tc.expected, match(versions.Parse(tc.version)))
		})
	}
}

func TestMatchReusesPredicate(t *testing.T) {
	t.Parallel()

	// One predicate must be reusable across many versions without
	// carrying state between calls.
	atLeastNine := versions.Match(versions.OpGE, 9)

	assert.False(t, atLeastNine(versions.Parse("8")))
	assert.True(t, atLeastNine(versions.Parse("9")))
	assert.True(t, atLeastNine(versions.Parse("40")))
	assert.False(t, atLeastNine(versions.Parse("8")))
}
