// SPDX-FileCopyrightText: 2025 Beanbag, Inc.
// SPDX-License-Identifier: MIT

package pypi

import (
	"fmt"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

//nolint:gochecknoglobals
var specifierOperators = []string{"===", ">=", "<=", "==", "!=", "~=", ">", "<"}

// specifierAdmits reports whether a PEP 440 version specifier set,
// such as ">=3.8, !=3.9.*", admits the given version. Clauses are
// comma separated and all must match.
func specifierAdmits(specifiers, versionStr string) (bool, error) {
	checked, err := goversion.NewVersion(versionStr)
	if err != nil {
		return false, fmt.Errorf("invalid version %q: %w", versionStr, err)
	}

	for _, clause := range strings.Split(specifiers, ",") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}

		admits, err := clauseAdmits(clause, checked)
		if err != nil {
			return false, err
		}

		if !admits {
			return false, nil
		}
	}

	return true, nil
}

func clauseAdmits(clause string, checked *goversion.Version) (bool, error) {
	for _, op := range specifierOperators {
		if !strings.HasPrefix(clause, op) {
			continue
		}

		operand := strings.TrimSpace(clause[len(op):])

		if strings.HasSuffix(operand, ".*") {
			return wildcardClauseAdmits(op, strings.TrimSuffix(operand, ".*"),
				checked)
		}

		return plainClauseAdmits(op, operand, checked)
	}

	return false, fmt.Errorf("invalid version specifier %q", clause)
}

func plainClauseAdmits(op, operand string, checked *goversion.Version) (bool, error) {
	operandVersion, err := goversion.NewVersion(operand)
	if err != nil {
		return false, fmt.Errorf("invalid version %q in specifier: %w",
			operand, err)
	}

	switch op {
	case "==", "===":
		return checked.Equal(operandVersion), nil
	case "!=":
		return !checked.Equal(operandVersion), nil
	case ">=":
		return checked.GreaterThanOrEqual(operandVersion), nil
	case "<=":
		return checked.LessThanOrEqual(operandVersion), nil
	case ">":
		return checked.GreaterThan(operandVersion), nil
	case "<":
		return checked.LessThan(operandVersion), nil
	case "~=":
		// Compatible release: at least the operand, within the series
		// named by all but its last segment.
		if checked.LessThan(operandVersion) {
			return false, nil
		}

		segments := strings.Split(operand, ".")
		if len(segments) < 2 {
			return false, fmt.Errorf("invalid compatible release %q", operand)
		}

		return versionMatchesPrefix(checked,
			strings.Join(segments[:len(segments)-1], "."))
	}

	return false, fmt.Errorf("unsupported specifier operator %q", op)
}

func wildcardClauseAdmits(op, prefix string, checked *goversion.Version) (bool, error) {
	matched, err := versionMatchesPrefix(checked, prefix)
	if err != nil {
		return false, err
	}

	switch op {
	case "==", "===":
		return matched, nil
	case "!=":
		return !matched, nil
	}

	return false, fmt.Errorf("operator %q cannot take a wildcard version", op)
}

// versionMatchesPrefix reports whether the explicit numeric segments
// of prefix all equal the corresponding segments of the version.
func versionMatchesPrefix(checked *goversion.Version, prefix string) (bool, error) {
	prefixVersion, err := goversion.NewVersion(prefix)
	if err != nil {
		return false, fmt.Errorf("invalid version prefix %q: %w", prefix, err)
	}

	wantSegments := prefixVersion.Segments()
	gotSegments := checked.Segments()

	for i := range strings.Split(prefix, ".") {
		want := 0
		if i < len(wantSegments) {
			want = wantSegments[i]
		}

		got := 0
		if i < len(gotSegments) {
			got = gotSegments[i]
		}

		if want != got {
			return false, nil
		}
	}

	return true, nil
}
