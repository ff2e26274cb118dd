// SPDX-FileCopyrightText: 2025 Beanbag, Inc.
// SPDX-License-Identifier: MIT

package console

import (
	"regexp"
	"strings"
)

//nolint:gochecknoglobals
var unsafeShellToken = regexp.MustCompile(`[^\w@%+=:,./-]`)

// JoinCmdline renders a command for display, quoting tokens that need
// it. A literal "|" passes through unquoted so piped commands read
// naturally.
func JoinCmdline(command []string) string {
	tokens := make([]string, 0, len(command))

	for _, token := range command {
		if token == "|" {
			tokens = append(tokens, token)
		} else {
			tokens = append(tokens, quoteShellToken(token))
		}
	}

	return strings.Join(tokens, " ")
}

func quoteShellToken(token string) string {
	if token == "" {
		return "''"
	}

	if !unsafeShellToken.MatchString(token) {
		return token
	}

	return "'" + strings.ReplaceAll(token, "'", `'"'"'`) + "'"
}
