// SPDX-FileCopyrightText: 2025 Beanbag, Inc.
// SPDX-License-Identifier: MIT

package tui

import (
	"bytes"
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewboard/rbinstall/internal/console"
)

func TestStatusModelShowsTextWhileRunning(t *testing.T) {
	t.Parallel()

	model := newStatusModel("Working...", console.NewPlainStyles())

	assert.Contains(t, model.View(), "Working...")
}

func TestStatusModelQuitsOnCompletion(t *testing.T) {
	t.Parallel()

	model := newStatusModel("Working...", console.NewPlainStyles())

	updated, cmd := model.Update(statusDoneMsg{err: nil})

	require.NotNil(t, cmd)

	final, ok := updated.(statusModel)

	require.True(t, ok)
	assert.Empty(t, final.View())
	assert.False(t, final.aborted)
}

func TestStatusModelAbortsOnControlC(t *testing.T) {
	t.Parallel()

	model := newStatusModel("Working...", console.NewPlainStyles())

	updated, cmd := model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)

	final, ok := updated.(statusModel)

	require.True(t, ok)
	assert.True(t, final.aborted)
	assert.Empty(t, final.View())
}

func TestRunWithStatusNonInteractive(t *testing.T) {
	t.Parallel()

	buffer := &bytes.Buffer{}
	terminal := console.New(buffer, console.Options{Width: 80})

	ran := false

	err := runWithStatus(context.Background(), terminal, "Working...",
		func() error {
			ran = true

			return nil
		})

	assert.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, "Working...\n", buffer.String())
}

func TestRunWithStatusNonInteractivePropagatesErrors(t *testing.T) {
	t.Parallel()

	terminal := console.New(&bytes.Buffer{}, console.Options{Width: 80})
	wantErr := errors.New("lookup failed")

	err := runWithStatus(context.Background(), terminal, "Working...",
		func() error {
			return wantErr
		})

	assert.ErrorIs(t, err, wantErr)
}
