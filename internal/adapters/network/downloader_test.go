// SPDX-FileCopyrightText: 2025 Beanbag, Inc.
// SPDX-License-Identifier: MIT

package network_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewboard/rbinstall/internal/adapters/network"
)

func TestDownload(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/install-pysvn.py", r.URL.Path)

			_, _ = w.Write([]byte("print('installing')\n"))
		}))
	defer server.Close()

	downloader := network.NewScriptDownloader()

	data, err := downloader.Download(context.Background(),
		server.URL+"/install-pysvn.py")

	require.NoError(t, err)
	assert.Equal(t, "print('installing')\n", string(data))
}

func TestDownloadReportsHTTPErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
	defer server.Close()

	downloader := network.NewScriptDownloader()

	_, err := downloader.Download(context.Background(), server.URL)

	assert.ErrorContains(t, err, "status 404")
}

func TestDownloadReportsConnectionErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(
		func(_ http.ResponseWriter, _ *http.Request) {}))
	server.Close()

	downloader := network.NewScriptDownloader()

	_, err := downloader.Download(context.Background(), server.URL)

	assert.ErrorContains(t, err, "failed to download")
}
