// SPDX-FileCopyrightText: 2025 Beanbag, Inc.
// SPDX-License-Identifier: MIT

// Package network fetches remote resources used during installation.
package network

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const downloadTimeout = 30 * time.Second

// ScriptDownloader implements the ScriptDownloader port over HTTP.
// Proxy settings are honored from the standard proxy environment
// variables.
type ScriptDownloader struct {
	client *http.Client
}

// NewScriptDownloader creates a new downloader.
func NewScriptDownloader() *ScriptDownloader {
	return &ScriptDownloader{
		client: &http.Client{
			Timeout: downloadTimeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
			},
		},
	}
}

// Download fetches the contents of a URL.
func (d *ScriptDownloader) Download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed with status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read download: %w", err)
	}

	return data, nil
}
