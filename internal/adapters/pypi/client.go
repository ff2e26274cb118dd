// SPDX-FileCopyrightText: 2025 Beanbag, Inc.
// SPDX-License-Identifier: MIT

// Package pypi resolves installable package versions against the
// Python Package Index.
package pypi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	goversion "github.com/hashicorp/go-version"
	"github.com/rs/zerolog"

	"github.com/reviewboard/rbinstall/internal/domain"
	"github.com/reviewboard/rbinstall/internal/logging"
	"github.com/reviewboard/rbinstall/internal/version"
)

const (
	defaultBaseURL = "https://pypi.org"
	lookupTimeout  = 30 * time.Second
)

// Client implements the PackageIndex port against a PyPI-compatible
// JSON API.
type Client struct {
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

// NewClient creates a client for the given index URL. An empty URL
// selects pypi.org.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: lookupTimeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
			},
		},
		logger: logging.GetLogger("pypi"),
	}
}

type packageResponse struct {
	Info     packageInfo           `json:"info"`
	Releases map[string][]distInfo `json:"releases"`
}

type packageInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type distInfo struct {
	RequiresPython string `json:"requires_python"`
	Yanked         bool   `json:"yanked"`
}

// LookupVersion finds the newest release of a package no newer than
// targetVersion ("latest" for no bound) that supports the given Python
// version.
//
// It returns nil with no error when the package does not exist on the
// index or no release is compatible.
func (c *Client) LookupVersion(
	ctx context.Context,
	packageName string,
	targetVersion string,
	pythonVersion domain.PythonVersion,
) (*domain.PackageVersionInfo, error) {
	url := fmt.Sprintf("%s/pypi/%s/json", c.baseURL, packageName)

	rsp, err := c.fetch(ctx, packageName, url)
	if err != nil || rsp == nil {
		return nil, err
	}

	info, err := c.resolveVersion(rsp, targetVersion, pythonVersion)
	if err != nil {
		return nil, domain.NewInstallerErrorf(
			"Could not parse information on %s packages (at %s). This may "+
				"indicate an issue accessing https://pypi.org/ or an issue "+
				"with the requested version of Review Board. The error "+
				"was: %s",
			packageName, url, err)
	}

	return info, nil
}

// fetch retrieves the package metadata. A 404 returns nil with no
// error so callers can distinguish an unknown package from a failure.
func (c *Client) fetch(
	ctx context.Context,
	packageName string,
	url string,
) (*packageResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fetchFailed(packageName, url, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "rbinstall/"+version.Version)

	rsp, err := c.client.Do(req)
	if err != nil {
		return nil, fetchFailed(packageName, url, err)
	}

	defer func() {
		_ = rsp.Body.Close()
	}()

	if rsp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	if rsp.StatusCode != http.StatusOK {
		return nil, fetchFailed(packageName, url,
			fmt.Errorf("HTTP error %d", rsp.StatusCode))
	}

	var parsed packageResponse

	if err := json.NewDecoder(rsp.Body).Decode(&parsed); err != nil {
		return nil, fetchFailed(packageName, url, err)
	}

	return &parsed, nil
}

func fetchFailed(packageName, url string, err error) error {
	return domain.NewInstallerErrorf(
		"Could not fetch information on the %s packages (at %s). Check your "+
			"network and HTTP(S) proxy environment variables (`http_proxy` "+
			"and `https_proxy`). The error was: %s",
		packageName, url, err)
}

type releaseEntry struct {
	raw    string
	parsed *goversion.Version
	dists  []distInfo
}

// resolveVersion walks the package's releases from newest to oldest
// and returns the first one at or below the target version that this
// system's Python can run.
func (c *Client) resolveVersion(
	rsp *packageResponse,
	targetVersion string,
	pythonVersion domain.PythonVersion,
) (*domain.PackageVersionInfo, error) {
	latestVersion := rsp.Info.Version

	parsedLatest, err := goversion.NewVersion(latestVersion)
	if err != nil {
		return nil, fmt.Errorf("invalid latest version %q: %w", latestVersion, err)
	}

	if targetVersion == "latest" {
		targetVersion = latestVersion
	}

	parsedTarget, err := goversion.NewVersion(targetVersion)
	if err != nil {
		return nil, fmt.Errorf("invalid target version %q: %w", targetVersion, err)
	}

	entries := make([]releaseEntry, 0, len(rsp.Releases))

	for raw, dists := range rsp.Releases {
		parsed, err := goversion.NewVersion(raw)
		if err != nil {
			c.logger.Debug().
				Str("version", raw).
				Msg("Skipping release with unparsable version")

			continue
		}

		entries = append(entries, releaseEntry{
			raw:    raw,
			parsed: parsed,
			dists:  dists,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].parsed.Equal(entries[j].parsed) {
			return entries[i].raw > entries[j].raw
		}

		return entries[i].parsed.GreaterThan(entries[j].parsed)
	})

	for _, entry := range entries {
		if len(entry.dists) == 0 || entry.parsed.GreaterThan(parsedTarget) {
			continue
		}

		dist := entry.dists[0]
		if dist.Yanked {
			continue
		}

		if dist.RequiresPython != "" {
			admits, err := specifierAdmits(dist.RequiresPython, pythonVersion.String())
			if err != nil {
				return nil, err
			}

			if !admits {
				continue
			}
		}

		return &domain.PackageVersionInfo{
			IsLatest:       entry.parsed.Equal(parsedLatest),
			IsRequested:    entry.parsed.Equal(parsedTarget),
			LatestVersion:  latestVersion,
			PackageName:    rsp.Info.Name,
			RequiresPython: dist.RequiresPython,
			Version:        entry.raw,
		}, nil
	}

	return nil, nil
}
