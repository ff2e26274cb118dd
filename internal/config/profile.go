// SPDX-FileCopyrightText: 2025 Beanbag, Inc.
// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"errors"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/reviewboard/rbinstall/internal/domain"
)

// Profile is a TOML answers file pre-seeding the configuration for
// unattended installs. Every field is optional; unset fields keep
// their current value when the profile is applied.
type Profile struct {
	InstallPath   *string `toml:"install_path"`
	SitedirPath   *string `toml:"sitedir_path"`
	CreateSitedir *bool   `toml:"create_sitedir"`

	InstallPowerPack          *bool `toml:"install_powerpack"`
	InstallReviewBotExtension *bool `toml:"install_reviewbot_extension"`
	InstallReviewBotWorker    *bool `toml:"install_reviewbot_worker"`

	ReviewBoardVersion        *string `toml:"reviewboard_version"`
	PowerPackVersion          *string `toml:"powerpack_version"`
	ReviewBotExtensionVersion *string `toml:"reviewbot_extension_version"`
	ReviewBotWorkerVersion    *string `toml:"reviewbot_worker_version"`
}

// LoadProfile reads and parses a profile file. Unknown keys are
// rejected so a typo in an answers file fails loudly instead of being
// silently ignored.
func LoadProfile(path string) (*Profile, error) {
	// #nosec G304 - the path comes from a command line flag.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewInstallerErrorf(
			"Unable to read the install profile at %s: %s", path, err)
	}

	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	var profile Profile

	if err := decoder.Decode(&profile); err != nil {
		var strictErr *toml.StrictMissingError
		if errors.As(err, &strictErr) {
			return nil, domain.NewInstallerErrorf(
				"The install profile at %s contains unsupported settings:\n%s",
				path, strictErr.String())
		}

		return nil, domain.NewInstallerErrorf(
			"Unable to parse the install profile at %s: %s", path, err)
	}

	return &profile, nil
}

// Apply overlays the profile's set fields onto the configuration.
func (p *Profile) Apply(cfg *Config) {
	applyString(&cfg.InstallPath, p.InstallPath)
	applyString(&cfg.SitedirPath, p.SitedirPath)
	applyBool(&cfg.CreateSitedir, p.CreateSitedir)
	applyBool(&cfg.InstallPowerPack, p.InstallPowerPack)
	applyBool(&cfg.InstallReviewBotExtension, p.InstallReviewBotExtension)
	applyBool(&cfg.InstallReviewBotWorker, p.InstallReviewBotWorker)
	applyString(&cfg.ReviewBoardVersion, p.ReviewBoardVersion)
	applyString(&cfg.PowerPackVersion, p.PowerPackVersion)
	applyString(&cfg.ReviewBotExtensionVersion, p.ReviewBotExtensionVersion)
	applyString(&cfg.ReviewBotWorkerVersion, p.ReviewBotWorkerVersion)
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func applyBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
