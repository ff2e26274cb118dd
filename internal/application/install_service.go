// SPDX-FileCopyrightText: 2025 Beanbag, Inc.
// SPDX-License-Identifier: MIT

// Package application orchestrates the installation flow.
//
// The services here sit between the interactive wizard and the adapters.
// They gather system facts, resolve package versions, compute the
// installation plan, and execute it, leaving all presentation to the
// caller.
package application

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/reviewboard/rbinstall/internal/config"
	"github.com/reviewboard/rbinstall/internal/domain"
	"github.com/reviewboard/rbinstall/internal/logging"
	"github.com/reviewboard/rbinstall/internal/methods"
	"github.com/reviewboard/rbinstall/internal/planner"
)

// InstallPathState classifies a proposed installation directory.
type InstallPathState int

const (
	// InstallPathUsable means the directory is missing or empty.
	InstallPathUsable InstallPathState = iota

	// InstallPathHasInstall means the directory already contains a
	// Review Board install.
	InstallPathHasInstall

	// InstallPathNotEmpty means the directory holds unrelated files.
	InstallPathNotEmpty
)

// InstallService orchestrates a Review Board installation run.
type InstallService struct {
	systemDetector domain.SystemDetector
	packageIndex   domain.PackageIndex
	commandRunner  domain.CommandRunner
	fileManager    domain.FileManager
	steps          *methods.Runner
	logger         zerolog.Logger
}

// NewInstallService creates a service on top of the platform ports.
func NewInstallService(
	systemDetector domain.SystemDetector,
	packageIndex domain.PackageIndex,
	commandRunner domain.CommandRunner,
	fileManager domain.FileManager,
	downloader domain.ScriptDownloader,
) *InstallService {
	return &InstallService{
		systemDetector: systemDetector,
		packageIndex:   packageIndex,
		commandRunner:  commandRunner,
		fileManager:    fileManager,
		steps:          methods.NewRunner(commandRunner, downloader),
		logger:         logging.GetLogger("install"),
	}
}

// PrepareInstall gathers system facts and resolves the versions of every
// selected Review Board package, returning the initial state for an
// installation run.
func (s *InstallService) PrepareInstall(
	ctx context.Context,
	cfg *config.Config,
) (*domain.InstallState, error) {
	systemInfo, err := s.systemDetector.DetectSystem(ctx)
	if err != nil {
		return nil, err
	}

	state := &domain.InstallState{
		SystemInfo:                systemInfo,
		CreateSitedir:             cfg.CreateSitedir && !cfg.Unattended,
		DryRun:                    cfg.DryRun,
		InstallPowerPack:          cfg.InstallPowerPack,
		InstallReviewBotExtension: cfg.InstallReviewBotExtension,
		InstallReviewBotWorker:    cfg.InstallReviewBotWorker,
		SitedirPath:               cfg.SitedirPath,
		UnattendedInstall:         cfg.Unattended,
	}
	state.SetVenvPath(cfg.InstallPath)

	if err := s.resolvePackageVersions(ctx, state, cfg); err != nil {
		return nil, err
	}

	return state, nil
}

// resolvePackageVersions looks up the target version of each selected
// package on the package index.
func (s *InstallService) resolvePackageVersions(
	ctx context.Context,
	state *domain.InstallState,
	cfg *config.Config,
) error {
	systemInfo := state.SystemInfo

	var err error

	state.ReviewBoardVersionInfo, err = s.resolveVersion(
		ctx, systemInfo, "ReviewBoard", true, cfg.ReviewBoardVersion)
	if err != nil {
		return err
	}

	state.PowerPackVersionInfo, err = s.resolveVersion(
		ctx, systemInfo, "ReviewBoardPowerPack", cfg.InstallPowerPack,
		cfg.PowerPackVersion)
	if err != nil {
		return err
	}

	state.ReviewBotExtensionVersionInfo, err = s.resolveVersion(
		ctx, systemInfo, "reviewbot-extension",
		cfg.InstallReviewBotExtension, cfg.ReviewBotExtensionVersion)
	if err != nil {
		return err
	}

	state.ReviewBotWorkerVersionInfo, err = s.resolveVersion(
		ctx, systemInfo, "reviewbot-worker", cfg.InstallReviewBotWorker,
		cfg.ReviewBotWorkerVersion)

	return err
}

func (s *InstallService) resolveVersion(
	ctx context.Context,
	systemInfo *domain.SystemInfo,
	packageName string,
	install bool,
	targetVersion string,
) (*domain.PackageVersionInfo, error) {
	if !install {
		return nil, nil
	}

	info, err := s.packageIndex.LookupVersion(
		ctx, packageName, targetVersion, systemInfo.SystemPythonVersion)
	if err != nil {
		return nil, err
	}

	if info == nil {
		return nil, domain.NewInstallerErrorf(
			"No compatible version of %s could be found on this system. "+
				"You may need to install on a newer system with a newer "+
				"version of Python.",
			packageName)
	}

	s.logger.Debug().
		Str("package", info.PackageName).
		Str("version", info.Version).
		Msg("Resolved package version")

	return info, nil
}

// CheckInstallPath reports whether a directory can receive a new
// Review Board install.
func (s *InstallService) CheckInstallPath(path string) InstallPathState {
	if !s.fileManager.FileExists(path) {
		return InstallPathUsable
	}

	entries, err := s.fileManager.ListDir(path)
	if err == nil && len(entries) == 0 {
		return InstallPathUsable
	}

	if s.fileManager.FileExists(filepath.Join(path, "bin", "rb-site")) {
		return InstallPathHasInstall
	}

	return InstallPathNotEmpty
}

// PlanSteps computes the installation plan and records it on the state.
func (s *InstallService) PlanSteps(state *domain.InstallState) {
	state.Steps = planner.PlanInstall(state)
}

// PreviewCommands returns the command lines the planned steps would
// execute, without running anything.
func (s *InstallService) PreviewCommands(
	ctx context.Context,
	state *domain.InstallState,
) ([][]string, error) {
	capture := &domain.CommandCapture{}

	for _, step := range state.Steps {
		err := s.steps.RunMethod(ctx, state, step.InstallMethod, step.State,
			methods.StepOptions{
				DryRun:  true,
				Capture: capture,
			})
		if err != nil {
			return nil, err
		}
	}

	return capture.Commands, nil
}

// RunStep executes one planned installation step.
func (s *InstallService) RunStep(
	ctx context.Context,
	state *domain.InstallState,
	step *domain.InstallStep,
) error {
	s.logger.Info().
		Str("step", step.Name).
		Str("method", string(step.InstallMethod)).
		Msg("Running install step")

	return s.steps.RunMethod(ctx, state, step.InstallMethod, step.State,
		methods.StepOptions{
			DryRun: state.DryRun,
		})
}

// CreateSitedir builds the site directory hierarchy and hands the
// terminal to rb-site install. rb-site prompts for the site details
// itself and may be cancelled partway through, so success is judged by
// the site configuration it writes rather than its exit code.
func (s *InstallService) CreateSitedir(
	ctx context.Context,
	state *domain.InstallState,
) bool {
	sitedirPath := state.SitedirPath

	if err := s.fileManager.EnsureDir(sitedirPath); err != nil {
		s.logger.Error().Err(err).
			Str("path", sitedirPath).
			Msg("Unable to create the site directory")

		return false
	}

	err := s.commandRunner.Run(ctx, domain.RunOptions{
		Command: []string{state.RBSiteExe(), "install", sitedirPath},
		DryRun:  state.DryRun,
		Raw:     true,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("rb-site install failed")

		return false
	}

	return s.fileManager.FileExists(
		filepath.Join(sitedirPath, "conf", "settings_local.py"))
}
