// SPDX-FileCopyrightText: 2025 Beanbag, Inc.
// SPDX-License-Identifier: MIT

// Package tui implements the interactive installation wizard.
//
// The wizard walks the user through a fixed sequence of pages: an
// introduction summarizing the detected system, the install location,
// a review of every command about to run, the installation itself,
// and finally site directory setup. Pages print through the console
// package and prompt through huh forms, and each page degrades to a
// non-interactive rendition that takes the defaults when the installer
// runs unattended.
package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog"

	"github.com/reviewboard/rbinstall/internal/application"
	"github.com/reviewboard/rbinstall/internal/config"
	"github.com/reviewboard/rbinstall/internal/console"
	"github.com/reviewboard/rbinstall/internal/domain"
	"github.com/reviewboard/rbinstall/internal/logging"
)

const (
	supportEmail   = "support@beanbaginc.com"
	sitedirDocsURL = "https://www.reviewboard.org/docs/manual/latest/" +
		"admin/installation/creating-sites/"

	gatherText = "Gathering system and package information..."
)

// Wizard guides the user through the installation.
type Wizard struct {
	console *console.Console
	service *application.InstallService
	logger  zerolog.Logger
}

// NewWizard creates the installation wizard.
func NewWizard(terminal *console.Console,
	service *application.InstallService,
) *Wizard {
	return &Wizard{
		console: terminal,
		service: service,
		logger:  logging.GetLogger("wizard"),
	}
}

// Run walks through the installation from system detection to site
// directory creation. A dismissed prompt or Control-C ends the run
// quietly with a zero exit code.
func (w *Wizard) Run(ctx context.Context, cfg *config.Config) error {
	err := w.run(ctx, cfg)
	if err != nil && errors.Is(err, huh.ErrUserAborted) {
		w.console.Blank()

		return domain.NewExitError(0, "", nil)
	}

	return err
}

func (w *Wizard) run(ctx context.Context, cfg *config.Config) error {
	state, err := w.gather(ctx, cfg)
	if err != nil {
		return err
	}

	if err := w.showIntro(state); err != nil {
		return err
	}

	if err := w.askInstallLocation(state); err != nil {
		return err
	}

	if err := w.confirmInstall(ctx, state); err != nil {
		return err
	}

	if err := w.performInstall(ctx, state); err != nil {
		return err
	}

	if err := w.setupSiteDir(state); err != nil {
		return err
	}

	if state.CreateSitedir {
		if err := w.createSitedir(ctx, state); err != nil {
			return err
		}
	}

	w.showClosing(state)

	return nil
}

// gather detects the system and resolves package versions behind a
// status spinner.
func (w *Wizard) gather(ctx context.Context,
	cfg *config.Config,
) (*domain.InstallState, error) {
	gatherCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var state *domain.InstallState

	err := runWithStatus(ctx, w.console, gatherText, func() error {
		var err error

		state, err = w.service.PrepareInstall(gatherCtx, cfg)

		return err
	})
	if err != nil {
		return nil, err
	}

	w.logger.Debug().
		Str("system", state.SystemInfo.System).
		Str("method", string(state.SystemInfo.SystemInstallMethod)).
		Msg("Gathered system information")

	return state, nil
}

// showIntro summarizes the install process and the detected system,
// and confirms the details look right before anything happens.
func (w *Wizard) showIntro(state *domain.InstallState) error {
	w.console.FirstHeader("Welcome to the Review Board installer!")

	w.console.Paragraphs(
		"We'll walk you through installing Review Board on your system. "+
			"You'll be asked some questions about your install, and then "+
			"we'll take care of installing Review Board for you.",
		fmt.Sprintf("If you need to exit the installer, press Control-C "+
			"at any time. If you need help, contact %s.", supportEmail),
		"First, let's confirm some details about your system:")

	w.console.KeyValues(w.systemInfoRows(state))

	w.console.Note("The version of Python is important! If you need " +
		"Review Board to use a different version of Python, you will " +
		"need to re-run this installer using that version.")

	correct, err := w.confirm("Does this look correct?", true, true)
	if err != nil {
		return err
	}

	if !correct {
		w.console.Blank()
		w.console.Blank()
		w.console.Print(w.console.Styles().Error.Render(
			"Cancelling the installation.") +
			" If you need help, you can contact " + supportEmail + ".")

		return domain.NewExitError(1, "", nil)
	}

	return nil
}

// askInstallLocation explains the directories involved in a Review
// Board install and asks where the virtual environment should live,
// re-prompting until the path is usable.
func (w *Wizard) askInstallLocation(state *domain.InstallState) error {
	w.console.Header("Choose Your Install Location")

	w.console.Paragraphs(
		"There are two directories that you'll need to know about:")

	w.console.Terms([]console.Term{
		{
			Name: "Installation Directory",
			Description: "This is where Review Board will be installed. " +
				"This is a Python Virtual Environment, which will contain " +
				"the Review Board Python packages and executable files. " +
				"It'll be specific to this version of Python, so you'll " +
				"need to re-install if upgrading to a new version of Python.",
		},
		{
			Name: "Site Directory",
			Description: "This is a directory containing configuration, " +
				"data, file storage, and more for a specific Review Board " +
				"website (e.g., reviews.example.com). One server can host " +
				"multiple Review Board sites, each with their own site " +
				"directory.",
		},
	})

	w.console.Paragraphs(
		"You'll create your Site Directory later. For now, let's figure " +
			"out where Review Board will be installed.")

	for {
		venvPath, err := w.promptString(
			"Review Board installation directory", state.VenvPath)
		if err != nil {
			return err
		}

		if venvPath == "" {
			continue
		}

		switch w.service.CheckInstallPath(venvPath) {
		case application.InstallPathUsable:
			state.SetVenvPath(venvPath)

			return nil

		case application.InstallPathHasInstall:
			w.console.Blank()
			w.console.Error(fmt.Sprintf(
				"There's already an installation at %s. If you are trying "+
					"to upgrade Review Board, exit the installer (press "+
					"Control-C) and run:", venvPath))
			w.console.Blank()
			w.console.ShellCommand(filepath.Join(venvPath, "bin", "pip") +
				" install ReviewBoard==<version>")
			w.console.Blank()

		case application.InstallPathNotEmpty:
			w.console.Blank()
			w.console.Error("You must specify a Review Board installation " +
				"path that does not already exist.")
			w.console.Blank()
		}

		if state.UnattendedInstall {
			return domain.NewExitError(1, "", nil)
		}
	}
}

// confirmInstall computes the installation plan, shows every command
// that will run, and waits for the go-ahead.
func (w *Wizard) confirmInstall(ctx context.Context,
	state *domain.InstallState,
) error {
	w.console.Header("Preparing To Install Review Board")

	w.service.PlanSteps(state)

	commands, err := w.service.PreviewCommands(ctx, state)
	if err != nil {
		return err
	}

	w.console.Paragraphs("We're ready to install Review Board! Let's go " +
		"over the commands that will be run:")

	for _, command := range commands {
		w.console.ShellCommand(console.JoinCmdline(command))
		w.console.Blank()
	}

	w.console.Paragraphs("Please read through this. To cancel " +
		"installation, press Control-C.")

	for {
		ready, err := w.confirm(
			"Are you ready to install Review Board?", false, true)
		if err != nil {
			return err
		}

		if ready {
			return nil
		}

		cancel, err := w.confirm("Do you want to cancel?", false, false)
		if err != nil {
			return err
		}

		if cancel {
			return domain.NewExitError(0, "", nil)
		}
	}
}

// performInstall runs the planned steps, streaming their output and
// tracking progress. Steps marked as allowed to fail report their
// error and let the install continue.
func (w *Wizard) performInstall(ctx context.Context,
	state *domain.InstallState,
) error {
	w.console.Blank()

	tracker := newStepProgress(w.console, state.Steps)

	for _, step := range state.Steps {
		tracker.StartStep(step.Name)

		if err := w.service.RunStep(ctx, state, step); err != nil {
			if !step.AllowFail {
				return err
			}

			w.logger.Warn().Err(err).
				Str("step", step.Name).
				Msg("Install step failed; continuing")

			w.console.Error(err.Error())
			w.console.Error("Continuing...")
		}

		tracker.StepDone()
	}

	tracker.Finish()

	return nil
}

// setupSiteDir guides the user through creating a brand-new site
// directory or importing an existing one.
func (w *Wizard) setupSiteDir(state *domain.InstallState) error {
	styles := w.console.Styles()

	w.console.Header("Your Site Directory")

	w.console.Paragraphs(
		"If this is your first Review Board install, we'll help you "+
			"create your Site Directory now.",
		"If you have an existing Review Board install you're setting up "+
			"on this server, we'll guide you through importing it here.",
		fmt.Sprintf("We recommend reading through the Creating a Review "+
			"Board Site documentation, which will contain additional "+
			"information on creating your database and Site Directory "+
			"and configuring your system and web server to use it: %s",
			sitedirDocsURL))

	siteIsNew, err := w.confirm("Is this a brand-new Review Board install?",
		state.CreateSitedir, state.CreateSitedir)
	if err != nil {
		return err
	}

	state.CreateSitedir = siteIsNew

	w.console.Blank()
	w.console.Blank()

	if !siteIsNew {
		w.showImportSiteSteps()

		return nil
	}

	w.console.Paragraphs("To create a new Site Directory, run:")
	w.console.ShellCommand(state.RBSiteExe() + " install /path/to/sitedir")
	w.console.Blank()

	createSite, err := w.confirm(
		"Do you want to create a Site Directory now?", true, false)
	if err != nil {
		return err
	}

	state.CreateSitedir = createSite

	w.console.Blank()
	w.console.Blank()
	w.console.Paragraphs(
		"Decide where your Site Directory should be. " +
			styles.Note.Render("You cannot change this later!") +
			" Press Control-C if you want to exit the installer and set " +
			"up your Site Directory on your own later.")

	if createSite {
		for {
			sitedir, err := w.promptString("Review Board site directory",
				state.SitedirPath)
			if err != nil {
				return err
			}

			if sitedir != "" {
				state.SitedirPath = sitedir

				break
			}
		}

		w.console.Blank()
	}

	return nil
}

// showImportSiteSteps lists the manual steps for moving an existing
// Review Board site onto this server.
func (w *Wizard) showImportSiteSteps() {
	w.console.Paragraphs(
		"To set up an existing Review Board site on this server:")

	w.console.OrderedList(
		"Copy (or share) the Site Directory from the old server to this "+
			"server.\n\nYou must copy this to the same filesystem path! "+
			"If the Site Directory was at /var/www/reviewboard on the "+
			"old, server, it must be copied to /var/www/reviewboard on "+
			"the new server.",
		"If needed, export the database from the old server and import "+
			"it on this server.\n\nIf you don't need to move the "+
			"database, skip this step.",
		"Edit the Site Directory's conf/settings_local.py file and "+
			"update any file paths, hostnames, or IP addresses.\n\nThis "+
			"is required if you are moving your database to this server.",
		"Copy over or set up your web server's configuration for "+
			"Review Board.")
}

// createSitedir creates the site directory, handing the terminal over
// to rb-site for the site details. Failure here is not fatal to the
// product install, so the error page says how to retry before exiting.
func (w *Wizard) createSitedir(ctx context.Context,
	state *domain.InstallState,
) error {
	if w.service.CreateSitedir(ctx, state) {
		return nil
	}

	styles := w.console.Styles()

	w.console.Print(styles.Error.Render(
		"The Site Directory was not created or set up correctly. However, ") +
		styles.Success.Render("Review Board was successfully installed!") +
		styles.Error.Render(" You can try to create the Site Directory "+
			"again by running:"))
	w.console.Blank()
	w.console.ShellCommand(state.RBSiteExe() + " install " + state.SitedirPath)
	w.console.Blank()
	w.console.Error("Refer to the Creating a Review Board Site " +
		"documentation: " + sitedirDocsURL)
	w.console.Blank()

	return domain.NewExitError(1, "", nil)
}

// showClosing celebrates a finished install and points at the site
// documentation for the remaining setup.
func (w *Wizard) showClosing(state *domain.InstallState) {
	w.console.Blank()

	if state.CreateSitedir {
		w.console.Markdown(fmt.Sprintf(
			"✅ **Congratulations!** Review Board is successfully "+
				"installed and your Site Directory created! **Carefully "+
				"follow the instructions above**, and refer to the "+
				"**Creating a Review Board Site** documentation to finish "+
				"setting up: %s", sitedirDocsURL))
	} else {
		w.console.Markdown(fmt.Sprintf(
			"✅ **Congratulations!** Review Board is successfully "+
				"installed! Once you've imported or created your Site "+
				"Directory, you'll be ready to use Review Board. Refer to "+
				"the **Creating a Review Board Site** documentation: %s",
			sitedirDocsURL))
	}

	w.console.Blank()
	w.console.Printf("Contact %s if you need assistance.", supportEmail)
}
