// SPDX-FileCopyrightText: 2025 Beanbag, Inc.
// SPDX-License-Identifier: MIT

// Package cli wires the installer's command line surface.
//
// The command itself is thin. It resolves the run configuration from
// defaults, an optional install profile, and flags, then hands off to
// the interactive wizard. All user-facing output after argument
// parsing goes through the console so color and interactivity are
// handled in one place.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/reviewboard/rbinstall/internal/adapters/network"
	"github.com/reviewboard/rbinstall/internal/adapters/platform"
	"github.com/reviewboard/rbinstall/internal/adapters/pypi"
	"github.com/reviewboard/rbinstall/internal/application"
	"github.com/reviewboard/rbinstall/internal/config"
	"github.com/reviewboard/rbinstall/internal/console"
	"github.com/reviewboard/rbinstall/internal/domain"
	"github.com/reviewboard/rbinstall/internal/logging"
	"github.com/reviewboard/rbinstall/internal/tui"
	"github.com/reviewboard/rbinstall/internal/version"
)

// App is the rbinstall command line application.
type App struct {
	root *cli.Command

	// out and isTerminal are replaced by tests.
	out        io.Writer
	isTerminal func() bool
}

// NewApp builds the installer command.
func NewApp() *App {
	app := &App{
		out: os.Stdout,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdout.Fd()))
		},
	}

	app.root = &cli.Command{
		Name:    "rbinstall",
		Usage:   "Install Review Board onto this system",
		Writer:  app.out,
		Suggest: true,
		Flags:   installFlags(),
		Action:  app.runInstall,
	}

	return app
}

// Run parses args and executes the installer.
func (a *App) Run(ctx context.Context, args []string) error {
	if err := a.root.Run(ctx, args); err != nil {
		exitErr := &domain.ExitError{}
		if errors.As(err, &exitErr) {
			return err
		}

		// Anything else failed flag parsing, before the action ran.
		return domain.NewExitError(2, err.Error(), nil)
	}

	return nil
}

func installFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "version",
			Usage: "Show the version of the Review Board installer.",
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "Disable color output in the terminal",
		},
		&cli.BoolFlag{
			Name: "noinput",
			Usage: "Run without prompting for any questions. This " +
				"allows for unattended installs.",
		},
		&cli.BoolFlag{
			Name: "dry-run",
			Usage: "Whether to perform a dry-run of the installation. " +
				"No installation commands will actually be run.",
			Sources: cli.EnvVars("RBINSTALL_DRY_RUN"),
		},
		&cli.BoolFlag{
			Name:    "debug",
			Usage:   "Run with additional debug information.",
			Sources: cli.EnvVars("RBINSTALL_DEBUG"),
		},
		&cli.StringFlag{
			Name:  "install-path",
			Usage: "The location for the Review Board install.",
			Value: config.DefaultInstallPath,
		},
		&cli.BoolFlag{
			Name: "create-sitedir",
			Usage: "Create a site directory after Review Board is " +
				"installed. This is ignored for unattended installs " +
				"(--noinput).",
			Value: true,
		},
		&cli.BoolFlag{
			Name: "no-create-sitedir",
			Usage: "Don't create a site directory after Review Board " +
				"is installed. This is always set for unattended " +
				"installs (--noinput).",
		},
		&cli.StringFlag{
			Name: "sitedir-path",
			Usage: "The location for a Review Board site directory, " +
				"if creating one.",
			Value: config.DefaultSitedirPath,
		},
		&cli.BoolFlag{
			Name:  "no-install-powerpack",
			Usage: "Disable installing Power Pack.",
		},
		&cli.BoolFlag{
			Name:  "no-install-reviewbot-extension",
			Usage: "Disable installing the Review Bot extension.",
		},
		&cli.BoolFlag{
			Name:  "no-install-reviewbot-worker",
			Usage: "Disable installing the Review Bot worker.",
		},
		&cli.StringFlag{
			Name: "reviewboard-version",
			Usage: "The specific version of Review Board to install, " +
				`or a Python package version specifier (e.g., "~=6.0")`,
			Value: config.LatestVersion,
		},
		&cli.StringFlag{
			Name: "powerpack-version",
			Usage: "The specific version of Power Pack to install, " +
				`or a Python package version specifier (e.g., "~=6.0")`,
			Value: config.LatestVersion,
		},
		&cli.StringFlag{
			Name: "reviewbot-extension-version",
			Usage: "The specific version of the Review Bot extension " +
				"to install, or a Python package version specifier " +
				`(e.g., "~=6.0")`,
			Value: config.LatestVersion,
		},
		&cli.StringFlag{
			Name: "reviewbot-worker-version",
			Usage: "The specific version of the Review Bot worker " +
				"to install, or a Python package version specifier " +
				`(e.g., "~=6.0")`,
			Value: config.LatestVersion,
		},
		&cli.StringFlag{
			Name:  "profile",
			Usage: "Load installer settings from a TOML install profile.",
		},
	}
}

func (a *App) runInstall(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("version") {
		fmt.Fprintf(cmd.Root().Writer, "rbinstall %s\n", version.Version)

		return nil
	}

	terminal := a.newConsole(cmd)

	if args := cmd.Args(); args.Len() > 0 {
		terminal.Error(fmt.Sprintf("Unrecognized arguments: %s",
			strings.Join(args.Slice(), " ")))

		return domain.NewExitError(2, "", nil)
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		return reportError(terminal, err)
	}

	logging.Setup(cfg.Debug)

	if !cfg.Unattended && !a.isTerminal() {
		return reportError(terminal, domain.NewInstallerError(
			"To run the Review Board installer without an interactive "+
				"terminal, please run with --noinput. This will run an "+
				"unattended install of Review Board, using defaults."))
	}

	fileManager := platform.NewFileManager()
	service := application.NewInstallService(
		platform.NewSystemDetector(fileManager),
		pypi.NewClient(""),
		platform.NewCommandRunner(terminal),
		fileManager,
		network.NewScriptDownloader(),
	)

	if err := tui.NewWizard(terminal, service).Run(ctx, cfg); err != nil {
		return reportError(terminal, err)
	}

	return nil
}

func (a *App) newConsole(cmd *cli.Command) *console.Console {
	return console.New(a.out, console.Options{
		Color:       !cmd.Bool("no-color"),
		Interactive: !cmd.Bool("noinput"),
	})
}

// buildConfig resolves the run configuration. Flags beat the profile,
// and the profile beats the built-in defaults. The negative sitedir
// flag beats the positive one so a profile's create_sitedir setting
// can still be switched off from the command line.
func buildConfig(cmd *cli.Command) (*config.Config, error) {
	cfg := config.Default()

	if path := cmd.String("profile"); path != "" {
		profile, err := config.LoadProfile(path)
		if err != nil {
			return nil, err
		}

		profile.Apply(cfg)
	}

	if cmd.IsSet("install-path") {
		cfg.InstallPath = cmd.String("install-path")
	}

	if cmd.IsSet("sitedir-path") {
		cfg.SitedirPath = cmd.String("sitedir-path")
	}

	if cmd.IsSet("create-sitedir") {
		cfg.CreateSitedir = cmd.Bool("create-sitedir")
	}

	if cmd.Bool("no-create-sitedir") {
		cfg.CreateSitedir = false
	}

	if cmd.Bool("no-install-powerpack") {
		cfg.InstallPowerPack = false
	}

	if cmd.Bool("no-install-reviewbot-extension") {
		cfg.InstallReviewBotExtension = false
	}

	if cmd.Bool("no-install-reviewbot-worker") {
		cfg.InstallReviewBotWorker = false
	}

	for _, target := range []struct {
		flag string
		dst  *string
	}{
		{"reviewboard-version", &cfg.ReviewBoardVersion},
		{"powerpack-version", &cfg.PowerPackVersion},
		{"reviewbot-extension-version", &cfg.ReviewBotExtensionVersion},
		{"reviewbot-worker-version", &cfg.ReviewBotWorkerVersion},
	} {
		if cmd.IsSet(target.flag) {
			*target.dst = cmd.String(target.flag)
		}
	}

	cfg.DryRun = cmd.Bool("dry-run")
	cfg.Debug = cmd.Bool("debug")
	cfg.NoColor = cmd.Bool("no-color")
	cfg.Unattended = cmd.Bool("noinput")

	return cfg, nil
}

// reportError prints err and converts it into a process exit code.
// ExitErrors pass through so an already reported failure is not
// printed twice.
func reportError(terminal *console.Console, err error) error {
	var exitErr *domain.ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	terminal.Error(err.Error())

	return domain.NewExitError(1, "", nil)
}
