package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/osolodkova/tracker/internal/analytics"
	"github.com/osolodkova/tracker/internal/cli"
	"github.com/osolodkova/tracker/internal/cli/system"
	"github.com/osolodkova/tracker/internal/constants"
	apperrors "github.com/osolodkova/tracker/internal/errors"
	"github.com/osolodkova/tracker/internal/keyring"
	"github.com/osolodkova/tracker/internal/logger"
	"github.com/osolodkova/tracker/internal/storage"
	"github.com/osolodkova/tracker/internal/storage/postgres"
	"github.com/osolodkova/tracker/internal/storage/sqlite"
	"github.com/osolodkova/tracker/internal/utils"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database file path or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded in the connection string. Use the OS keyring, environment variables or .pgpass instead." type:"string" default:"${config_path}"`
	Debug   bool   `help:"Enable debug logging."`

	Init    system.InitCmd    `cmd:"" help:"Initialize tracker storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive day view." default:"1"`

	Add       cli.AddCmd       `cmd:"" help:"Add a new tracker."`
	List      cli.ListCmd      `cmd:"" help:"Show the filtered tracker list for a day."`
	Edit      cli.EditCmd      `cmd:"" help:"Edit an existing tracker."`
	Delete    cli.DeleteCmd    `cmd:"" help:"Delete a tracker and its records."`
	Pin       cli.PinCmd       `cmd:"" help:"Pin or unpin a tracker."`
	Complete  cli.CompleteCmd  `cmd:"" help:"Toggle completion for a day."`
	Completed cli.CompletedCmd `cmd:"" help:"List completed trackers."`
	Stats     cli.StatsCmd     `cmd:"" help:"Show completion statistics."`

	Category cli.CategoryCmd `cmd:"" help:"Manage categories."`
	Settings cli.SettingsCmd `cmd:"" help:"Manage application settings."`
	Backup   cli.BackupCmd   `cmd:"" help:"Manage database backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal habit tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(utils.ExpandHome(constants.DefaultConfigPath)),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	store, err := selectStore(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}
	appCtx := cli.NewContext(store)

	// Every command but init expects an initialized database
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}
	defer store.Close()

	analytics.Attach(appCtx.Events)

	if err := ctx.Run(appCtx); err != nil {
		apperrors.Fatal(err)
	}
}

// selectStore picks the storage backend. An explicit postgres:// config wins,
// then a connection string stored in the OS keyring, then sqlite at the
// configured file path.
func selectStore(config string) (storage.Provider, error) {
	if storage.IsPostgresTarget(config) {
		if storage.HasEmbeddedCredentials(config) {
			return nil, fmt.Errorf("PostgreSQL connection strings with embedded credentials are not allowed; store the connection string with 'tracker settings connect' or use .pgpass")
		}
		return postgres.NewStore(config), nil
	}

	if config == constants.DefaultConfigPath {
		if connStr, err := keyring.GetConnectionString(); err == nil {
			return postgres.NewStore(connStr), nil
		}
	}

	return sqlite.NewStore(utils.ExpandHome(config)), nil
}
