package cli

import (
	"errors"
	"fmt"

	"github.com/osolodkova/tracker/internal/keyring"
	"github.com/osolodkova/tracker/internal/models"
	"github.com/osolodkova/tracker/internal/storage"
	"github.com/osolodkova/tracker/internal/utils"
)

type SettingsCmd struct {
	Show     SettingsShowCmd     `cmd:"" default:"1" help:"Show current settings."`
	Timezone SettingsTimezoneCmd `cmd:"" help:"Set the timezone used for day boundaries."`
	Connect  SettingsConnectCmd  `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
	Forget   SettingsForgetCmd   `cmd:"" help:"Remove the stored connection string from the OS keyring."`
}

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	fmt.Printf("Timezone: %s\n", settings.Timezone)
	if today, err := utils.TodayInTimezone(settings.Timezone); err == nil {
		fmt.Printf("Today:    %s\n", today)
	}

	if _, err := keyring.GetConnectionString(); err == nil {
		fmt.Println("Database: PostgreSQL (keyring)")
	} else {
		fmt.Printf("Database: %s\n", ctx.Store.GetConfigPath())
	}
	return nil
}

type SettingsTimezoneCmd struct {
	Timezone string `arg:"" help:"IANA timezone name, e.g. Europe/Berlin, or 'Local'."`
}

func (c *SettingsTimezoneCmd) Run(ctx *Context) error {
	if _, err := utils.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("unknown timezone %q: %w", c.Timezone, err)
	}
	if err := ctx.Store.SaveSettings(models.Settings{Timezone: c.Timezone}); err != nil {
		return err
	}
	fmt.Printf("Timezone set to %s\n", c.Timezone)
	return nil
}

type SettingsConnectCmd struct {
	ConnStr string `arg:"" help:"PostgreSQL connection string (postgres://user@host/db). Must not embed a password."`
}

func (c *SettingsConnectCmd) Run(ctx *Context) error {
	if !storage.IsPostgresTarget(c.ConnStr) {
		return fmt.Errorf("connection string must start with postgres:// or postgresql://")
	}
	if storage.HasEmbeddedCredentials(c.ConnStr) {
		return fmt.Errorf("connection string must not embed a password, use PGPASSWORD or .pgpass instead")
	}
	if err := keyring.SetConnectionString(c.ConnStr); err != nil {
		return err
	}
	fmt.Println("Connection string stored in the OS keyring.")
	return nil
}

type SettingsForgetCmd struct{}

func (c *SettingsForgetCmd) Run(ctx *Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Println("No stored connection string.")
			return nil
		}
		return err
	}
	fmt.Println("Connection string removed from the OS keyring.")
	return nil
}
