// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Command surafitctl runs maintenance tasks against the Sura Fitness
// database: migrations, seeding, operator accounts and lead export.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"surafit/internal/config"
	"surafit/internal/database"
	"surafit/internal/gateway"
	"surafit/internal/models"
	"surafit/internal/store"
	"surafit/internal/validation"
)

const minPasswordLength = 8

// cli carries the collaborators shared by every subcommand.
type cli struct {
	loadConfig func() (*config.Config, error)
	openDB     func(ctx context.Context, dsn string) (*sql.DB, error)
	validate   *validation.Validator
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	c := &cli{
		loadConfig: config.Load,
		openDB:     database.Connect,
		validate:   validation.New(),
	}
	if err := c.rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "surafitctl",
		Short:        "Maintenance tasks for the Sura Fitness site",
		SilenceUsage: true,
	}
	root.AddCommand(
		c.migrateCommand(),
		c.seedCommand(),
		c.createAdminCommand(),
		c.resetTwoFACommand(),
		c.exportLeadsCommand(),
	)
	return root
}

// withDB loads configuration, connects and runs fn.
func (c *cli) withDB(ctx context.Context, fn func(cfg *config.Config, db *sql.DB) error) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	db, err := c.openDB(ctx, cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(cfg, db)
}

func (c *cli) migrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.withDB(cmd.Context(), func(_ *config.Config, db *sql.DB) error {
					return database.Migrate(cmd.Context(), db)
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.withDB(cmd.Context(), func(_ *config.Config, db *sql.DB) error {
					return database.MigrateDown(cmd.Context(), db)
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show applied and pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.withDB(cmd.Context(), func(_ *config.Config, db *sql.DB) error {
					if err := database.Status(cmd.Context(), db); err != nil {
						return err
					}
					v, err := database.Version(cmd.Context(), db)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", v)
					return nil
				})
			},
		},
	)
	return cmd
}

func (c *cli) seedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the first admin and sample content in empty tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withDB(cmd.Context(), func(cfg *config.Config, db *sql.DB) error {
				return database.Seed(cmd.Context(), db, database.Account{Email: cfg.AdminEmail, Password: cfg.AdminPassword})
			})
		},
	}
}

func (c *cli) createAdminCommand() *cobra.Command {
	var (
		email, password, name, role string
	)
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create a back-office account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email = strings.TrimSpace(email)
			if err := c.validate.Var(email, "required,email"); err != nil {
				return fmt.Errorf("invalid --email %q", email)
			}
			if password == "" {
				password = os.Getenv("SURAFIT_PASSWORD")
			}
			if len(password) < minPasswordLength {
				return fmt.Errorf("password must be at least %d characters (use --password or SURAFIT_PASSWORD)", minPasswordLength)
			}
			r := models.Role(role)
			if r != models.RoleAdmin && r != models.RoleEditor {
				return fmt.Errorf("invalid --role %q: want admin or editor", role)
			}
			if name == "" {
				name = strings.SplitN(email, "@", 2)[0]
			}

			return c.withDB(cmd.Context(), func(_ *config.Config, db *sql.DB) error {
				users := store.NewUserStore(db)
				existing, err := users.FindByEmail(email)
				if err != nil {
					return err
				}
				if existing != nil {
					return fmt.Errorf("an account for %s already exists", email)
				}
				u, err := users.Create(email, password, name, r)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created %s account %s (%s)\n", u.Role, u.Email, u.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "login email (required)")
	cmd.Flags().StringVar(&password, "password", "", "login password; falls back to $SURAFIT_PASSWORD")
	cmd.Flags().StringVar(&name, "name", "", "display name; defaults to the email's local part")
	cmd.Flags().StringVar(&role, "role", string(models.RoleAdmin), "admin or editor")
	return cmd
}

func (c *cli) resetTwoFACommand() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "reset-2fa",
		Short: "Clear an operator's authenticator so they enrol again on next login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email = strings.TrimSpace(email)
			if email == "" {
				return fmt.Errorf("--email is required")
			}
			return c.withDB(cmd.Context(), func(_ *config.Config, db *sql.DB) error {
				users := store.NewUserStore(db)
				u, err := users.FindByEmail(email)
				if err != nil {
					return err
				}
				if u == nil {
					return fmt.Errorf("no account for %s", email)
				}
				if err := users.ResetTOTP(u.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "two-factor reset for %s\n", u.Email)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email (required)")
	return cmd
}

func (c *cli) exportLeadsCommand() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export-leads",
		Short: "Write every lead as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withDB(cmd.Context(), func(_ *config.Config, db *sql.DB) error {
				var w io.Writer = cmd.OutOrStdout()
				if out != "" && out != "-" {
					f, err := os.Create(out)
					if err != nil {
						return fmt.Errorf("create %s: %w", out, err)
					}
					defer f.Close()
					w = f
				}
				n, err := store.NewLeadStore(gateway.NewPostgres(db)).ExportCSV(cmd.Context(), w)
				if err != nil {
					return err
				}
				slog.Info("leads exported", "count", n, "file", out)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file, - for stdout")
	return cmd
}
