package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/turtacn/molgen/internal/config"
	"github.com/turtacn/molgen/internal/infrastructure/database/postgres"
	"github.com/turtacn/molgen/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molgen/pkg/errors"
)

// MigrationStatus is printed by `molgen migrate version`.
type MigrationStatus struct {
	Version uint `json:"version"`
	Dirty   bool `json:"dirty"`
}

func (s MigrationStatus) String() string {
	if s.Dirty {
		return fmt.Sprintf("version %d (dirty)", s.Version)
	}
	return fmt.Sprintf("version %d", s.Version)
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the generation history schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			if err := migrateUp(cliCtx.Config, cliCtx.Logger); err != nil {
				return err
			}
			return PrintResult(cmd, "migrations applied")
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down N",
		Short: "Roll back the last N migrations",
		Args:  downStepsArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			steps, _ := strconv.Atoi(args[0])
			m, err := openMigrator(cliCtx.Config, cliCtx.Logger)
			if err != nil {
				return err
			}
			defer closeMigrator(m, cliCtx.Logger)
			if err := m.Down(steps); err != nil {
				return err
			}
			return PrintResult(cmd, fmt.Sprintf("rolled back %d migration(s)", steps))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			m, err := openMigrator(cliCtx.Config, cliCtx.Logger)
			if err != nil {
				return err
			}
			defer closeMigrator(m, cliCtx.Logger)
			version, dirty, err := m.Version()
			if err != nil {
				return err
			}
			return PrintResult(cmd, MigrationStatus{Version: version, Dirty: dirty})
		},
	})

	return cmd
}

func downStepsArg(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return err
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return errors.InvalidParam(fmt.Sprintf("migration steps must be a positive integer, got %q", args[0]))
	}
	return nil
}

func openMigrator(cfg *config.Config, log logging.Logger) (*postgres.Migrator, error) {
	if !cfg.Database.Enabled {
		return nil, errors.New(errors.ErrCodeFeatureDisabled, "database is not enabled")
	}
	return postgres.NewMigrator(cfg.Database.DSN(), log)
}

func closeMigrator(m *postgres.Migrator, log logging.Logger) {
	if err := m.Close(); err != nil {
		log.Warn("Failed to close migrator", logging.Err(err))
	}
}

func migrateUp(cfg *config.Config, log logging.Logger) error {
	m, err := openMigrator(cfg, log)
	if err != nil {
		return err
	}
	defer closeMigrator(m, log)
	return m.Up()
}

//Personal.AI order the ending
