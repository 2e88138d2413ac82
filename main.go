package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/codex-sync/cmd"
	"github.com/mattsolo1/codex-sync/cmd/config"
	"github.com/mattsolo1/codex-sync/internal/ui"
	"github.com/mattsolo1/codex-sync/pkg/service"
)

var svc *service.Service

func main() {
	rootCmd := &cobra.Command{
		Use:   "codex-sync",
		Short: "Keep a notebook document in sync with a directory of note files",
		Long: `codex-sync reconciles a JSON notebook document with note files on disk.

New files are copied into the managed notes directory and added under a fresh
notebook; notes whose files have disappeared are pruned.`,
		SilenceUsage: true,
	}
	config.AddGlobalFlags(rootCmd)

	rootCmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		// This runs once before any subcommand
		config.InitConfig()
		if !cmd.NeedsService(c) {
			return nil
		}

		s, settings, err := config.InitService()
		if err != nil {
			return fmt.Errorf("failed to initialize service: %w", err)
		}
		svc = s
		ui.ConfigureColor(c.OutOrStdout(), settings.NoColor)
		return nil
	}
	rootCmd.PersistentPostRunE = func(c *cobra.Command, args []string) error {
		if svc == nil {
			return nil
		}
		return svc.Close()
	}

	// Add subcommands
	rootCmd.AddCommand(cmd.NewImportCmd(&svc))
	rootCmd.AddCommand(cmd.NewStatusCmd(&svc))
	rootCmd.AddCommand(cmd.NewTreeCmd(&svc))
	rootCmd.AddCommand(cmd.NewHistoryCmd(&svc))
	rootCmd.AddCommand(cmd.NewDoctorCmd(&svc))
	rootCmd.AddCommand(cmd.NewCleanCmd(&svc))
	rootCmd.AddCommand(cmd.NewInitCmd(&svc))
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
