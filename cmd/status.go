package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mattsolo1/codex-sync/pkg/service"
)

func NewStatusCmd(svc **service.Service) *cobra.Command {
	var (
		path   string
		format string
	)

	cmd := &cobra.Command{
		Use:   "status [DIR]",
		Short: "Show which files would be imported or pruned",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			dir, err := resolveSourceDir(path, args)
			if err != nil {
				return err
			}

			report, err := (*svc).Reconcile(dir, service.WithDryRun())
			if err != nil {
				return err
			}
			return printDelta(cmd.OutOrStdout(), report, format)
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "Directory to compare against")
	cmd.Flags().StringVar(&format, "format", formatText, "Output format (text, json, yaml)")

	return cmd
}
