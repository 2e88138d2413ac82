package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/codex-sync/pkg/service"
	"github.com/mattsolo1/codex-sync/pkg/storage"
)

// ErrInvalidSource is returned when the source directory is missing or is
// not a directory. The reconciler is not run in that case.
var ErrInvalidSource = errors.New("invalid source directory")

func NewImportCmd(svc **service.Service) *cobra.Command {
	var (
		path      string
		dryRun    bool
		overwrite storage.OverwritePolicy
		format    string
	)

	cmd := &cobra.Command{
		Use:   "import [DIR]",
		Short: "Import new note files and drop notes whose files are gone",
		Long: `Reconcile the notebook document with a directory of note files.

Files in DIR that no note references are copied into the notes directory and
collected under a new "AUTO NOTEBOOK" notebook. Notes whose files are no longer
in DIR are removed from the document, at any depth.

Examples:
  codex-sync import ~/Downloads/notes
  codex-sync import --path ./export --dry-run
  codex-sync import ./export --overwrite reject --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			dir, err := resolveSourceDir(path, args)
			if err != nil {
				return err
			}

			opts := []service.ReconcileOption{service.WithOverwritePolicy(overwrite)}
			if dryRun {
				opts = append(opts, service.WithDryRun())
			}

			report, err := (*svc).Reconcile(dir, opts...)
			if err != nil {
				return err
			}
			return printReport(cmd.OutOrStdout(), report, format)
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "Directory to import from")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would change without copying or saving")
	cmd.Flags().Var(&overwrite, "overwrite", "Collision policy for existing files (overwrite, reject)")
	cmd.Flags().StringVar(&format, "format", formatText, "Output format (text, json, yaml)")

	return cmd
}

// resolveSourceDir picks the directory from --path or the first argument and
// checks that it exists and is a directory.
func resolveSourceDir(path string, args []string) (string, error) {
	dir := path
	if dir == "" && len(args) > 0 {
		dir = args[0]
	}
	if dir == "" {
		return "", fmt.Errorf("%w: provide --path or a directory argument", ErrInvalidSource)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrInvalidSource, dir)
	}
	return dir, nil
}
