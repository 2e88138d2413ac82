package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/codex-sync/pkg/models"
	"github.com/mattsolo1/codex-sync/pkg/service"
	"github.com/mattsolo1/codex-sync/pkg/store"
)

func NewInitCmd(svc **service.Service) *cobra.Command {
	var schemaVersion int

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an empty notebook document",
		Long: `Create an empty notebook document and the notes directory.

An existing document is left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			w := cmd.OutOrStdout()

			err := s.Init(schemaVersion)
			if errors.Is(err, store.ErrExists) {
				fmt.Fprintf(w, "Document already exists at %s\n", s.Store.Path)
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(w, "Initialized document at %s\n", s.Store.Path)
			fmt.Fprintf(w, "Notes directory: %s\n", s.Config.NotesDir)
			return nil
		},
	}

	cmd.Flags().IntVar(&schemaVersion, "schema-version", models.DefaultSchemaVersion, "Schema version written to the new document")

	return cmd
}
