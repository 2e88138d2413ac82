package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/codex-sync/pkg/service"
	"github.com/mattsolo1/codex-sync/pkg/tree"
)

func NewTreeCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Print the notebook tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			doc, err := s.Document()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), tree.Render(doc.Items, filepath.Base(s.Store.Path)))
			return nil
		},
	}
}
