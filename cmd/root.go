package cmd

import "github.com/spf13/cobra"

const skipServiceAnnotation = "codex-sync/skip-service"

// NeedsService reports whether cmd runs against the service. Commands that
// only print build information opt out.
func NeedsService(cmd *cobra.Command) bool {
	return cmd.Annotations[skipServiceAnnotation] == ""
}
