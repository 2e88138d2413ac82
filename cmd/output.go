package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/mattsolo1/codex-sync/internal/ui"
	"github.com/mattsolo1/codex-sync/pkg/service"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

var titleCaser = cases.Title(language.English)

func label(s string) string {
	return ui.Label.Render(titleCaser.String(s) + ":")
}

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
}

// writeStructured renders v as JSON or YAML.
func writeStructured(w io.Writer, format string, v interface{}) error {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported structured format %q", format)
	}
}

func printNames(w io.Writer, marker string, names []string) {
	for _, name := range names {
		fmt.Fprintf(w, "    %s %s\n", marker, name)
	}
}

func printReport(w io.Writer, report *service.Report, format string) error {
	if format != formatText {
		return writeStructured(w, format, report.Summary())
	}

	header := fmt.Sprintf("Import from %s", report.SourceDir)
	if report.DryRun {
		header += " (dry run)"
	}
	fmt.Fprintln(w, ui.Title.Render(header))

	if report.ListingError != nil {
		fmt.Fprintf(w, "  %s %s\n", label("listing error"), ui.Warn.Render(report.ListingError.Error()))
	}

	fmt.Fprintf(w, "  %s %d\n", label("new files"), len(report.Delta.New))
	printNames(w, ui.Added.Render("+"), report.Delta.New)
	fmt.Fprintf(w, "  %s %d\n", label("stale notes"), len(report.Delta.Stale))
	printNames(w, ui.Removed.Render("-"), report.Delta.Stale)

	if !report.DryRun {
		fmt.Fprintf(w, "  %s %d\n", label("copied"), len(report.Copied()))
		if failures := report.CopyFailures(); len(failures) > 0 {
			fmt.Fprintf(w, "  %s %d\n", label("copy failures"), len(failures))
			for _, f := range failures {
				fmt.Fprintf(w, "    %s %s: %v\n", ui.Error.Render("!"), f.Name, f.Err)
			}
		}
	}

	if report.NothingToImport() {
		fmt.Fprintln(w, ui.Ok.Render("Nothing imported. All up to date!"))
	} else {
		fmt.Fprintf(w, "  %s %s (%d notes)\n", label("notebook"), report.Notebook.Name, len(report.Notebook.Children))
	}

	switch {
	case report.DryRun:
		fmt.Fprintln(w, ui.Dim.Render("Dry run: nothing was copied or saved."))
	case report.Saved:
		line := fmt.Sprintf("Saved %s", report.DocumentPath)
		if report.BackupPath != "" {
			line += fmt.Sprintf(" (backup: %s)", report.BackupPath)
		}
		fmt.Fprintln(w, ui.Ok.Render(line))
	}
	return nil
}

func printDelta(w io.Writer, report *service.Report, format string) error {
	if format != formatText {
		return writeStructured(w, format, report.Delta)
	}

	if report.ListingError != nil {
		fmt.Fprintf(w, "%s %s\n", label("listing error"), ui.Warn.Render(report.ListingError.Error()))
	}
	if report.Delta.Empty() {
		fmt.Fprintln(w, ui.Ok.Render("Up to date."))
		return nil
	}
	fmt.Fprintf(w, "%s %s\n", label("new files"), strings.Join(report.Delta.New, ", "))
	fmt.Fprintf(w, "%s %s\n", label("stale notes"), strings.Join(report.Delta.Stale, ", "))
	return nil
}
