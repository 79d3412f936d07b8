package foldermgr

import (
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/foldermgr/pkg/processor"
	"github.com/arthur-debert/foldermgr/pkg/rules"
)

var (
	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#C41A16", Dark: "#FF6B68"})
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)
)

// isTerminal reports whether stdout is a terminal
func isTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// disableColorIfPiped turns off styling when output is not a terminal
func disableColorIfPiped() {
	if isTerminal() {
		return
	}
	pterm.DisableStyling()
	lipgloss.SetColorProfile(termenv.Ascii)
}

// RenderError formats err for the terminal
func RenderError(err error) string {
	return errorStyle.Render(fmt.Sprintf("Error: %v", err))
}

// formatBold returns the string formatted as bold using pterm
func formatBold(s string) string {
	if !isTerminal() {
		return s
	}
	return pterm.Bold.Sprint(s)
}

// formatBoldUpper returns the string in uppercase and bold
func formatBoldUpper(s string) string {
	return formatBold(strings.ToUpper(s))
}

// initTemplateFormatting adds custom formatting functions to Cobra templates
func initTemplateFormatting() {
	cobra.AddTemplateFuncs(template.FuncMap{
		"bold":      formatBold,
		"upper":     strings.ToUpper,
		"boldUpper": formatBoldUpper,
	})
}

func renderTable(data pterm.TableData) (string, error) {
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

func migrateTable(set []rules.MigrateRule) pterm.TableData {
	data := pterm.TableData{{"#", "Name", "Content types", "Extensions", "Pattern", "Target"}}
	for i, r := range set {
		data = append(data, []string{
			fmt.Sprint(i + 1),
			r.Name,
			strings.Join(r.ContentTypes, ", "),
			strings.Join(r.Extensions, ", "),
			r.PatternString(),
			r.TargetPath,
		})
	}
	return data
}

func zipTable(set []rules.ZipRule) pterm.TableData {
	data := pterm.TableData{{"#", "Name", "Content types", "Extensions", "Pattern", "Size", "Migrated folders"}}
	for i, r := range set {
		sizeCell := ""
		if r.HasSize {
			sizeCell = r.Size.Humanize()
		}
		migrated := "no"
		if r.AllowFromMigratedFolder {
			migrated = "yes"
		}
		data = append(data, []string{
			fmt.Sprint(i + 1),
			r.Name,
			strings.Join(r.ContentTypes, ", "),
			strings.Join(r.Extensions, ", "),
			r.PatternString(),
			sizeCell,
			migrated,
		})
	}
	return data
}

func resultsTable(results []processor.Result) pterm.TableData {
	data := pterm.TableData{{"File", "Action", "Detail"}}
	for _, r := range results {
		action, detail := MsgActionUnchanged, ""
		switch {
		case r.Err != nil:
			action, detail = MsgActionFailed, r.Err.Error()
		case r.Migrated && r.Zipped():
			action, detail = MsgActionMigrated+", "+MsgActionZipped, r.Archive
		case r.Migrated:
			action, detail = MsgActionMigrated, r.Path
		case r.Zipped():
			action, detail = MsgActionZipped, r.Archive
		}
		data = append(data, []string{r.Source, action, detail})
	}
	return data
}
