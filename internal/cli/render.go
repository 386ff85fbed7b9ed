package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/StephenKaylonChan/ocrkit/internal/config"
	"github.com/StephenKaylonChan/ocrkit/internal/detect"
	"github.com/StephenKaylonChan/ocrkit/internal/engine/batch"
	"github.com/StephenKaylonChan/ocrkit/internal/report"
)

// Rendering layout constants.
const (
	summaryTitleWidth = 40
	languageColWidth  = 14
	maxErrorDisplay   = 5 // Failed items listed before truncating
)

func headerColor() lipgloss.Color { return lipgloss.Color("33") }
func labelColor() lipgloss.Color  { return lipgloss.Color("245") }
func okColor() lipgloss.Color     { return lipgloss.Color("42") }
func failColor() lipgloss.Color   { return lipgloss.Color("196") }
func mutedColor() lipgloss.Color  { return lipgloss.Color("240") }

// renderSummary renders the batch report for the terminal, falling back to
// an unstyled layout when stdout is not a TTY.
func renderSummary(rendered report.Report, tracker *batch.Tracker) string {
	styled := isTerminal(os.Stdout)

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(headerColor())
	labelStyle := lipgloss.NewStyle().Foreground(labelColor())
	okStyle := lipgloss.NewStyle().Foreground(okColor()).Bold(true)
	failStyle := lipgloss.NewStyle().Foreground(failColor()).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(mutedColor()).Italic(true)
	if !styled {
		plain := lipgloss.NewStyle()
		headerStyle, labelStyle, okStyle, failStyle, mutedStyle = plain, plain, plain, plain, plain
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("BATCH SUMMARY"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", summaryTitleWidth))
	b.WriteString("\n")

	writeField := func(label, value string) {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-14s", label+":")))
		b.WriteString(" " + value + "\n")
	}

	writeField("Run ID", rendered.RunID)
	writeField("Total", fmt.Sprintf("%d", rendered.Total))
	writeField("Succeeded", okStyle.Render(fmt.Sprintf("%d", rendered.SuccessCount)))
	if rendered.FailureCount > 0 {
		writeField("Failed", failStyle.Render(fmt.Sprintf("%d", rendered.FailureCount)))
	} else {
		writeField("Failed", "0")
	}
	writeField("Success rate", rendered.SuccessRate)
	writeField("Elapsed", fmt.Sprintf("%dms", rendered.TotalElapsedMS))
	if tracker != nil && tracker.Processed() > 0 {
		writeField("Throughput", fmt.Sprintf("%.2f items/s", tracker.ItemsPerSecond()))
	}

	failed := failedOutcomes(rendered.Outcomes)
	if len(failed) > 0 {
		b.WriteString("\n")
		b.WriteString(failStyle.Render("FAILURES"))
		b.WriteString("\n")
		for i, outcome := range failed {
			if i == maxErrorDisplay {
				b.WriteString(mutedStyle.Render(fmt.Sprintf("  ... and %d more (see summary.json)", len(failed)-maxErrorDisplay)))
				b.WriteString("\n")
				break
			}
			b.WriteString(fmt.Sprintf("  %s: %s (%s)\n", outcome.Item, outcome.Error.Message, outcome.Error.Kind))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// failedOutcomes filters the report down to outcomes that carry an error.
func failedOutcomes(outcomes []report.OutcomeRecord) []report.OutcomeRecord {
	var failed []report.OutcomeRecord
	for _, outcome := range outcomes {
		if !outcome.Success && outcome.Error != nil {
			failed = append(failed, outcome)
		}
	}
	return failed
}

// renderDetection renders the ranked candidate table for a detection run.
func renderDetection(item string, detection detect.Detection) string {
	styled := isTerminal(os.Stdout)

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(headerColor())
	okStyle := lipgloss.NewStyle().Foreground(okColor()).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(mutedColor()).Italic(true)
	if !styled {
		plain := lipgloss.NewStyle()
		headerStyle, okStyle, mutedStyle = plain, plain, plain
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("LANGUAGE DETECTION"))
	b.WriteString("\n")
	b.WriteString(item)
	b.WriteString("\n\n")

	ranked := make([]detect.CandidateResult, len(detection.All))
	copy(ranked, detection.All)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AverageConfidence > ranked[j].AverageConfidence
	})

	for _, candidate := range ranked {
		marker := "  "
		line := fmt.Sprintf("%-*s %6.1f%%  %d lines",
			languageColWidth, candidate.Key.String(),
			candidate.AverageConfidence*100, candidate.LineCount)
		if detection.Best != nil && candidate.Key == detection.Best.Key {
			marker = okStyle.Render("▸ ")
			line = okStyle.Render(line)
		}
		b.WriteString(marker + line + "\n")
	}

	if detection.Best == nil {
		b.WriteString(mutedStyle.Render("no candidate recognized any text"))
		b.WriteString("\n")
	} else {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Best match: %s\n", okStyle.Render(detection.Best.Key.String())))
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderLanguages renders the supported language table, optionally with
// the accepted aliases.
func renderLanguages(showAliases bool) string {
	styled := isTerminal(os.Stdout)

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(headerColor())
	labelStyle := lipgloss.NewStyle().Foreground(labelColor())
	if !styled {
		plain := lipgloss.NewStyle()
		headerStyle, labelStyle = plain, plain
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("SUPPORTED LANGUAGES"))
	b.WriteString("\n")
	for _, row := range languageRows() {
		b.WriteString(fmt.Sprintf("  %-*s %s\n", languageColWidth, row[0], row[1]))
	}

	if showAliases {
		aliases := config.LanguageAliases()
		names := make([]string, 0, len(aliases))
		for alias := range aliases {
			names = append(names, alias)
		}
		sort.Strings(names)

		b.WriteString("\n")
		b.WriteString(headerStyle.Render("ALIASES"))
		b.WriteString("\n")
		for _, alias := range names {
			b.WriteString(fmt.Sprintf("  %-*s %s\n", languageColWidth, alias,
				labelStyle.Render("→ "+aliases[alias])))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
