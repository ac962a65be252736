// Package report renders progress results for the terminal.
package report

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wreckdiver/internal/game"
	"github.com/abhisek/wreckdiver/internal/progress"
)

// Ocean palette.
var (
	deep    = lipgloss.Color("#0EA5E9") // Sky Blue
	kelp    = lipgloss.Color("#10B981") // Emerald
	coral   = lipgloss.Color("#FB7185") // Coral
	sand    = lipgloss.Color("#FDE68A") // Sand
	text    = lipgloss.Color("#F8FAFC") // White
	textDim = lipgloss.Color("#94A3B8") // Slate
	seabed  = lipgloss.Color("#334155") // Slate (bar background)
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(deep)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(sand)
	labelStyle   = lipgloss.NewStyle().Foreground(text)
	dimStyle     = lipgloss.NewStyle().Foreground(textDim)
	goodStyle    = lipgloss.NewStyle().Foreground(kelp)
	badStyle     = lipgloss.NewStyle().Foreground(coral)
)

// barWidth is the character width of rendered progress bars.
const barWidth = 30

// Bar renders a horizontal progress bar for a 0-1 ratio.
func Bar(ratio float64) string {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(float64(barWidth) * ratio)
	empty := barWidth - filled

	return lipgloss.NewStyle().Background(deep).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(seabed).Render(strings.Repeat(" ", empty))
}

// Render formats a full progress result.
func Render(res *progress.Result) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Dive Log — Training Progress"))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render(fmt.Sprintf("Overall completion  %s %3d%%", Bar(float64(res.OverallCompletion)/100), res.OverallCompletion)))
	b.WriteString("\n")
	if res.CertificationStatus == progress.CertEligible {
		b.WriteString(goodStyle.Render("Certification: eligible — apply for issuance"))
	} else {
		b.WriteString(dimStyle.Render("Certification: not eligible yet"))
	}
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Mini-games"))
	b.WriteString("\n")

	nameWidth := 0
	for _, t := range game.AllTypes {
		if w := len(t.Display()); w > nameWidth {
			nameWidth = w
		}
	}
	for _, t := range game.AllTypes {
		gp := res.GameProgress[t]
		ratio := 0.0
		if gp.TotalLevels > 0 {
			ratio = float64(gp.CompletedLevels) / float64(gp.TotalLevels)
		}
		line := fmt.Sprintf("%-*s  %s  %d/%d levels", nameWidth, t.Display(), Bar(ratio), gp.CompletedLevels, gp.TotalLevels)
		b.WriteString(labelStyle.Render(line))
		b.WriteString(dimStyle.Render(fmt.Sprintf("  best %d  avg %d  %s", gp.BestScore, gp.AverageScore, formatMinutes(gp.TimeSpentMinutes))))
		b.WriteString("\n")
	}

	if len(res.NewAchievements) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("New achievements"))
		b.WriteString("\n")
		for _, a := range res.NewAchievements {
			b.WriteString(goodStyle.Render("  ★ " + a.Name))
			b.WriteString(dimStyle.Render(" — " + a.Description))
			b.WriteString("\n")
		}
	}

	if len(res.Recommendations) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("Recommendations"))
		b.WriteString("\n")
		for _, r := range res.Recommendations {
			b.WriteString(labelStyle.Render("  • " + r))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// RenderEligibility formats the certification guidance view.
func RenderEligibility(status progress.EligibilityStatus) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Certification Readiness"))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("Readiness  %s %3d%%", Bar(float64(status.CompletionPercentage)/100), status.CompletionPercentage)))
	b.WriteString("\n")

	if status.IsEligible {
		b.WriteString(goodStyle.Render("All requirements met — ready for certification"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(badStyle.Render("Missing requirements:"))
	b.WriteString("\n")
	for _, m := range status.MissingRequirements {
		b.WriteString(labelStyle.Render("  • " + m))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("Estimated remaining effort: %s", formatMinutes(status.EstimatedMinutes))))
	b.WriteString("\n")
	return b.String()
}

func formatMinutes(min int) string {
	if min >= 60 {
		return fmt.Sprintf("%dh%02dm", min/60, min%60)
	}
	return fmt.Sprintf("%dm", min)
}
