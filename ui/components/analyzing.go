package components

import (
	"strings"

	"github.com/Rorical/NutriVision/internal/locale"
	"github.com/Rorical/NutriVision/ui/styles"
)

// RenderAnalyzing draws the progress screen. spinner is the already
// rendered spinner frame.
func RenderAnalyzing(loc locale.Locale, spinner string, width int) string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle().Render(loc.Title) + "\n\n")
	b.WriteString(styles.HeadlineStyle().Render(spinner+" "+loc.AnalyzingTitle) + "\n")
	b.WriteString(styles.SubtleStyle().Render(loc.AnalyzingWait) + "\n\n")

	var steps strings.Builder
	for i, step := range loc.AnalyzingSteps {
		if i > 0 {
			steps.WriteString("\n")
		}
		steps.WriteString(styles.BarStyle(styles.Primary).Render("•") + " " + step)
	}
	b.WriteString(styles.CardStyle(width).Render(steps.String()) + "\n")

	return b.String()
}
