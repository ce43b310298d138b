package components

import (
	"strings"

	"github.com/Rorical/NutriVision/internal/locale"
	"github.com/Rorical/NutriVision/ui/styles"
)

// RenderFailure draws the error screen. Its only action is going back to
// the upload screen.
func RenderFailure(loc locale.Locale, message string, width int) string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle().Render(loc.Title) + "\n\n")
	b.WriteString(styles.ErrorStyle().Render(loc.FailureTitle) + "\n")
	b.WriteString(styles.SubtleStyle().Width(max(20, width-2)).Render(message) + "\n\n")
	b.WriteString(" " + styles.ButtonStyle().Render(loc.TryAgain) + "\n")

	return b.String()
}
