package components

import (
	"strings"

	"github.com/Rorical/NutriVision/internal/locale"
	"github.com/Rorical/NutriVision/ui/styles"
)

// RenderIdle draws the upload screen around the rendered path input.
func RenderIdle(loc locale.Locale, input, notice string, loading bool, width int) string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle().Render(loc.Title) + "\n\n")
	b.WriteString(styles.HeadlineStyle().Render(loc.Headline) + "\n")
	b.WriteString(styles.SubtleStyle().Width(max(20, width-2)).Render(loc.Subtitle) + "\n\n")

	b.WriteString(styles.SubtleStyle().Render(loc.InputLabel) + "\n")
	b.WriteString(styles.InputStyle(width).Render(input) + "\n")
	b.WriteString(styles.SubtleStyle().Render(loc.Formats) + "\n")

	if loading {
		b.WriteString("\n" + styles.SubtleStyle().Render(loc.LoadingImageHint+"...") + "\n")
	}
	if notice != "" {
		b.WriteString("\n" + styles.NoticeStyle().Render(notice) + "\n")
	}

	return b.String()
}
