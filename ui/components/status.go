package components

import (
	"github.com/Rorical/NutriVision/ui/styles"
)

// RenderStatus draws the bottom bar: current status on the left, key hints
// after it.
func RenderStatus(status, hint string, width int) string {
	content := status
	if hint != "" {
		content += "  •  " + hint
	}
	return styles.StatusStyle(width).Render(content)
}
