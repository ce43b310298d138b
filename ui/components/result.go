package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/NutriVision/internal/locale"
	"github.com/Rorical/NutriVision/internal/nutrition"
	"github.com/Rorical/NutriVision/ui/styles"
)

const (
	barWidth      = 24
	breakdownBars = 16
)

// ConfidenceLabel buckets an item's confidence score: high above 0.8,
// medium above 0.5, low otherwise.
func ConfidenceLabel(loc locale.Locale, score float64) string {
	switch {
	case score > 0.8:
		return loc.HighAccuracy
	case score > 0.5:
		return loc.MediumAccuracy
	default:
		return loc.LowAccuracy
	}
}

func confidenceColor(score float64) lipgloss.Color {
	switch {
	case score > 0.8:
		return styles.Primary
	case score > 0.5:
		return styles.Amber
	default:
		return styles.Danger
	}
}

// OverallColor is green above 0.7 and amber otherwise.
func OverallColor(score float64) lipgloss.Color {
	if score > 0.7 {
		return styles.Primary
	}
	return styles.Amber
}

// Percent renders a 0..1 score as a whole percentage. Values outside the
// range are shown as they are.
func Percent(score float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(score*100)))
}

// Kcal formats an energy amount without decimals.
func Kcal(v float64) string {
	return fmt.Sprintf("%.0f kcal", v)
}

// Bar draws a fraction in [0,1] as width cells. Out-of-range fractions are
// drawn clamped.
func Bar(fraction float64, width int, color lipgloss.Color) string {
	filled := int(math.Round(math.Max(0, math.Min(1, fraction)) * float64(width)))
	return styles.BarStyle(color).Render(strings.Repeat("█", filled)) +
		styles.TrackStyle().Render(strings.Repeat("░", width-filled))
}

// RenderResult draws a finished analysis.
func RenderResult(loc locale.Locale, result *nutrition.AnalysisResult, showReasoning bool, width int) string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle().Render(loc.Title) + "\n\n")
	b.WriteString(renderSummary(loc, result, width) + "\n")
	if len(result.FoodItems) > 0 {
		b.WriteString(renderBreakdown(loc, result, width) + "\n")
	}
	b.WriteString(renderItems(loc, result.FoodItems, width) + "\n")
	if len(result.UncertaintyFactors) > 0 {
		b.WriteString(renderList(loc.AttentionPoints, "!", styles.Amber, result.UncertaintyFactors, width) + "\n")
	}
	if len(result.HealthTips) > 0 {
		b.WriteString(renderList(loc.NutritionTips, "✓", styles.Primary, result.HealthTips, width) + "\n")
	}
	b.WriteString(renderReasoning(loc, result.StepByStepReasoning, showReasoning, width) + "\n")

	return b.String()
}

func renderSummary(loc locale.Locale, result *nutrition.AnalysisResult, width int) string {
	color := OverallColor(result.OverallConfidence)
	lines := []string{
		styles.SectionTitleStyle().Render(loc.TotalEnergy),
		styles.CaloriesStyle().Render(Kcal(result.TotalCalories)),
		"",
		fmt.Sprintf("%s  %s %s",
			loc.VisualAccuracy,
			Bar(result.OverallConfidence, barWidth, color),
			styles.BarStyle(color).Render(Percent(result.OverallConfidence))),
	}
	return styles.CardStyle(width).Render(strings.Join(lines, "\n"))
}

func renderBreakdown(loc locale.Locale, result *nutrition.AnalysisResult, width int) string {
	nameWidth := 0
	for _, item := range result.FoodItems {
		nameWidth = max(nameWidth, lipgloss.Width(item.Name))
	}
	nameWidth = min(nameWidth, 24)

	lines := []string{
		fmt.Sprintf("%s  (%d %s)",
			styles.SectionTitleStyle().Render(loc.Breakdown),
			len(result.FoodItems), strings.ToLower(loc.Items)),
	}
	for _, item := range result.FoodItems {
		share := 0.0
		if result.TotalCalories > 0 {
			share = item.Calories / result.TotalCalories
		}
		name := truncate(item.Name, nameWidth)
		lines = append(lines, fmt.Sprintf("%-*s  %s %s",
			nameWidth, name,
			Bar(share, breakdownBars, styles.Primary),
			Kcal(item.Calories)))
	}
	return styles.CardStyle(width).Render(strings.Join(lines, "\n"))
}

func renderItems(loc locale.Locale, items []nutrition.FoodItem, width int) string {
	lines := []string{styles.SectionTitleStyle().Render(loc.DetectedItems)}
	for _, item := range items {
		badge := styles.BadgeStyle(confidenceColor(item.ConfidenceScore)).
			Render(ConfidenceLabel(loc, item.ConfidenceScore))
		lines = append(lines,
			"",
			fmt.Sprintf("%s  %s  %s",
				styles.HeadlineStyle().UnsetPadding().Render(item.Name),
				styles.CaloriesStyle().Render(Kcal(item.Calories)),
				badge),
			styles.SubtleStyle().UnsetPadding().Render(item.PortionEstimate))
		if m := item.Macronutrients; m != nil {
			lines = append(lines, fmt.Sprintf("%s %s  •  %s %s  •  %s %s",
				loc.Protein, m.Protein, loc.Carbs, m.Carbs, loc.Fat, m.Fat))
		}
	}
	return styles.CardStyle(width).Render(strings.Join(lines, "\n"))
}

func renderList(title, bullet string, color lipgloss.Color, entries []string, width int) string {
	lines := []string{styles.SectionTitleStyle().Render(title)}
	for _, entry := range entries {
		lines = append(lines, styles.BarStyle(color).Render(bullet)+" "+entry)
	}
	return styles.CardStyle(width).Render(strings.Join(lines, "\n"))
}

func renderReasoning(loc locale.Locale, steps []string, expanded bool, width int) string {
	if !expanded {
		return styles.SubtleStyle().Render("▸ " + loc.ShowReasoning)
	}
	lines := []string{styles.SectionTitleStyle().Render("▾ " + loc.HideReasoning)}
	for i, step := range steps {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, step))
	}
	return styles.CardStyle(width).Render(strings.Join(lines, "\n"))
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
