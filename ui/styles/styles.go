package styles

import "github.com/charmbracelet/lipgloss"

const (
	Primary = lipgloss.Color("42")  // emerald
	Amber   = lipgloss.Color("214")
	Danger  = lipgloss.Color("196")
	Muted   = lipgloss.Color("241")
	Accent  = lipgloss.Color("62")
	Track   = lipgloss.Color("237")
)

func TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true).
		Padding(0, 1)
}

func HeadlineStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1)
}

func SubtleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(Muted).
		Padding(0, 1)
}

func InputStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Accent).
		Padding(0, 1).
		Width(max(10, width-4))
}

func StatusStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(Muted).
		Background(lipgloss.Color("235")).
		Padding(0, 1).
		Width(width)
}

// CardStyle frames one section of the result view.
func CardStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("238")).
		Padding(0, 1).
		Width(max(20, width-4))
}

func SectionTitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(Muted).
		Bold(true)
}

func NoticeStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(Amber).
		Padding(0, 1)
}

func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(Danger).
		Bold(true).
		Padding(0, 1)
}

// BadgeStyle is a small inverted label, e.g. an item's accuracy.
func BadgeStyle(color lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(color).
		Padding(0, 1)
}

func BarStyle(color lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(color)
}

func TrackStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Track)
}

func CaloriesStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)
}

func ButtonStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(Primary).
		Bold(true).
		Padding(0, 2)
}
