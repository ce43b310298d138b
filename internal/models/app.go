package models

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/Rorical/NutriVision/internal/locale"
)

// AppModel represents the UI state - only local UI concerns. The
// application state itself is owned by the core and mirrored in Snapshot.
type AppModel struct {
	Snapshot      Snapshot        // Last snapshot pushed by the core
	Input         textinput.Model // Image path field
	Spinner       spinner.Model   // Analyzing indicator
	Status        string          // Status bar text
	Notice        string          // One-off message (rejected file, busy)
	LoadingImage  bool            // Image file is being read and prepared
	ShowReasoning bool            // Reasoning panel expanded
	Width         int             // Terminal width
	Height        int             // Terminal height
	ServiceReady  bool            // Whether an API key is configured
	Locale        locale.Locale
}

// NewAppModel returns the initial UI state.
func NewAppModel(loc locale.Locale, ready bool) AppModel {
	input := textinput.New()
	input.Placeholder = loc.InputHint
	input.Prompt = "› "
	input.CharLimit = 4096
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return AppModel{
		Snapshot:     Snapshot{State: Idle{}},
		Input:        input,
		Spinner:      spin,
		Status:       loc.StatusReady,
		ServiceReady: ready,
		Locale:       loc,
	}
}
