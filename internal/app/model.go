package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/NutriVision/internal/dispatcher"
	"github.com/Rorical/NutriVision/internal/imageinput"
	"github.com/Rorical/NutriVision/internal/models"
	"github.com/Rorical/NutriVision/internal/update"
	"github.com/Rorical/NutriVision/ui/components"
)

// AppModel adapts models.AppModel to tea.Model.
type AppModel struct {
	appModel     models.AppModel
	dispatcher   *dispatcher.EventDispatcher
	loader       *imageinput.Loader
	initialImage string
}

func (m *AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.dispatcher.ListenForCoreEvents(),
		textinput.Blink,
	}
	if m.initialImage != "" {
		if m.appModel.ServiceReady {
			m.appModel.LoadingImage = true
			cmds = append(cmds, update.LoadImageCmd(m.loader, m.initialImage))
		} else {
			m.appModel.Notice = m.appModel.Locale.NoAPIKey
		}
	}
	return tea.Batch(cmds...)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle core events and continue listening
	if coreEvent, ok := msg.(update.CoreEventMsg); ok {
		cmd := update.HandleCoreEvent(&m.appModel, coreEvent)
		return m, tea.Batch(cmd, m.dispatcher.ListenForCoreEvents())
	}

	cmd := update.HandleUpdateWithEventBus(&m.appModel, msg, m.dispatcher.GetEventBus(), m.loader)
	return m, cmd
}

func (m *AppModel) View() string {
	var b strings.Builder
	a := &m.appModel
	width := a.Width
	if width == 0 {
		width = 80
	}

	hint := a.Locale.QuitHint
	switch state := a.Snapshot.State.(type) {
	case models.Idle:
		b.WriteString(components.RenderIdle(a.Locale, a.Input.View(), a.Notice, a.LoadingImage, width))
	case models.Analyzing:
		b.WriteString(components.RenderAnalyzing(a.Locale, a.Spinner.View(), width))
	case models.Result:
		b.WriteString(components.RenderResult(a.Locale, state.Result, a.ShowReasoning, width))
		hint = a.Locale.ResultKeysHint
	case models.Failed:
		b.WriteString(components.RenderFailure(a.Locale, state.Message, width))
		hint = a.Locale.FailureKeysHint
	}

	b.WriteString("\n")
	b.WriteString(components.RenderStatus(a.Status, hint, width))

	return b.String()
}
