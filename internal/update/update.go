package update

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/NutriVision/internal/eventbus"
	"github.com/Rorical/NutriVision/internal/imageinput"
	"github.com/Rorical/NutriVision/internal/models"
)

func HandleUpdateWithEventBus(appModel *models.AppModel, msg tea.Msg, eb *eventbus.EventBus, loader *imageinput.Loader) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return HandleKeyMsgWithEventBus(appModel, msg, eb, loader)
	case tea.WindowSizeMsg:
		HandleWindowSizeMsg(appModel, msg)
		return nil
	case ImageLoadedMsg:
		return HandleImageLoaded(appModel, msg, eb)
	case CoreEventMsg:
		return HandleCoreEvent(appModel, msg)
	case spinner.TickMsg:
		return HandleSpinnerTick(appModel, msg)
	}
	return nil
}
