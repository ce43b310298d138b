package update

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/NutriVision/internal/eventbus"
	"github.com/Rorical/NutriVision/internal/imageinput"
	"github.com/Rorical/NutriVision/internal/models"
	"github.com/Rorical/NutriVision/internal/nutrition"
)

// CoreEventMsg wraps core events for Bubble Tea
type CoreEventMsg struct {
	Event eventbus.CoreEvent
}

// ImageLoadedMsg carries the outcome of reading an image file.
type ImageLoadedMsg struct {
	Path  string
	Image nutrition.MealImage
	Err   error
}

// LoadImageCmd reads and prepares the image at path off the UI loop.
func LoadImageCmd(loader *imageinput.Loader, path string) tea.Cmd {
	return func() tea.Msg {
		img, err := loader.Load(path)
		return ImageLoadedMsg{Path: path, Image: img, Err: err}
	}
}

// HandleKeyMsgWithEventBus handles keyboard input using event bus
func HandleKeyMsgWithEventBus(appModel *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus, loader *imageinput.Loader) tea.Cmd {
	if keyMsg.String() == "ctrl+c" {
		return tea.Quit
	}

	switch appModel.Snapshot.State.(type) {
	case models.Idle:
		return handleIdleKey(appModel, keyMsg, loader)
	case models.Analyzing:
		// Busy: the only way out is dropping the analysis.
		if keyMsg.String() == "esc" {
			sendReset(appModel, eb)
		}
	case models.Result:
		switch keyMsg.String() {
		case "n", "r", "esc":
			sendReset(appModel, eb)
		case "tab", " ":
			appModel.ShowReasoning = !appModel.ShowReasoning
		case "q":
			return tea.Quit
		}
	case models.Failed:
		switch keyMsg.String() {
		case "enter", "r", "esc":
			sendReset(appModel, eb)
		case "q":
			return tea.Quit
		}
	}
	return nil
}

func handleIdleKey(appModel *models.AppModel, keyMsg tea.KeyMsg, loader *imageinput.Loader) tea.Cmd {
	switch keyMsg.String() {
	case "esc":
		return tea.Quit
	case "enter":
		path := strings.TrimSpace(appModel.Input.Value())
		if path == "" || appModel.LoadingImage {
			return nil
		}
		if !appModel.ServiceReady {
			appModel.Notice = appModel.Locale.NoAPIKey
			return nil
		}
		appModel.Notice = ""
		appModel.LoadingImage = true
		appModel.Status = appModel.Locale.LoadingImageHint
		return LoadImageCmd(loader, path)
	}

	var cmd tea.Cmd
	appModel.Input, cmd = appModel.Input.Update(keyMsg)
	return cmd
}

// HandleImageLoaded submits a loaded image to the core, or shows why the
// file was rejected.
func HandleImageLoaded(appModel *models.AppModel, msg ImageLoadedMsg, eb *eventbus.EventBus) tea.Cmd {
	appModel.LoadingImage = false
	appModel.Status = appModel.Locale.StatusReady

	if msg.Err != nil {
		if errors.Is(msg.Err, imageinput.ErrNotImage) {
			appModel.Notice = appModel.Locale.NotAnImage
		} else {
			appModel.Notice = msg.Err.Error()
		}
		return nil
	}

	if err := eb.SendToCore(eventbus.SubmitImageEvent{Image: msg.Image}); err != nil {
		appModel.Status = appModel.Locale.SendFailed + ": " + err.Error()
		return nil
	}
	appModel.Input.Reset()
	return nil
}

func sendReset(appModel *models.AppModel, eb *eventbus.EventBus) {
	if err := eb.SendToCore(eventbus.ResetEvent{}); err != nil {
		appModel.Status = appModel.Locale.SendFailed + ": " + err.Error()
	}
}

// HandleCoreEvent processes events from the core
func HandleCoreEvent(appModel *models.AppModel, coreEventMsg CoreEventMsg) tea.Cmd {
	switch event := coreEventMsg.Event.(type) {
	case eventbus.StateUpdateEvent:
		if event.Snapshot.Revision < appModel.Snapshot.Revision {
			return nil
		}
		if event.Snapshot.Revision > appModel.Snapshot.Revision {
			appModel.Notice = ""
		}
		appModel.Snapshot = event.Snapshot

		switch event.Snapshot.State.(type) {
		case models.Idle:
			appModel.Status = appModel.Locale.StatusReady
			appModel.ShowReasoning = false
			return appModel.Input.Focus()
		case models.Analyzing:
			appModel.Status = appModel.Locale.StatusAnalyzing
			return appModel.Spinner.Tick
		case models.Result:
			appModel.Status = appModel.Locale.StatusDone
		case models.Failed:
			appModel.Status = appModel.Locale.StatusFailed
		}
	case eventbus.NoticeEvent:
		appModel.Notice = event.Message
	}

	return nil
}

// HandleSpinnerTick advances the spinner while an analysis is running and
// lets the tick chain die otherwise.
func HandleSpinnerTick(appModel *models.AppModel, msg tea.Msg) tea.Cmd {
	if _, analyzing := appModel.Snapshot.State.(models.Analyzing); !analyzing {
		return nil
	}
	var cmd tea.Cmd
	appModel.Spinner, cmd = appModel.Spinner.Update(msg)
	return cmd
}

func HandleWindowSizeMsg(appModel *models.AppModel, sizeMsg tea.WindowSizeMsg) {
	appModel.Width = sizeMsg.Width
	appModel.Height = sizeMsg.Height
	appModel.Input.Width = max(10, sizeMsg.Width-8)
}
