package app

import (
	"github.com/apex/log"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/NutriVision/internal/analysis"
	"github.com/Rorical/NutriVision/internal/config"
	"github.com/Rorical/NutriVision/internal/core"
	"github.com/Rorical/NutriVision/internal/dispatcher"
	"github.com/Rorical/NutriVision/internal/eventbus"
	"github.com/Rorical/NutriVision/internal/imageinput"
	"github.com/Rorical/NutriVision/internal/locale"
	"github.com/Rorical/NutriVision/internal/models"
)

// Application manages the complete application lifecycle
type Application struct {
	config     *config.Config
	eventBus   *eventbus.EventBus
	dispatcher *dispatcher.EventDispatcher
	service    *core.AnalysisService
	model      *AppModel
	log        log.Interface
}

// NewApplication wires the core and the UI. analyzer may be nil when no API
// key is configured; the UI then refuses to submit. initialImage, when set,
// is loaded and submitted as soon as the program starts.
func NewApplication(cfg *config.Config, analyzer analysis.Analyzer, logger log.Interface, initialImage string) *Application {
	loc := locale.Lookup(cfg.GetLanguage())

	eb := eventbus.NewEventBus()
	eb.SetErrorCallback(func(err eventbus.EventBusError) {
		logger.WithError(err.Err).WithField("operation", err.Operation).Warn("event dropped")
	})

	disp := dispatcher.NewEventDispatcher(eb)
	service := core.NewAnalysisService(analyzer, eb, loc, logger)

	model := &AppModel{
		appModel:     models.NewAppModel(loc, service.IsReady()),
		dispatcher:   disp,
		loader:       imageinput.NewLoader(cfg.GetMaxDimension(), logger),
		initialImage: initialImage,
	}

	return &Application{
		config:     cfg,
		eventBus:   eb,
		dispatcher: disp,
		service:    service,
		model:      model,
		log:        logger,
	}
}

func (app *Application) Start() error {
	app.service.Start()
	app.log.WithField("ready", app.service.IsReady()).Info("application started")

	p := tea.NewProgram(app.model)
	_, err := p.Run()

	return err
}

// Stop shuts the core down before closing the bus so that no in-flight
// analysis sends on a closed channel.
func (app *Application) Stop() {
	app.service.Stop()
	app.dispatcher.Stop()
	app.eventBus.Close()
	app.log.Info("application stopped")
}
