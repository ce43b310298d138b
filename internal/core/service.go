package core

import (
	"context"
	"errors"
	"sync"

	"github.com/apex/log"

	"github.com/Rorical/NutriVision/internal/analysis"
	"github.com/Rorical/NutriVision/internal/eventbus"
	"github.com/Rorical/NutriVision/internal/locale"
	"github.com/Rorical/NutriVision/internal/models"
	"github.com/Rorical/NutriVision/internal/nutrition"
)

// AnalysisService drives the Machine from UI events and runs the analysis
// for each accepted submission in its own goroutine.
type AnalysisService struct {
	analyzer analysis.Analyzer
	machine  *Machine
	eventBus *eventbus.EventBus
	locale   locale.Locale
	log      log.Interface
	ctx      context.Context
	cancel   context.CancelFunc
	pushMu   sync.Mutex // keeps snapshots reaching the UI in revision order
	loop     sync.WaitGroup
	inflight sync.WaitGroup
}

// NewAnalysisService creates the service. analyzer may be nil when no
// credentials are configured; submissions then fail immediately.
func NewAnalysisService(analyzer analysis.Analyzer, eb *eventbus.EventBus, loc locale.Locale, logger log.Interface) *AnalysisService {
	ctx, cancel := context.WithCancel(context.Background())
	return &AnalysisService{
		analyzer: analyzer,
		machine:  NewMachine(loc.AnalysisFail),
		eventBus: eb,
		locale:   loc,
		log:      logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start runs the event loop in a goroutine
func (s *AnalysisService) Start() {
	// Send initial state to UI immediately
	s.pushStateToUI()
	s.loop.Add(1)
	go s.eventLoop()
}

// Stop cancels outstanding calls and waits for the event loop and every
// analysis goroutine to return. Nothing is sent on the bus afterwards, so
// the bus may be closed once Stop returns.
func (s *AnalysisService) Stop() {
	s.cancel()
	s.loop.Wait()
	s.inflight.Wait()
}

// IsReady reports whether analyses can reach a model.
func (s *AnalysisService) IsReady() bool {
	return s.analyzer != nil
}

// Snapshot returns the machine's current state.
func (s *AnalysisService) Snapshot() models.Snapshot {
	return s.machine.Snapshot()
}

func (s *AnalysisService) eventLoop() {
	defer s.loop.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-s.eventBus.UIToCore():
			if !ok {
				return
			}
			s.handleUIEvent(event)
		}
	}
}

func (s *AnalysisService) handleUIEvent(event eventbus.UIEvent) {
	// Events still queued at shutdown are dropped.
	if s.ctx.Err() != nil {
		return
	}
	switch e := event.(type) {
	case eventbus.SubmitImageEvent:
		if err := s.Submit(e.Image); err != nil && errors.Is(err, ErrBusy) {
			s.notify(s.locale.Busy)
		}
	case eventbus.ResetEvent:
		s.Reset()
	}
}

// Submit starts analyzing image. It returns ErrBusy while another analysis
// is in flight and ErrNoImage for an empty image.
func (s *AnalysisService) Submit(image nutrition.MealImage) error {
	generation, err := s.machine.Submit(image)
	if err != nil {
		s.log.WithError(err).Warn("submit rejected")
		return err
	}
	s.log.WithFields(log.Fields{
		"generation": generation,
		"mime_type":  image.MIMEType,
		"bytes":      len(image.Data),
	}).Info("analysis started")
	s.pushStateToUI()

	s.inflight.Add(1)
	go s.run(generation, image)
	return nil
}

// Reset returns the machine to Idle.
func (s *AnalysisService) Reset() {
	s.machine.Reset()
	s.log.Debug("state reset")
	s.pushStateToUI()
}

func (s *AnalysisService) run(generation uint64, image nutrition.MealImage) {
	defer s.inflight.Done()

	entry := s.log.WithField("generation", generation)

	var (
		result *nutrition.AnalysisResult
		err    error
	)
	if s.analyzer == nil {
		err = &analysis.Error{Kind: analysis.KindTransport, Err: errors.New("no API key configured")}
	} else {
		result, err = s.analyzer.Analyze(s.ctx, image)
	}

	var applied bool
	if err != nil {
		kind, _ := analysis.KindOf(err)
		entry = entry.WithField("kind", kind.String()).WithError(err)
		applied = s.machine.Fail(generation)
	} else {
		applied = s.machine.Succeed(generation, result)
	}

	if !applied {
		entry.Info("discarding stale analysis completion")
		return
	}
	if err != nil {
		entry.Error("analysis failed")
	} else {
		entry.Info("analysis finished")
	}
	s.pushOutcomeToUI()
}

func (s *AnalysisService) notify(message string) {
	if err := s.eventBus.SendToUI(eventbus.NoticeEvent{Message: message}); err != nil {
		s.log.WithError(err).Warn("dropping notice for UI")
	}
}

// pushStateToUI sends the current snapshot without blocking. It follows a
// user action, so a dropped update is superseded by the outcome push.
func (s *AnalysisService) pushStateToUI() {
	s.pushMu.Lock()
	defer s.pushMu.Unlock()

	snapshot := s.machine.Snapshot()
	if err := s.eventBus.SendToUI(eventbus.StateUpdateEvent{Snapshot: snapshot}); err != nil {
		s.log.WithError(err).WithField("phase", models.PhaseName(snapshot.State)).Warn("dropping state update for UI")
	}
}

// pushOutcomeToUI delivers the Result or Failed snapshot. Nothing follows it
// until the user acts, so it waits for buffer space until shutdown.
func (s *AnalysisService) pushOutcomeToUI() {
	s.pushMu.Lock()
	defer s.pushMu.Unlock()

	snapshot := s.machine.Snapshot()
	if err := s.eventBus.SendToUIContext(s.ctx, eventbus.StateUpdateEvent{Snapshot: snapshot}); err != nil {
		s.log.WithError(err).WithField("phase", models.PhaseName(snapshot.State)).Warn("dropping state update for UI")
	}
}
