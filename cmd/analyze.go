package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Rorical/NutriVision/internal/core"
	"github.com/Rorical/NutriVision/internal/eventbus"
	"github.com/Rorical/NutriVision/internal/imageinput"
	"github.com/Rorical/NutriVision/internal/locale"
	"github.com/Rorical/NutriVision/internal/models"
	"github.com/Rorical/NutriVision/ui/components"
)

var analyzeJSON bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze [image]",
	Short: "Analyze one photo without the interactive UI",
	Long: `Analyze a single meal photo and print the estimate. With --json the
result is printed exactly as the model returned it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		loc := locale.Lookup(s.cfg.GetLanguage())
		if s.analyzer == nil {
			return errors.New(loc.NoAPIKey)
		}

		loader := imageinput.NewLoader(s.cfg.GetMaxDimension(), s.log)
		image, err := loader.Load(args[0])
		if errors.Is(err, imageinput.ErrNotImage) {
			return errors.New(loc.NotAnImage)
		}
		if err != nil {
			return err
		}

		eb := eventbus.NewEventBus()
		service := core.NewAnalysisService(s.analyzer, eb, loc, s.log)
		service.Start()
		defer func() {
			service.Stop()
			eb.Close()
		}()

		if err := service.Submit(image); err != nil {
			return err
		}

		snapshot, err := awaitOutcome(cmd.Context(), eb)
		if err != nil {
			service.Reset()
			return err
		}

		switch state := snapshot.State.(type) {
		case models.Result:
			if analyzeJSON {
				return writeJSON(cmd.OutOrStdout(), state)
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), components.RenderResult(loc, state.Result, true, 80))
			return err
		case models.Failed:
			return errors.New(state.Message)
		}
		return fmt.Errorf("unexpected state %s", models.PhaseName(snapshot.State))
	},
}

// awaitOutcome drains state updates until the analysis finishes.
func awaitOutcome(ctx context.Context, eb *eventbus.EventBus) (models.Snapshot, error) {
	for {
		select {
		case <-ctx.Done():
			return models.Snapshot{}, ctx.Err()
		case event, ok := <-eb.CoreToUI():
			if !ok {
				return models.Snapshot{}, errors.New("event bus closed")
			}
			update, isState := event.(eventbus.StateUpdateEvent)
			if !isState {
				continue
			}
			switch update.Snapshot.State.(type) {
			case models.Result, models.Failed:
				return update.Snapshot, nil
			}
		}
	}
}

func writeJSON(w io.Writer, state models.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(state.Result)
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the raw result as JSON")
	rootCmd.AddCommand(analyzeCmd)
}
