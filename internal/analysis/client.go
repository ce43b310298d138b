// Package analysis performs the single request/response exchange with the
// external model and turns its reply into a typed nutrition estimate.
package analysis

import (
	"context"
	"strings"

	"github.com/apex/log"
	"github.com/google/uuid"

	"github.com/Rorical/NutriVision/internal/nutrition"
)

// Transport sends one analysis request to a model and returns the raw
// structured text it replied with.
type Transport interface {
	Request(ctx context.Context, req nutrition.AnalysisRequest) (string, error)
}

// Analyzer is what the application core depends on.
type Analyzer interface {
	Analyze(ctx context.Context, image nutrition.MealImage) (*nutrition.AnalysisResult, error)
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithLanguage sets the language the model is asked to write in.
func WithLanguage(language string) ClientOption {
	return func(c *Client) { c.language = language }
}

// WithTemperature overrides the sampling temperature.
func WithTemperature(t float32) ClientOption {
	return func(c *Client) { c.temperature = t }
}

// WithClamping makes Analyze return Sanitized results instead of the raw
// values the model produced.
func WithClamping(enabled bool) ClientOption {
	return func(c *Client) { c.clamp = enabled }
}

// Client analyzes meal photos through a Transport. One call to Analyze is
// one outbound request: there is no retry and no caching.
type Client struct {
	transport   Transport
	language    string
	temperature float32
	clamp       bool
	log         log.Interface
}

// NewClient creates a Client on top of transport.
func NewClient(transport Transport, logger log.Interface, opts ...ClientOption) *Client {
	c := &Client{
		transport:   transport,
		language:    "English",
		temperature: nutrition.DefaultTemperature,
		log:         logger,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Analyze sends image to the model and decodes its reply. Failures are
// returned as *Error with the matching Kind.
func (c *Client) Analyze(ctx context.Context, image nutrition.MealImage) (*nutrition.AnalysisResult, error) {
	req := nutrition.NewAnalysisRequest(image, c.language)
	req.Temperature = c.temperature

	entry := c.log.WithFields(log.Fields{
		"request_id": uuid.NewString(),
		"mime_type":  image.MIMEType,
		"bytes":      len(image.Data),
		"schema":     nutrition.SchemaVersion,
	})
	entry.Debug("analysis: sending request")

	text, err := c.transport.Request(ctx, req)
	if err != nil {
		return nil, c.fail(entry, KindTransport, err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, c.fail(entry, KindEmptyResponse, nil)
	}

	result, err := nutrition.DecodeResult(text)
	if err != nil {
		return nil, c.fail(entry, KindMalformedResponse, err)
	}

	entry.WithFields(log.Fields{
		"items":          len(result.FoodItems),
		"total_calories": result.TotalCalories,
		"confidence":     result.OverallConfidence,
	}).Info("analysis: completed")

	if c.clamp {
		return result.Sanitized(), nil
	}
	return result, nil
}

func (c *Client) fail(entry *log.Entry, kind Kind, cause error) error {
	err := &Error{Kind: kind, Err: cause}
	entry.WithField("kind", kind.String()).WithError(err).Error("analysis: failed")
	return err
}
