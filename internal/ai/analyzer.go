// Package ai talks to the external vision/OCR backend. The backend is an
// untrusted collaborator: it may time out, fail, or answer with prose around
// its JSON. Callers record failures per photo and keep going.
package ai

import (
	"context"
	"errors"
	"time"
)

// ErrBackend wraps every analyzer-side failure so callers can tag the
// photo's record and continue the batch.
var ErrBackend = errors.New("analyzer request failed")

// Analyzer sends one photo plus an instruction prompt to the vision backend
// and returns the raw reply text.
type Analyzer interface {
	Analyze(ctx context.Context, prompt string, imagePath string) (string, error)
}

// AnalyzerFunc adapts a plain function to the Analyzer interface.
type AnalyzerFunc func(ctx context.Context, prompt string, imagePath string) (string, error)

func (f AnalyzerFunc) Analyze(ctx context.Context, prompt string, imagePath string) (string, error) {
	return f(ctx, prompt, imagePath)
}

// Config holds backend settings.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
	Retry   RetryConfig
}

// NewConfig returns backend defaults; the API key must be supplied by the
// caller.
func NewConfig() Config {
	return Config{
		Model:   defaultModel,
		BaseURL: defaultBaseURL,
		Timeout: 60 * time.Second,
		Retry:   DefaultRetryConfig(),
	}
}
