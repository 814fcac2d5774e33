// Package backend holds the model clients behind the extraction
// pipeline. Each backend implements pipeline.Backend: one prompt in, raw
// text out, with the caller's credential passed explicitly per request
// rather than held in any ambient client singleton.
package backend

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/udhayakumarcp/Transaction-Processor-Agent-API/internal/pipeline"
)

// ModelSelector identifies which AI backend to invoke. The set is
// closed; anything outside it is rejected up front instead of silently
// producing empty results.
type ModelSelector string

const (
	// ModelGemini selects Google Gemini via the GenAI SDK.
	ModelGemini ModelSelector = "Gemini"
	// ModelDeepSeek selects the DeepSeek chat-completions API.
	ModelDeepSeek ModelSelector = "DeepSeek"
)

// ErrUnsupportedModel is returned for selector values outside the closed set.
var ErrUnsupportedModel = errors.New("unsupported ai model")

// ParseModelSelector validates a form value against the closed set.
func ParseModelSelector(s string) (ModelSelector, error) {
	switch ModelSelector(s) {
	case ModelGemini:
		return ModelGemini, nil
	case ModelDeepSeek:
		return ModelDeepSeek, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedModel, s)
	}
}

// New constructs the backend for the given selector with the caller's
// credential. The credential is forwarded unmodified to the provider.
func New(model ModelSelector, apiKey string, log zerolog.Logger) (pipeline.Backend, error) {
	switch model {
	case ModelGemini:
		return NewGemini(apiKey, log), nil
	case ModelDeepSeek:
		return NewDeepSeek(apiKey, log), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedModel, model)
	}
}
