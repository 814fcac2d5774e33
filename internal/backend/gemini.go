package backend

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/udhayakumarcp/Transaction-Processor-Agent-API/internal/pipeline"
)

// Gemini invokes Google Gemini through the GenAI SDK. Temperature is
// pinned to zero so extraction leans deterministic.
type Gemini struct {
	apiKey string
	model  string
	log    zerolog.Logger
}

// NewGemini creates a Gemini backend with the given per-request credential.
func NewGemini(apiKey string, log zerolog.Logger) *Gemini {
	return &Gemini{
		apiKey: apiKey,
		model:  pipeline.DefaultGeminiModel,
		log:    log,
	}
}

// Name implements pipeline.Backend.
func (g *Gemini) Name() string { return string(ModelGemini) }

// Invoke implements pipeline.Backend: one synchronous GenerateContent
// call per page, returning the raw text content of the response.
func (g *Gemini) Invoke(ctx context.Context, prompt string) (string, error) {
	start := time.Now()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", &pipeline.BackendInvocationError{Backend: g.Name(), Err: err}
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0),
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", &pipeline.BackendInvocationError{Backend: g.Name(), Err: err}
	}

	raw := resp.Text()

	g.log.Debug().
		Str("model", g.model).
		Int("prompt_len", len(prompt)).
		Int("response_len", len(raw)).
		Dur("elapsed", time.Since(start)).
		Msg("Gemini call completed")

	return raw, nil
}
