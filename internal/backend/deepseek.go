package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/udhayakumarcp/Transaction-Processor-Agent-API/internal/pipeline"
)

// DefaultDeepSeekBaseURL is the production chat-completions endpoint root.
const DefaultDeepSeekBaseURL = "https://api.deepseek.com/v1"

// DeepSeek invokes the DeepSeek chat-completions API over plain HTTP.
// The wire format is OpenAI-compatible.
type DeepSeek struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewDeepSeek creates a DeepSeek backend with the given per-request credential.
func NewDeepSeek(apiKey string, log zerolog.Logger) *DeepSeek {
	return &DeepSeek{
		apiKey:     apiKey,
		model:      pipeline.DefaultDeepSeekModel,
		baseURL:    DefaultDeepSeekBaseURL,
		httpClient: &http.Client{},
		log:        log,
	}
}

// WithBaseURL overrides the endpoint root. Used by tests.
func (d *DeepSeek) WithBaseURL(baseURL string) *DeepSeek {
	d.baseURL = baseURL
	return d
}

// Name implements pipeline.Backend.
func (d *DeepSeek) Name() string { return string(ModelDeepSeek) }

type deepSeekRequest struct {
	Model       string            `json:"model"`
	Messages    []deepSeekMessage `json:"messages"`
	Temperature float64           `json:"temperature"`
	Stream      bool              `json:"stream"`
}

type deepSeekMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type deepSeekResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Invoke implements pipeline.Backend: one synchronous chat-completions
// call per page, returning the first choice's message content.
func (d *DeepSeek) Invoke(ctx context.Context, prompt string) (string, error) {
	start := time.Now()

	body, err := json.Marshal(deepSeekRequest{
		Model:       d.model,
		Messages:    []deepSeekMessage{{Role: "user", Content: prompt}},
		Temperature: 0,
		Stream:      false,
	})
	if err != nil {
		return "", &pipeline.BackendInvocationError{Backend: d.Name(), Err: fmt.Errorf("marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", &pipeline.BackendInvocationError{Backend: d.Name(), Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+d.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", &pipeline.BackendInvocationError{Backend: d.Name(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &pipeline.BackendInvocationError{Backend: d.Name(), Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &pipeline.BackendInvocationError{
			Backend: d.Name(),
			Err:     fmt.Errorf("status %d: %s", resp.StatusCode, truncateBody(raw)),
		}
	}

	var cc deepSeekResponse
	if err := json.Unmarshal(raw, &cc); err != nil {
		return "", &pipeline.BackendInvocationError{Backend: d.Name(), Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(cc.Choices) == 0 {
		return "", &pipeline.BackendInvocationError{Backend: d.Name(), Err: fmt.Errorf("no choices in response")}
	}

	content := cc.Choices[0].Message.Content

	d.log.Debug().
		Str("model", d.model).
		Int("prompt_len", len(prompt)).
		Int("response_len", len(content)).
		Dur("elapsed", time.Since(start)).
		Msg("DeepSeek call completed")

	return content, nil
}

func truncateBody(b []byte) string {
	const max = 512
	if len(b) > max {
		return string(b[:max]) + "…"
	}
	return string(b)
}
