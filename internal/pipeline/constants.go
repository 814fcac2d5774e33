package pipeline

import "time"

// Default values for the extraction pipeline.
// These can be overridden via configuration or environment variables in the future.
const (
	// DefaultGeminiModel is the Gemini model used for transaction extraction.
	DefaultGeminiModel = "gemini-2.0-flash"

	// DefaultDeepSeekModel is the DeepSeek chat model used for transaction extraction.
	DefaultDeepSeekModel = "deepseek-chat"

	// DefaultCallTimeout bounds a single backend round trip so a hung
	// model call cannot block the request indefinitely.
	DefaultCallTimeout = 90 * time.Second

	// UnknownVendor is the literal the model must use for transactions
	// that match no entry in the vendor list.
	UnknownVendor = "Unknown"
)
