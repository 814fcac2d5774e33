package pipeline

import "context"

// Backend is the model boundary: one prompt in, raw text out. Concrete
// implementations live in internal/backend; the interface lives here so
// the pipeline can be tested with mocks.
type Backend interface {
	// Invoke sends the prompt as a single synchronous call and returns
	// the raw text content of the response.
	Invoke(ctx context.Context, prompt string) (string, error)

	// Name identifies the backend for logs and error messages.
	Name() string
}

// PageExtractor turns document bytes into the ordered text-bearing pages.
type PageExtractor interface {
	// ExtractPages returns one entry per page that has a text layer,
	// in document order, 1-indexed. A corrupt container is a
	// *DocumentFormatError.
	ExtractPages(data []byte) ([]PageText, error)
}

// VendorLoader turns the uploaded tabular file into the vendor list.
type VendorLoader interface {
	// Load returns the values of the Payee column in row order, or an
	// empty slice when the column is absent. A malformed file is a
	// *DataFormatError.
	Load(filename string, data []byte) ([]string, error)
}
