package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Config carries the collaborators an Extractor needs. Backend is
// constructed per request (it holds the caller's credential), the rest
// are stateless and shared.
type Config struct {
	Backend Backend
	Pages   PageExtractor
	Vendors VendorLoader
	Logger  zerolog.Logger

	// CallTimeout bounds each backend invocation. Zero means
	// DefaultCallTimeout.
	CallTimeout time.Duration
}

// Extractor runs the document-to-transactions pipeline for one request.
// It owns no shared mutable state: vendor list, page buffers and the
// accumulated result belong to a single Run call.
type Extractor struct {
	backend     Backend
	pages       PageExtractor
	vendors     VendorLoader
	log         zerolog.Logger
	callTimeout time.Duration
}

// New creates an Extractor from the given configuration.
func New(cfg Config) *Extractor {
	timeout := cfg.CallTimeout
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	return &Extractor{
		backend:     cfg.Backend,
		pages:       cfg.Pages,
		vendors:     cfg.Vendors,
		log:         cfg.Logger,
		callTimeout: timeout,
	}
}

// Run processes a batch of statement documents against one vendor file.
//
// Documents and pages are processed strictly one at a time, in input
// order, so the record order in the result is deterministic: document
// order, then page order, then the order the model emitted records for
// that page.
//
// A corrupt document or a failed page does not abort the batch: the
// failure is recorded in the result and processing continues, so one bad
// page cannot discard already-successful output. Only a vendor file that
// cannot be loaded fails the whole run, since every page depends on it.
func (e *Extractor) Run(ctx context.Context, statements []Document, vendorFile Document) (*BatchResult, error) {
	// 1. Load the vendor list once; it is shared read-only across all
	// pages and documents in this request.
	vendors, err := e.vendors.Load(vendorFile.Filename, vendorFile.Data)
	if err != nil {
		return nil, err
	}

	e.log.Info().
		Int("documents", len(statements)).
		Int("vendors", len(vendors)).
		Msg("Starting extraction batch")

	result := &BatchResult{
		Transactions: []Transaction{},
		Failures:     []PageFailure{},
	}
	result.Summary.Documents = len(statements)
	result.Summary.TotalDeposits = decimal.Zero
	result.Summary.TotalWithdrawals = decimal.Zero

	// 2. Iterate documents in input order.
	for _, doc := range statements {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pages, err := e.pages.ExtractPages(doc.Data)
		if err != nil {
			// Document-level failure: record and move on.
			e.log.Error().Err(err).Str("document", doc.Filename).Msg("Failed to open statement")
			result.Failures = append(result.Failures, PageFailure{
				Document: doc.Filename,
				Error:    err.Error(),
			})
			continue
		}

		// An all-image or empty document yields zero pages; that is
		// not an error, the document is simply skipped.
		if len(pages) == 0 {
			e.log.Warn().Str("document", doc.Filename).Msg("No text-bearing pages in statement")
			continue
		}

		// 3. Process each text-bearing page in page order.
		for _, page := range pages {
			txs, err := e.processPage(ctx, page, vendors)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return nil, err
				}
				e.log.Error().Err(err).
					Str("document", doc.Filename).
					Int("page", page.Number).
					Msg("Page extraction failed")
				result.Failures = append(result.Failures, PageFailure{
					Document: doc.Filename,
					Page:     page.Number,
					Error:    err.Error(),
				})
				continue
			}

			e.log.Info().
				Str("document", doc.Filename).
				Int("page", page.Number).
				Int("transactions", len(txs)).
				Msg("Page extracted")

			result.Summary.Pages++
			result.Transactions = append(result.Transactions, txs...)
		}
	}

	// 4. Fill in the summary totals.
	result.Summary.Transactions = len(result.Transactions)
	for _, tx := range result.Transactions {
		result.Summary.TotalDeposits = result.Summary.TotalDeposits.Add(decimal.NewFromFloat(tx.Deposits))
		result.Summary.TotalWithdrawals = result.Summary.TotalWithdrawals.Add(decimal.NewFromFloat(tx.Withdrawals))
	}

	e.log.Info().
		Int("transactions", result.Summary.Transactions).
		Int("failures", len(result.Failures)).
		Msg("Extraction batch completed")

	return result, nil
}

// processPage runs prompt construction, the backend call and response
// parsing for a single page. The backend call is bounded by the
// configured timeout.
func (e *Extractor) processPage(ctx context.Context, page PageText, vendors []string) ([]Transaction, error) {
	prompt := BuildExtractionPrompt(page.Text, vendors)

	callCtx, cancel := context.WithTimeout(ctx, e.callTimeout)
	defer cancel()

	raw, err := e.backend.Invoke(callCtx, prompt)
	if err != nil {
		return nil, err
	}

	return ParseTransactions(raw)
}
