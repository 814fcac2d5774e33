package pipeline

import (
	"github.com/shopspring/decimal"
)

// Document is one uploaded file: a bank statement PDF or the vendor
// reference sheet. The bytes are fully read at the request boundary.
type Document struct {
	Filename string
	Data     []byte
}

// PageText is the text layer of one statement page. Pages without
// extractable text are never represented; Number is the true 1-indexed
// position in the document.
type PageText struct {
	Number int
	Text   string
}

// Transaction is one structured transaction as extracted by the model.
// The JSON keys match the output contract given to the model verbatim;
// Date and Description are carried through exactly as the model emitted
// them, only the two amount fields are normalized (missing/null -> 0).
type Transaction struct {
	Date        string  `json:"Date"`
	Description string  `json:"Description"`
	Deposits    float64 `json:"Deposits_Credits"`
	Withdrawals float64 `json:"Withdrawals_Debits"`
	Vendor      string  `json:"Vendor Name"`
}

// PageFailure records a page or document that could not be processed.
// Page is 0 for document-level failures (e.g. a corrupt PDF container).
type PageFailure struct {
	Document string `json:"document"`
	Page     int    `json:"page,omitempty"`
	Error    string `json:"error"`
}

// BatchSummary aggregates counts and amount totals over the whole batch.
// Totals are summed with decimal arithmetic so they survive JSON
// round-trips without float drift.
type BatchSummary struct {
	Documents        int             `json:"documents"`
	Pages            int             `json:"pages"`
	Transactions     int             `json:"transactions"`
	TotalDeposits    decimal.Decimal `json:"total_deposits"`
	TotalWithdrawals decimal.Decimal `json:"total_withdrawals"`
}

// BatchResult is the outcome of one extraction run. Transactions are
// ordered by document, then page, then the order the model emitted them.
// Failures lists pages/documents that were skipped; successful pages are
// never discarded because a later page failed.
type BatchResult struct {
	Transactions []Transaction `json:"transactions"`
	Failures     []PageFailure `json:"failures"`
	Summary      BatchSummary  `json:"summary"`
}
