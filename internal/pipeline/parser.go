package pipeline

import (
	"strings"
)

// ParseTransactions turns raw model output into transaction records.
//
// A blank response yields an empty slice and no error: a statement page
// with no transactions is indistinguishable from a model that returned
// nothing, and we treat both as "zero transactions found". Code fences
// around the JSON (which the model is told not to emit but sometimes
// does anyway) are stripped before parsing. Anything that then fails to
// parse or validate as an array of transaction objects is a
// *ModelResponseFormatError.
func ParseTransactions(raw string) ([]Transaction, error) {
	if strings.TrimSpace(raw) == "" {
		return []Transaction{}, nil
	}

	clean := cleanModelJSON(raw)

	objs, err := decodeTransactionsJSON(clean)
	if err != nil {
		return nil, err
	}

	txs := make([]Transaction, 0, len(objs))
	for _, obj := range objs {
		txs = append(txs, Transaction{
			Date:        stringField(obj, "Date"),
			Description: stringField(obj, "Description"),
			Deposits:    amountField(obj, "Deposits_Credits"),
			Withdrawals: amountField(obj, "Withdrawals_Debits"),
			Vendor:      stringField(obj, "Vendor Name"),
		})
	}
	return txs, nil
}

// cleanModelJSON strips Markdown code fences and surrounding prose from
// model output, keeping only the JSON array.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	// Handle ```json ... ``` or ``` ... ``` wrappers.
	if strings.HasPrefix(s, "```") {
		// Drop the first line (``` or ```json).
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			// Single-line fence: ```json[...]```.
			s = strings.TrimPrefix(s, "```json")
			s = strings.TrimPrefix(s, "```")
		}
		s = strings.TrimSpace(s)
	}

	// Remove trailing ``` if present.
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	// If there is still junk around the JSON array, keep only from the
	// first '[' to the last ']'.
	if start := strings.Index(s, "["); start != -1 {
		if end := strings.LastIndex(s, "]"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}

func stringField(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// amountField normalizes the numeric fields: a missing, null or
// non-numeric value becomes 0 so the output never carries null amounts.
func amountField(m map[string]interface{}, key string) float64 {
	if v, ok := m[key].(float64); ok {
		return v
	}
	return 0
}
