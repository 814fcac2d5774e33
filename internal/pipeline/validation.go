package pipeline

import (
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// transactionsSchema constrains the SHAPE of model output, not its
// values: a top-level array of objects whose known keys carry the right
// JSON types. Dates and vendor names are deliberately left unvalidated
// (the model may deviate from its instructions and we pass those fields
// through verbatim), and the amount fields accept null because the model
// frequently emits null for the unused side of a transaction.
const transactionsSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"properties": {
			"Date":               {"type": "string"},
			"Description":        {"type": "string"},
			"Deposits_Credits":   {"type": ["number", "null"]},
			"Withdrawals_Debits": {"type": ["number", "null"]},
			"Vendor Name":        {"type": "string"}
		}
	}
}`

var transactionsSchemaCompiled = jsonschema.MustCompileString("transactions.json", transactionsSchema)

// validateTransactionsJSON checks decoded model output against the
// transactions schema. The input must already be the result of a
// successful json.Unmarshal into interface{}.
func validateTransactionsJSON(v interface{}) error {
	return transactionsSchemaCompiled.Validate(v)
}

// decodeTransactionsJSON parses cleaned model output and validates its
// shape before any field coercion happens.
func decodeTransactionsJSON(clean string) ([]map[string]interface{}, error) {
	var v interface{}
	if err := json.Unmarshal([]byte(clean), &v); err != nil {
		return nil, &ModelResponseFormatError{
			Reason: "not valid JSON: " + err.Error(),
			Raw:    truncateRaw(clean),
		}
	}

	if err := validateTransactionsJSON(v); err != nil {
		return nil, &ModelResponseFormatError{
			Reason: "schema violation: " + err.Error(),
			Raw:    truncateRaw(clean),
		}
	}

	// The schema guarantees these assertions hold.
	arr := v.([]interface{})
	objs := make([]map[string]interface{}, len(arr))
	for i, item := range arr {
		objs[i] = item.(map[string]interface{})
	}
	return objs, nil
}
