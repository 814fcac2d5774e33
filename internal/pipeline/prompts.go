package pipeline

import (
	"encoding/json"
	"strings"
)

// BuildExtractionPrompt renders one page of statement text plus the
// vendor list into the model-facing instruction. It is a pure function:
// the same inputs always produce byte-identical output, so a page can be
// retried or replayed against the backend deterministically.
//
// The contract imposed on the model:
//   - vendor names in the output come ONLY from the supplied list;
//   - unmatched transactions use the literal "Unknown";
//   - transaction descriptions are never altered;
//   - the output is a pure JSON array with exactly the keys
//     Date, Description, Deposits_Credits, Withdrawals_Debits, Vendor Name.
//
// The model may still violate any of these; the response parser defends
// against that.
func BuildExtractionPrompt(pageText string, vendors []string) string {
	if vendors == nil {
		vendors = []string{}
	}
	vendorJSON, _ := json.MarshalIndent(vendors, "", "  ")

	var b strings.Builder
	b.WriteString("Extract structured transactions from the bank statement and match them to vendors.\n\n")

	b.WriteString("**STRICT RULES:**\n")
	b.WriteString("- Use vendor names **ONLY** from this list:\n")
	b.Write(vendorJSON)
	b.WriteString("\n")
	b.WriteString("- Do **NOT** assume vendors. If no match is found, return **\"" + UnknownVendor + "\"**.\n")
	b.WriteString("- Do **NOT** modify transaction descriptions.\n")
	b.WriteString("- Return **pure JSON output** ONLY. No explanations, no additional text.\n\n")

	b.WriteString("**Statement Text:**\n")
	b.WriteString(pageText)
	b.WriteString("\n\n")

	b.WriteString("**Output Format (ONLY JSON)**\n")
	b.WriteString("[\n")
	b.WriteString("    {\"Date\": \"MM/DD/YYYY\", \"Description\": \"transaction details\", \"Deposits_Credits\": number, \"Withdrawals_Debits\": number, \"Vendor Name\": \"matched vendor\"},\n")
	b.WriteString("    {\"Date\": \"MM/DD/YYYY\", \"Description\": \"another transaction\", \"Deposits_Credits\": number, \"Withdrawals_Debits\": number, \"Vendor Name\": \"matched vendor\"}\n")
	b.WriteString("]\n\n")

	b.WriteString("**Example:**\n")
	b.WriteString(`[
    {
        "Date": "11/01/2023",
        "Description": "Overdraft Fee for a Transaction Posted on 10/31 $143.00 Dell",
        "Deposits_Credits": 0,
        "Withdrawals_Debits": 35.00,
        "Vendor Name": "Overdraft Fee"
    },
    {
        "Date": "11/01/2023",
        "Description": "ATM Cash Deposit on 11/01 1530 Heitman St Fort Myers FL",
        "Deposits_Credits": 600.00,
        "Withdrawals_Debits": 0,
        "Vendor Name": "ATM"
    }
]
`)

	return b.String()
}
