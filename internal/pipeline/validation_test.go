package pipeline

import (
	"errors"
	"testing"
)

func TestDecodeTransactionsJSON_Shape(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:    "array of objects",
			input:   `[{"Date":"01/01/2024","Description":"X"}]`,
			wantErr: false,
		},
		{
			name:    "empty array",
			input:   `[]`,
			wantErr: false,
		},
		{
			name:    "extra keys tolerated",
			input:   `[{"Date":"01/01/2024","Description":"X","Note":"extra"}]`,
			wantErr: false,
		},
		{
			name:    "null amounts tolerated",
			input:   `[{"Deposits_Credits":null,"Withdrawals_Debits":null}]`,
			wantErr: false,
		},
		{
			name:    "top-level object",
			input:   `{"Date":"01/01/2024"}`,
			wantErr: true,
		},
		{
			name:    "array of strings",
			input:   `["01/01/2024"]`,
			wantErr: true,
		},
		{
			name:    "string amount",
			input:   `[{"Deposits_Credits":"12.50"}]`,
			wantErr: true,
		},
		{
			name:    "numeric date",
			input:   `[{"Date":20240101}]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeTransactionsJSON(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("decodeTransactionsJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var formatErr *ModelResponseFormatError
				if !errors.As(err, &formatErr) {
					t.Errorf("Expected *ModelResponseFormatError, got %T", err)
				}
			}
		})
	}
}
