package pdftext

import (
	"errors"
	"testing"

	"github.com/udhayakumarcp/Transaction-Processor-Agent-API/internal/pipeline"
)

func TestExtractPages_CorruptDocument(t *testing.T) {
	_, err := Extractor{}.ExtractPages([]byte("this is not a pdf"))

	var docErr *pipeline.DocumentFormatError
	if !errors.As(err, &docErr) {
		t.Fatalf("Expected *DocumentFormatError, got %T: %v", err, err)
	}
}

func TestExtractPages_EmptyInput(t *testing.T) {
	_, err := Extractor{}.ExtractPages(nil)

	var docErr *pipeline.DocumentFormatError
	if !errors.As(err, &docErr) {
		t.Fatalf("Expected *DocumentFormatError, got %T: %v", err, err)
	}
}
