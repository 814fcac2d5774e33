// Package pdftext extracts the per-page text layer from statement PDFs
// using go-fitz (MuPDF). Scanned pages without a text layer are skipped;
// OCR is out of scope.
package pdftext

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/udhayakumarcp/Transaction-Processor-Agent-API/internal/pipeline"
)

// Extractor reads PDF bytes in memory. The zero value is ready to use.
type Extractor struct{}

// ExtractPages implements pipeline.PageExtractor. Pages are visited in
// natural order starting at 1; a page whose text is blank after trimming
// is silently omitted. A container that cannot be opened at all is a
// *pipeline.DocumentFormatError. The document handle is released on
// every path.
func (Extractor) ExtractPages(data []byte) ([]pipeline.PageText, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, &pipeline.DocumentFormatError{Err: fmt.Errorf("open pdf: %w", err)}
	}
	defer doc.Close()

	pages := []pipeline.PageText{}
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			// A single unreadable page does not corrupt the rest of
			// the document; treat it like a page with no text layer.
			continue
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		pages = append(pages, pipeline.PageText{Number: i + 1, Text: text})
	}

	return pages, nil
}
