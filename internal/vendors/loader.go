// Package vendors loads the vendor reference list from an uploaded
// tabular file. The list is the values of the column literally named
// "Payee"; a file without that column yields an empty list, not an error.
package vendors

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/udhayakumarcp/Transaction-Processor-Agent-API/internal/pipeline"
)

// PayeeColumn is the designated vendor-name column in the uploaded file.
const PayeeColumn = "Payee"

// Loader reads vendor lists from CSV, XLS and XLSX files. The zero value
// is ready to use.
type Loader struct{}

// Load implements pipeline.VendorLoader. Dispatch is on filename suffix:
// ".csv" parses as CSV, ".xls" as legacy Excel, anything else as XLSX.
func (Loader) Load(filename string, data []byte) ([]string, error) {
	var (
		rows [][]string
		err  error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		rows, err = readCSV(data)
	case ".xls":
		rows, err = readXLS(data)
	default:
		rows, err = readXLSX(data)
	}
	if err != nil {
		return nil, &pipeline.DataFormatError{Filename: filename, Err: err}
	}

	return payeeColumn(rows), nil
}

func readCSV(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return rows, nil
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func readXLS(data []byte) ([][]string, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open xls: %w", err)
	}
	rows := wb.ReadAllCells(1 << 16)
	if len(rows) == 0 {
		return nil, fmt.Errorf("xls has no rows")
	}
	return rows, nil
}

// payeeColumn returns the values beneath the Payee header in row order.
// No header row, or a header row without the Payee column, yields an
// empty list.
func payeeColumn(rows [][]string) []string {
	if len(rows) == 0 {
		return []string{}
	}

	col := -1
	for i, name := range rows[0] {
		if strings.TrimSpace(name) == PayeeColumn {
			col = i
			break
		}
	}
	if col < 0 {
		return []string{}
	}

	out := []string{}
	for _, row := range rows[1:] {
		if col < len(row) {
			out = append(out, row[col])
		} else {
			// Short row: the cell is empty in the source table.
			out = append(out, "")
		}
	}
	return out
}
