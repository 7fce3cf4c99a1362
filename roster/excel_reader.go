package roster

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExcelReader parses the first sheet of an Excel workbook, treating the first
// row as the header row. Excel input has no delimiter to sniff.
type ExcelReader struct{}

func (r *ExcelReader) Read(path string) (*Source, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &FatalParseError{Path: path, Reason: "open excel file", Err: err}
	}
	defer file.Close()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, &FatalParseError{Path: path, Reason: "workbook has no sheets"}
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, &FatalParseError{Path: path, Reason: "read sheet " + sheetName, Err: err}
	}
	if len(rows) == 0 {
		return nil, &FatalParseError{Path: path, Reason: "sheet " + sheetName + " is empty"}
	}

	headers := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		headers[i] = strings.TrimSpace(cell)
	}
	if err := ValidateHeaders(path, headers); err != nil {
		return nil, err
	}

	source := &Source{Path: path, Headers: headers, Rows: make([]Row, 0, len(rows)-1)}
	for i, cells := range rows[1:] {
		source.Rows = append(source.Rows, Row{Number: i + 2, Fields: zipRow(headers, cells)})
	}

	return source, nil
}
