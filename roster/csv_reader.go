package roster

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// CSVReader parses delimiter-separated roster files. The delimiter is sniffed
// from the file content rather than assumed, because legacy rosters arrive
// with commas, semicolons, tabs or pipes depending on who exported them.
type CSVReader struct{}

const sniffSize = 8 * 1024

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func (r *CSVReader) Read(path string) (*Source, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &FatalParseError{Path: path, Reason: "read file", Err: err}
	}
	return ParseCSV(path, content)
}

// ParseCSV parses raw delimited content. Malformed individual lines become
// rows carrying an Err instead of aborting the parse; only an undetectable
// delimiter or a missing required header is fatal.
func ParseCSV(path string, content []byte) (*Source, error) {
	content = bytes.TrimPrefix(content, utf8BOM)

	sample := content
	if len(sample) > sniffSize {
		sample = sample[:sniffSize]
	}
	delimiter, err := DetectDelimiter(sample)
	if err != nil {
		return nil, &FatalParseError{Path: path, Reason: "detect delimiter", Err: err}
	}

	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	headerCells, err := reader.Read()
	if err != nil {
		return nil, &FatalParseError{Path: path, Reason: "read header row", Err: err}
	}
	headers := make([]string, len(headerCells))
	for i, cell := range headerCells {
		headers[i] = strings.TrimSpace(cell)
	}
	if err := ValidateHeaders(path, headers); err != nil {
		return nil, err
	}

	source := &Source{Path: path, Delimiter: delimiter, Headers: headers, Rows: make([]Row, 0, 256)}
	rowNumber := 1
	for {
		cells, err := reader.Read()
		rowNumber++
		if err == io.EOF {
			break
		}
		if err != nil {
			source.Rows = append(source.Rows, Row{
				Number: rowNumber,
				Err:    fmt.Errorf("malformed line: %w", err),
			})
			continue
		}
		source.Rows = append(source.Rows, Row{Number: rowNumber, Fields: zipRow(headers, cells)})
	}

	return source, nil
}

func zipRow(headers, cells []string) map[string]string {
	fields := make(map[string]string, len(headers))
	for i, header := range headers {
		if i < len(cells) {
			fields[header] = cells[i]
		} else {
			fields[header] = ""
		}
	}
	return fields
}
