package roster

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Reader parses one roster file into a Source.
type Reader interface {
	Read(path string) (*Source, error)
}

// ReaderForPath picks a reader from the file extension, or from the explicit
// format override when one is given.
func ReaderForPath(path, format string) (Reader, error) {
	selected := strings.ToLower(strings.TrimSpace(format))
	if selected == "" {
		selected = strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	}

	switch selected {
	case "csv", "txt", "tsv":
		return &CSVReader{}, nil
	case "excel", "xlsx", "xlsm", "xls":
		return &ExcelReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported roster format %q for %s", selected, path)
	}
}
