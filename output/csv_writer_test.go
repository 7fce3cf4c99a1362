package output

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/member"
)

func TestCSVWriter_WritesHeaderAndRows(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "export.csv")
	records := []member.Record{
		{
			ID:            1,
			FirstName:     "Kofi",
			LastName:      "Nkrumah",
			DateOfBirth:   time.Date(2000, time.January, 15, 0, 0, 0, 0, time.UTC),
			Gender:        member.GenderMale,
			MaritalStatus: member.MaritalMarried,
			LegacyID:      "8",
			GeneratedID:   "KN1501-0008",
			SourceFile:    "roster.csv",
		},
		{
			ID:          2,
			FirstName:   "Ama",
			LastName:    "Mensah, Jr",
			DateOfBirth: time.Date(1985, time.December, 3, 0, 0, 0, 0, time.UTC),
			Gender:      member.GenderFemale,
		},
	}

	writer := &CSVWriter{}
	if err := writer.Write(path, records); err != nil {
		t.Fatalf("write: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer file.Close()

	lines, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("export has %d lines, want header plus 2 rows", len(lines))
	}
	if len(lines[0]) != len(exportHeaders) || lines[0][0] != "ID" {
		t.Fatalf("header line = %v", lines[0])
	}
	if lines[1][1] != "Kofi" || lines[1][4] != "2000-01-15" || lines[1][15] != "KN1501-0008" {
		t.Fatalf("first row = %v", lines[1])
	}
	if lines[2][2] != "Mensah, Jr" {
		t.Fatalf("comma in surname not preserved: %v", lines[2])
	}
}

func TestWriterForFormat(t *testing.T) {
	t.Parallel()

	if _, err := WriterForFormat("csv"); err != nil {
		t.Fatalf("csv: %v", err)
	}
	if _, err := WriterForFormat("XLSX"); err != nil {
		t.Fatalf("xlsx: %v", err)
	}
	if _, err := WriterForFormat("pdf"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
