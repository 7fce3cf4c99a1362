package output

import (
	"fmt"
	"strings"

	"github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/member"
)

type Writer interface {
	Write(path string, records []member.Record) error
}

func WriterForFormat(format string) (Writer, error) {
	switch strings.TrimSpace(strings.ToLower(format)) {
	case "csv":
		return &CSVWriter{}, nil
	case "excel", "xlsx":
		return &ExcelWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

var exportHeaders = []string{
	"ID", "First Name", "Last Name", "Other Names", "Date of Birth", "Gender",
	"Marital Status", "Place of Birth", "Hometown", "Region", "Country",
	"Mobile Number", "Email", "Current Residence", "Old Church ID", "Member ID", "Source File",
}

func exportRow(rec member.Record) []string {
	return []string{
		fmt.Sprintf("%d", rec.ID),
		rec.FirstName,
		rec.LastName,
		rec.OtherNames,
		rec.DateOfBirth.Format("2006-01-02"),
		string(rec.Gender),
		string(rec.MaritalStatus),
		rec.PlaceOfBirth,
		rec.Hometown,
		rec.Region,
		rec.Country,
		rec.MobileNumber,
		rec.Email,
		rec.CurrentResidence,
		rec.LegacyID,
		rec.GeneratedID,
		rec.SourceFile,
	}
}
