package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/output"
	"github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/storage"
)

var (
	exportFormat string
	exportOutput string
	exportDBPath string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export canonical member records to CSV/Excel",
	Long: `Export the canonical member roster from SQLite.

Output format can be selected explicitly via --format or inferred from the
--output extension.`,
	Example: `
  # Export members to CSV
  sfoacc export --db ./sfoacc.db --output ./members.csv

  # Export members to Excel
  sfoacc export --db ./sfoacc.db --output ./members.xlsx

  # Force Excel format independent of extension
  sfoacc export --format excel --output ./members.out
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := exportFormat
		if strings.TrimSpace(format) == "" {
			format = detectExportFormat(exportOutput)
		}

		writer, err := output.WriterForFormat(format)
		if err != nil {
			return err
		}

		store, err := storage.OpenSQLite(exportDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.ListMembers()
		if err != nil {
			return err
		}

		if err := writer.Write(exportOutput, records); err != nil {
			return err
		}

		fmt.Printf("Exported %d members to %s\n", len(records), exportOutput)
		return nil
	},
}

func detectExportFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return "excel"
	default:
		return "csv"
	}
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFormat, "format", "", "Output format: csv|excel (optional, inferred from --output extension)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "./members.csv", "Output file path")
	exportCmd.Flags().StringVar(&exportDBPath, "db", "./sfoacc.db", "Path to SQLite database")
}
