package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/config"
	"github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/importer"
	"github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/notify"
	"github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/storage"
)

var (
	importInputs []string
	importFormat string
	importDBPath string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Bulk-import membership rosters from CSV/Excel into SQLite",
	Long: `Read legacy roster files, normalize each row, resolve free-text references
against the canonical reference tables, and persist members transactionally.

Each row runs in its own transaction: a malformed row is reported and skipped,
never aborting the batch. Rows whose legacy ID is already stored are counted
as duplicates. The one fatal condition is an unusable file (undetectable
delimiter or missing required headers), which aborts before any row.

When --format is omitted, format is inferred from each input file extension.`,
	Example: `
  # Import one roster (delimiter sniffed automatically)
  sfoacc import -i ./roster2024.csv

  # Import several rosters in one batch
  sfoacc import -i ./roster-a.csv -i ./roster-b.xlsx

  # Force CSV parsing for a .txt export
  sfoacc import -i ./legacy.txt --format csv

  # Import into a specific database file
  sfoacc import -i ./roster2024.csv --db ./sfoacc.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		dbPath := importDBPath
		if dbPath == "" {
			dbPath = cfg.Database.Path
		}
		store, err := storage.OpenSQLite(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		var notifier notify.Notifier = notify.Noop{}
		if cfg.Import.NotifyWelcome {
			notifier = notify.NewLogger(cmd.OutOrStdout())
		}

		service := importer.New(store, notifier)
		report, err := service.Run(cmd.Context(), importInputs, importFormat)
		if err != nil {
			return err
		}

		fmt.Printf("Import completed. Total: %d, Imported: %d, Failed: %d, Duplicates: %d\n",
			report.Total, report.Success, report.Failed, report.Duplicates)
		for _, detail := range report.Errors {
			fmt.Println("  error:", detail)
		}
		for _, warning := range report.Warnings {
			fmt.Println("  warning:", warning)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringArrayVarP(&importInputs, "input", "i", nil, "Input roster file path (repeatable)")
	importCmd.Flags().StringVarP(&importFormat, "format", "f", "", "Input format: csv|excel (optional, inferred from extension when omitted)")
	importCmd.Flags().StringVar(&importDBPath, "db", "", "Path to SQLite database (default: database.path from config)")

	_ = importCmd.MarkFlagRequired("input")
}
