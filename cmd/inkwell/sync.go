package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/inkwell/internal/ingest"
)

var syncSheetName string

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Import books from a spreadsheet",
}

var syncExcelCmd = &cobra.Command{
	Use:   "excel <path>",
	Short: "Import books from a local XLSX workbook",
	Long: `Import book rows from an XLSX workbook. Row 1 must hold column
headers; rows 1-2 are treated as template rows and skipped. Existing
books are matched by title or source row and updated in place.

Examples:
  inkwell sync excel books.xlsx
  inkwell sync excel books.xlsx --sheet Books`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := ingest.ImportExcel(ctx, a.store, args[0], syncSheetName, logger)
		if err != nil {
			return err
		}
		fmt.Printf("created %d, updated %d, skipped %d\n", res.Created, res.Updated, res.Skipped)
		return nil
	},
}

var syncSheetsCmd = &cobra.Command{
	Use:   "sheets <spreadsheet-id>",
	Short: "Import books from a Google Sheets spreadsheet",
	Long: `Import book rows from Google Sheets. Credentials come from the
service-account JSON file named by GOOGLE_SERVICE_ACCOUNT_JSON.

Examples:
  inkwell sync sheets 1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := ingest.ImportSheets(ctx, a.store, args[0], syncSheetName, logger)
		if err != nil {
			return err
		}
		fmt.Printf("created %d, updated %d, skipped %d\n", res.Created, res.Updated, res.Skipped)
		return nil
	},
}

func init() {
	syncCmd.PersistentFlags().StringVar(&syncSheetName, "sheet", "", "worksheet name (default: first sheet)")

	syncCmd.AddCommand(syncExcelCmd)
	syncCmd.AddCommand(syncSheetsCmd)
	rootCmd.AddCommand(syncCmd)
}
