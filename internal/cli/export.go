package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"semtrack/internal/export"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export [semester]",
	Short: "Export a semester report",
	Long: `Export one semester, or all semesters when no name is given, as
json, csv or pdf.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "output format (json, csv, pdf)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout; required for pdf)")
}

func runExport(cmd *cobra.Command, args []string) error {
	semester := ""
	if len(args) == 1 {
		semester = args[0]
	}

	if exportFormat == "pdf" && exportOutput == "" {
		return fmt.Errorf("pdf export requires --output")
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	data, err := export.New(store).Export(cmd.Context(), semester, exportFormat)
	if err != nil {
		return err
	}

	if exportOutput == "" {
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	}

	if err := os.WriteFile(exportOutput, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	cmd.Printf("Wrote %s report to %s\n", exportFormat, exportOutput)
	return nil
}
