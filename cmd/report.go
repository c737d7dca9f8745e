package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cfoq-dev/cfoq/internal/engine"
	"github.com/cfoq-dev/cfoq/internal/report"

	"github.com/spf13/cobra"
)

var flagReportOut string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export a board pack (revenue vs budget, OpEx, runway) as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		fixturesDir, trendWindow := resolveSettings()
		result, err := loadData(fixturesDir)
		if err != nil {
			return err
		}
		eng := engine.New(&result.Dataset, engine.WithTrendWindow(trendWindow))
		pack := report.Build(eng)

		data, err := json.MarshalIndent(pack, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		data = append(data, '\n')

		if flagReportOut == "" || flagReportOut == "-" {
			_, err = os.Stdout.Write(data)
			return err
		}

		if err := os.WriteFile(flagReportOut, data, 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Report written to %s\n", flagReportOut)
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVarP(&flagReportOut, "out", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(reportCmd)
}
