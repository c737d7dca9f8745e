package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cfoq-dev/cfoq/internal/cli"
	"github.com/cfoq-dev/cfoq/internal/engine"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show loaded fixture tables and row counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		fixturesDir, trendWindow := resolveSettings()
		result, err := loadData(fixturesDir)
		if err != nil {
			return err
		}
		eng := engine.New(&result.Dataset, engine.WithTrendWindow(trendWindow))
		s := eng.Summary()

		fmt.Println(cli.RenderTitle("CFOQ DATA SUMMARY"))

		table := cli.Table{
			Headers: []string{"Table", "Rows", "Columns"},
		}
		for _, t := range s.Tables {
			table.Rows = append(table.Rows, []string{
				t.Name,
				strconv.Itoa(t.Rows),
				strings.Join(t.Columns, ", "),
			})
		}
		fmt.Println(cli.RenderTable(table))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
