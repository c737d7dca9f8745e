package cmd

import (
	"fmt"
	"strings"

	"github.com/cfoq-dev/cfoq/internal/cli"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a single question and print the answer",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAskQuestion(strings.Join(args, " "))
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAskQuestion(question string) error {
	p, err := buildPlanner()
	if err != nil {
		return err
	}

	answer := p.Answer(question)
	fmt.Println(cli.RenderAnswer(answer.Text))
	if answer.Chart != nil {
		fmt.Println(cli.RenderChart(answer.Chart))
	}
	return nil
}
