package cmd

import (
	"fmt"

	"github.com/cfoq-dev/cfoq/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive chat session",
	RunE: func(cmd *cobra.Command, args []string) error {
		fixturesDir, trendWindow := resolveSettings()
		app := tui.NewApp(fixturesDir, trendWindow)
		p := tea.NewProgram(app, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("chat session failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
