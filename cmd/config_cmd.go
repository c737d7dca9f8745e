package cmd

import (
	"fmt"
	"strconv"

	"github.com/cfoq-dev/cfoq/internal/cli"
	"github.com/cfoq-dev/cfoq/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfig()
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		value, err := configValue(cfg, args[0])
		if err != nil {
			return err
		}
		fmt.Println(value)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Update one configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := setConfigValue(&cfg, args[0], args[1]); err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return err
		}
		if !flagQuiet {
			fmt.Printf("  %s = %s\n", args[0], args[1])
		}
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(config.ConfigPath())
	},
}

func init() {
	configCmd.AddCommand(configGetCmd, configSetCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// configValue resolves a dotted key to its current value.
func configValue(cfg config.Config, key string) (string, error) {
	switch key {
	case "general.fixtures_dir":
		return cfg.General.FixturesDir, nil
	case "general.trend_window_months":
		return strconv.Itoa(cfg.General.TrendWindowMonths), nil
	case "general.no_cache":
		return strconv.FormatBool(cfg.General.NoCache), nil
	case "appearance.theme":
		return cfg.Appearance.Theme, nil
	}
	return "", fmt.Errorf("unknown config key %q", key)
}

// setConfigValue parses and applies a dotted key assignment.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "general.fixtures_dir":
		cfg.General.FixturesDir = value
	case "general.trend_window_months":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("%s wants a positive whole number, got %q", key, value)
		}
		cfg.General.TrendWindowMonths = n
	case "general.no_cache":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s wants true or false, got %q", key, value)
		}
		cfg.General.NoCache = b
	case "appearance.theme":
		cfg.Appearance.Theme = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

func runConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Println(cli.RenderTitle("CFOQ CONFIG"))
	fmt.Println()

	if config.Exists() {
		fmt.Printf("  Config file: %s\n", config.ConfigPath())
	} else {
		fmt.Printf("  Config file: %s (not created yet, showing defaults)\n", config.ConfigPath())
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Fixtures dir:   %s\n", config.FixturesDir(cfg))
	fmt.Printf("    Trend window:   %d months\n", cfg.General.TrendWindowMonths)
	fmt.Printf("    Cache:          %v\n", !cfg.General.NoCache)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme:          %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `cfoq setup` to reconfigure.")
	return nil
}
