package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/config"
)

var configCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a configuration file from the example template.",
	Long: `Create a new configuration file from the example template.

If a configuration file is already in use, no new file is written.`,
	Example: `
  # Create default config at $HOME/.sfoacc.yaml
  sfoacc config create
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return saveDefaultConfig()
	},
}

func saveDefaultConfig() error {
	configPath, err := resolveConfigPath(cfgFile, viper.ConfigFileUsed())
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Config file already exists at: %s\n", configPath)
		return nil
	}

	if err := os.WriteFile(configPath, []byte(config.ExampleYAML()), 0o644); err != nil {
		return fmt.Errorf("write config file %s: %w", configPath, err)
	}

	fmt.Printf("New config file created at: %s\n", configPath)
	return nil
}

func resolveConfigPath(override, active string) (string, error) {
	if strings.TrimSpace(override) != "" {
		return override, nil
	}
	if strings.TrimSpace(active) != "" {
		return active, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".sfoacc.yaml"), nil
}

func init() {
	configCmd.AddCommand(configCreateCmd)
}
