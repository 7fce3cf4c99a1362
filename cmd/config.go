package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage sfoacc configuration file values.",
	Long: `Create and display the sfoacc configuration file.

The configuration stores application-wide values:
- database.path
- import.notify_welcome
- refdata.* seed lists for curated reference entities`,
	Example: `
  # Create default config in $HOME/.sfoacc.yaml
  sfoacc config create

  # Show active config and source file
  sfoacc config show
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
