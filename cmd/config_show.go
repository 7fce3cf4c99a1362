package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values.`,
	Example: `
  # Show active configuration
  sfoacc config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
			fmt.Println("Configuration:")
			fmt.Printf("database.path: %s\n", cfg.Database.Path)
			fmt.Printf("import.notify_welcome: %t\n", cfg.Import.NotifyWelcome)
			fmt.Printf("refdata.church_communities: %d\n", len(cfg.RefData.ChurchCommunities))
			fmt.Printf("refdata.worship_places: %d\n", len(cfg.RefData.WorshipPlaces))
			fmt.Printf("refdata.societies: %d\n", len(cfg.RefData.Societies))
			fmt.Printf("refdata.sacrament_types: %d\n", len(cfg.RefData.SacramentTypes))
		}
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
