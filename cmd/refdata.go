package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/config"
	"github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/member"
	"github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/storage"
)

var refdataDBPath string

var refdataCmd = &cobra.Command{
	Use:   "refdata",
	Short: "Seed and list canonical reference entities",
	Long: `Manage the canonical reference tables the import pipeline resolves against.

Curated categories (church communities, places of worship, societies,
sacrament types) are only ever grown here, never by the importer. Open
categories (languages, skills) also grow automatically during import.`,
	Example: `
  # Seed curated entities from the refdata section of the config file
  sfoacc refdata seed

  # List one category
  sfoacc refdata list society
`,
}

var refdataSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed curated reference entities from configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		store, err := storage.OpenSQLite(refdataDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		seeds := []struct {
			category member.Category
			names    []string
		}{
			{member.CategoryChurchCommunity, cfg.RefData.ChurchCommunities},
			{member.CategoryPlaceOfWorship, cfg.RefData.WorshipPlaces},
			{member.CategorySociety, cfg.RefData.Societies},
			{member.CategorySacramentType, cfg.RefData.SacramentTypes},
		}
		for _, seed := range seeds {
			if len(seed.names) == 0 {
				continue
			}
			created, err := store.SeedEntities(seed.category, seed.names)
			if err != nil {
				return err
			}
			fmt.Printf("%s: %d configured, %d created\n", seed.category, len(seed.names), created)
		}
		return nil
	},
}

var refdataListCmd = &cobra.Command{
	Use:   "list <category>",
	Short: "List entities of one category",
	Long: `List canonical entities of one category.

Categories: church_community, place_of_worship, society, sacrament_type,
language, skill.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category := member.Category(args[0])

		store, err := storage.OpenSQLite(refdataDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		entities, err := store.ListEntities(category)
		if err != nil {
			return err
		}
		for _, entity := range entities {
			fmt.Printf("%6d  %s\n", entity.ID, entity.Name)
		}
		fmt.Printf("%d entities\n", len(entities))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(refdataCmd)
	refdataCmd.AddCommand(refdataSeedCmd, refdataListCmd)

	refdataCmd.PersistentFlags().StringVar(&refdataDBPath, "db", "./sfoacc.db", "Path to SQLite database")
}
