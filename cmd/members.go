package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/member"
	"github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/storage"
)

var membersDBPath string

var membersCmd = &cobra.Command{
	Use:   "members",
	Short: "List, show, and delete member records",
	Example: `
  # List all members
  sfoacc members list

  # Show one member with linked skills, languages, societies, sacraments
  sfoacc members show 42

  # Delete a member and their sub-records
  sfoacc members delete 42
`,
}

var membersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List member records",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.OpenSQLite(membersDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.ListMembers()
		if err != nil {
			return err
		}

		for _, rec := range records {
			id := rec.GeneratedID
			if id == "" {
				id = "-"
			}
			fmt.Printf("%6d  %-12s %s %s (born %s)\n",
				rec.ID, id, rec.FirstName, rec.LastName, rec.DateOfBirth.Format("2006-01-02"))
		}
		fmt.Printf("%d members\n", len(records))
		return nil
	},
}

var membersShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one member record with linked entities",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid member id %q", args[0])
		}

		store, err := storage.OpenSQLite(membersDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		rec, err := store.GetMemberByID(id)
		if err != nil {
			return err
		}

		fmt.Printf("%s %s %s\n", rec.FirstName, rec.OtherNames, rec.LastName)
		fmt.Printf("  born: %s  gender: %s  marital status: %s\n",
			rec.DateOfBirth.Format("2006-01-02"), rec.Gender, rec.MaritalStatus)
		if rec.GeneratedID != "" {
			fmt.Printf("  member id: %s (legacy %s)\n", rec.GeneratedID, rec.LegacyID)
		}
		if rec.MobileNumber != "" {
			fmt.Printf("  mobile: %s\n", rec.MobileNumber)
		}
		if rec.Email != "" {
			fmt.Printf("  email: %s\n", rec.Email)
		}

		if occ, ok, err := store.GetOccupation(id); err != nil {
			return err
		} else if ok {
			fmt.Printf("  occupation: %s (%s)\n", occ.Role, occ.Employer)
		}
		if family, ok, err := store.GetFamilyInfo(id); err != nil {
			return err
		} else if ok {
			if family.SpouseName != "" {
				fmt.Printf("  spouse: %s (%s)\n", family.SpouseName, family.SpouseStatus)
			}
			if family.FatherName != "" {
				fmt.Printf("  father: %s (%s)\n", family.FatherName, family.FatherStatus)
			}
			if family.MotherName != "" {
				fmt.Printf("  mother: %s (%s)\n", family.MotherName, family.MotherStatus)
			}
		}
		if contact, ok, err := store.GetEmergencyContact(id); err != nil {
			return err
		} else if ok {
			fmt.Printf("  emergency contact: %s %s\n", contact.Name, contact.Number)
		}
		if condition, ok, err := store.GetMedicalCondition(id); err != nil {
			return err
		} else if ok && condition.HasCondition {
			fmt.Printf("  medical condition: %s\n", condition.Detail)
		}

		for _, category := range []member.Category{
			member.CategorySkill, member.CategoryLanguage,
			member.CategorySociety, member.CategorySacramentType,
		} {
			entities, err := store.ListMemberEntities(id, category)
			if err != nil {
				return err
			}
			if len(entities) == 0 {
				continue
			}
			fmt.Printf("  %s:", category)
			for _, entity := range entities {
				fmt.Printf(" %s;", entity.Name)
			}
			fmt.Println()
		}
		return nil
	},
}

var membersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one member record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid member id %q", args[0])
		}

		store, err := storage.OpenSQLite(membersDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		deleted, err := store.DeleteMember(id)
		if err != nil {
			return err
		}
		if !deleted {
			fmt.Printf("No member with id %d\n", id)
			return nil
		}
		fmt.Printf("Deleted member %d\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(membersCmd)
	membersCmd.AddCommand(membersListCmd, membersShowCmd, membersDeleteCmd)

	membersCmd.PersistentFlags().StringVar(&membersDBPath, "db", "./sfoacc.db", "Path to SQLite database")
}
