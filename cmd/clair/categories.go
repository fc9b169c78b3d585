package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"clair/internal/category"
)

// NewCategoriesCmd creates the categories command group
func NewCategoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"cat"},
		Short:   "Inspect and edit the extension categories",
		Long: `Categories map file extensions to destination folders. Every edit
is written straight back to the categories JSON file. The Other bucket
is built in and catches everything unmapped; it cannot be edited.`,
	}

	cmd.AddCommand(
		categoriesListCmd(),
		categoriesAddCmd(),
		categoriesRemoveCmd(),
		categoriesRenameCmd(),
		categoriesEnableCmd(),
		categoriesDisableCmd(),
		categoriesAddExtCmd(),
	)
	return cmd
}

func categoriesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories and their extensions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, _ := loadStores()
			for _, c := range cats.Categories() {
				fmt.Printf("%-12s %s\n", c.Name, strings.Join(c.Extensions, " "))
			}
			fmt.Printf("%-12s %s\n", category.OtherName, "(everything else)")
			return nil
		},
	}
}

func categoriesAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add an empty category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, _ := loadStores()
			if err := cats.Add(args[0]); err != nil {
				return err
			}
			fmt.Println(infoText(fmt.Sprintf("added category %q", args[0])))
			return nil
		},
	}
}

func categoriesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a category; its files fall back to Other on the next run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, _ := loadStores()
			if err := cats.Remove(args[0]); err != nil {
				return err
			}
			fmt.Println(infoText(fmt.Sprintf("removed category %q", args[0])))
			return nil
		},
	}
}

func categoriesRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, _ := loadStores()
			if err := cats.Rename(args[0], args[1]); err != nil {
				return err
			}
			fmt.Println(infoText(fmt.Sprintf("renamed %q to %q", args[0], args[1])))
			return nil
		},
	}
}

func categoriesEnableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enable <name> <ext>",
		Short: "Map an extension to a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, _ := loadStores()
			if err := cats.SetExtensionEnabled(args[0], args[1], true); err != nil {
				return err
			}
			fmt.Println(infoText(fmt.Sprintf("%s now sorts into %s", category.NormalizeExt(args[1]), args[0])))
			return nil
		},
	}
}

func categoriesDisableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disable <name> <ext>",
		Short: "Unmap an extension from a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, _ := loadStores()
			if err := cats.SetExtensionEnabled(args[0], args[1], false); err != nil {
				return err
			}
			fmt.Println(infoText(fmt.Sprintf("%s removed from %s", category.NormalizeExt(args[1]), args[0])))
			return nil
		},
	}
}

func categoriesAddExtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-ext <ext>",
		Short: "Add an extension to the toggle palette",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, _ := loadStores()
			if err := cats.AddKnownExtension(args[0]); err != nil {
				return err
			}
			fmt.Println(infoText(fmt.Sprintf("%s added to the palette", category.NormalizeExt(args[0]))))
			return nil
		},
	}
}
