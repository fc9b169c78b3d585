package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"clair/internal/preset"
)

// NewPresetsCmd creates the presets command group
func NewPresetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Save and restore category setups",
		Long: `A preset is a named snapshot of the whole category mapping. The
built-in Default preset restores the stock categories and can be
neither overwritten nor deleted.`,
	}

	cmd.AddCommand(
		presetsListCmd(),
		presetsSaveCmd(),
		presetsLoadCmd(),
		presetsRenameCmd(),
		presetsDeleteCmd(),
	)
	return cmd
}

func presetsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, presets := loadStores()
			for _, name := range presets.Names() {
				if name == preset.DefaultName {
					fmt.Printf("%s (built-in)\n", name)
				} else {
					fmt.Println(name)
				}
			}
			return nil
		},
	}
}

func presetsSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <name>",
		Short: "Save the current categories as a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, presets := loadStores()
			if err := presets.Put(args[0], cats.Snapshot()); err != nil {
				return err
			}
			fmt.Println(infoText(fmt.Sprintf("saved preset %q", args[0])))
			return nil
		},
	}
}

func presetsLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <name>",
		Short: "Replace the current categories with a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, presets := loadStores()
			mapping, err := presets.Get(args[0])
			if err != nil {
				return err
			}
			cats.Restore(mapping)
			fmt.Println(infoText(fmt.Sprintf("loaded preset %q", args[0])))
			return nil
		},
	}
}

func presetsRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a preset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, presets := loadStores()
			if err := presets.Rename(args[0], args[1]); err != nil {
				return err
			}
			fmt.Println(infoText(fmt.Sprintf("renamed %q to %q", args[0], args[1])))
			return nil
		},
	}
}

func presetsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, presets := loadStores()
			if err := presets.Delete(args[0]); err != nil {
				return err
			}
			fmt.Println(infoText(fmt.Sprintf("deleted preset %q", args[0])))
			return nil
		},
	}
}
