package main

import (
	"github.com/spf13/cobra"

	"clair/internal/organize"
	"clair/internal/tui"
)

// NewTuiCmd creates the tui command
func NewTuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui [directory]",
		Short: "Open the interactive category editor",
		Long: `The editor shows every category with its extension toggles. Move
around with the arrow keys, flip extensions with space, cycle presets
with tab, and press o to organize the directory with the current
setup. Edits are saved as you make them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := targetDir(args)
			if err != nil {
				return err
			}
			opts, err := optionsFromConfig(cfg)
			if err != nil {
				return err
			}
			cats, presets := loadStores()
			engine := organize.New(cats)
			return tui.Run(cats, presets, engine, dir, opts)
		},
	}
}
