package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"clair/internal/category"
	"clair/internal/organize"
)

// NewOrganizeCmd creates the organize command
func NewOrganizeCmd() *cobra.Command {
	var (
		recursive   bool
		deleteEmpty bool
		dryRun      bool
		maxDepth    int
		presetName  string
	)

	cmd := &cobra.Command{
		Use:   "organize [directory]",
		Short: "Sort the files in a directory now",
		Long: `Organize moves every file in the directory into the subfolder of
its extension category. Unmatched extensions go to Other. Files that
already sit in their category folder are left alone, so running it
twice changes nothing.`,
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
			if cmd.Flags().Changed("recursive") {
				opts.Recursive = recursive
			}
			if cmd.Flags().Changed("delete-empty") {
				opts.DeleteEmpty = deleteEmpty
			}
			if cmd.Flags().Changed("dry-run") {
				opts.DryRun = dryRun
			}
			if cmd.Flags().Changed("max-depth") {
				opts.MaxDepth = maxDepth
			}
			if opts.DeleteEmpty && !opts.Recursive {
				return fmt.Errorf("--delete-empty requires --recursive")
			}

			cats, presets := loadStores()
			if presetName != "" {
				mapping, err := presets.Get(presetName)
				if err != nil {
					return err
				}
				// One-off mapping for this run only; a store without a
				// persist callback never touches categories.json.
				runCats := category.NewStore()
				runCats.Restore(mapping)
				cats = runCats
			}

			engine := organize.New(cats)

			if opts.DryRun {
				fmt.Println(infoText(fmt.Sprintf("dry run: planning organization of %s", dir)))
			} else {
				fmt.Println(infoText(fmt.Sprintf("organizing %s", dir)))
			}

			report, err := engine.Organize(cmd.Context(), dir, opts)
			if err != nil {
				return err
			}

			for _, mv := range report.Moves {
				arrow := "->"
				if mv.Planned {
					arrow = "would move to"
				}
				fmt.Printf("  %s %s %s\n", filepath.Base(mv.Source), arrow, filepath.Join(mv.Category, filepath.Base(mv.Destination)))
			}
			for _, e := range report.Errors {
				fmt.Println(errorText("  " + e.Error()))
			}
			fmt.Println(report.Summary())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "scan subfolders too")
	cmd.Flags().BoolVar(&deleteEmpty, "delete-empty", false, "remove subfolders emptied by the run (needs --recursive)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "report planned moves without touching anything")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "limit recursion depth, 0 for unlimited")
	cmd.Flags().StringVarP(&presetName, "preset", "p", "", "use a saved preset's categories for this run only")

	return cmd
}
