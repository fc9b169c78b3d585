package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"clair/internal/category"
	"clair/internal/config"
	"clair/internal/log"
	"clair/internal/organize"
	"clair/internal/preset"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
)

var (
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	infoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

func errorText(s string) string { return errStyle.Render(s) }
func infoText(s string) string  { return infoStyle.Render(s) }

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "clair",
		Short: "Sort a folder's files into category subfolders",
		Long: `Clair sorts the files in a folder into subfolders named after
extension categories (Documents, Images, ...). Categories and presets
live in editable JSON files under ~/.config/clair/ and every change
made through the CLI or the editor is saved back immediately.`,
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfgFile != "" {
				cfg, err = config.LoadConfigFile(cfgFile)
				if err != nil {
					return err
				}
			} else {
				cfg, err = config.LoadConfig()
				if err != nil {
					fmt.Println(infoText(fmt.Sprintf("could not load config (%v), using defaults", err)))
					cfg = config.New()
				}
			}
			if err := log.SetLevel(cfg.Settings.LogLevel); err != nil {
				return err
			}
			if verbose {
				log.SetDebug(true)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/clair/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(NewOrganizeCmd())
	rootCmd.AddCommand(NewCategoriesCmd())
	rootCmd.AddCommand(NewPresetsCmd())
	rootCmd.AddCommand(NewWatchCmd())
	rootCmd.AddCommand(NewTuiCmd())

	return rootCmd
}

// loadStores builds both stores from the configured JSON files and wires
// their auto-save callbacks back to the same paths.
func loadStores() (*category.Store, *preset.Store) {
	cats := category.NewStore()
	if err := cats.Load(cfg.Paths.Categories); err != nil {
		fmt.Println(infoText(fmt.Sprintf("categories file reset to defaults: %v", err)))
	}
	cats.SetPersist(func(s *category.Store) error {
		return s.Save(cfg.Paths.Categories)
	})

	presets := preset.NewStore()
	if err := presets.Load(cfg.Paths.Presets); err != nil {
		fmt.Println(infoText(fmt.Sprintf("presets file ignored: %v", err)))
	}
	presets.SetPersist(func(s *preset.Store) error {
		return s.Save(cfg.Paths.Presets)
	})

	return cats, presets
}

// optionsFromConfig translates the settings block into engine options.
func optionsFromConfig(c *config.Config) (organize.Options, error) {
	globs, err := c.CompileIgnore()
	if err != nil {
		return organize.Options{}, err
	}
	return organize.Options{
		Recursive:    c.Settings.Recursive,
		DeleteEmpty:  c.Settings.DeleteEmpty,
		DryRun:       c.Settings.DryRun,
		IgnoreHidden: c.Settings.IgnoreHidden,
		MaxDepth:     c.Settings.MaxDepth,
		Ignore:       globs,
	}, nil
}

// targetDir resolves the directory to operate on: positional argument,
// then the configured default, then the working directory.
func targetDir(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Directories.Default != "" {
		return cfg.Directories.Default, nil
	}
	return os.Getwd()
}
