package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"clair/internal/organize"
	"clair/internal/watch"
	"clair/pkg/types"
)

// NewWatchCmd creates the watch command
func NewWatchCmd() *cobra.Command {
	var debounce int

	cmd := &cobra.Command{
		Use:   "watch [directory]",
		Short: "Keep a directory organized as files arrive",
		Long: `Watch runs an organize pass whenever files appear in the directory,
after a short quiet period so half-written downloads settle first.
Stop it with Ctrl-C.`,
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

			cats, _ := loadStores()
			engine := organize.New(cats)

			quiet := cfg.Watch.Debounce
			if cmd.Flags().Changed("debounce") {
				quiet = debounce
			}
			if quiet < 1 {
				return fmt.Errorf("debounce must be at least 1 second")
			}

			w, err := watch.New(engine, dir, opts, time.Duration(quiet)*time.Second)
			if err != nil {
				return err
			}
			w.SetReportFunc(func(r *types.Report) {
				fmt.Println(r.Summary())
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Println(infoText(fmt.Sprintf("watching %s (Ctrl-C to stop)", dir)))
			return w.Run(ctx)
		},
	}

	cmd.Flags().IntVar(&debounce, "debounce", 0, "seconds of quiet before organizing (default from config)")
	return cmd
}
