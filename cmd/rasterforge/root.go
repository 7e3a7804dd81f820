package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	flagVerbose bool
	logger      *slog.Logger
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "rasterforge",
		Short: "A from-scratch CPU triangle rasterizer, demoed in your terminal",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if flagVerbose {
				level = slog.LevelInfo
			}
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)
		},
	}
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log asset loads and frame-pacing warnings")

	root.AddCommand(newRenderCommand())
	root.AddCommand(newBenchCommand())
	return root
}

// Execute runs the rasterforge command tree through fang's styled
// help/usage rendering.
func Execute(ctx context.Context) error {
	return fang.Execute(ctx, newRootCommand())
}
