// Command kittypreview shows images in a terminal speaking the Kitty
// graphics protocol.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/llehouerou/kittypreview/internal/config"
	"github.com/llehouerou/kittypreview/internal/errmsg"
)

// cmdError carries the operation that failed so main can word it.
type cmdError struct {
	op      errmsg.Op
	context string
	err     error
}

func (e *cmdError) Error() string { return errmsg.FormatWith(e.op, e.context, e.err) }

func (e *cmdError) Unwrap() error { return e.err }

func fail(op errmsg.Op, context string, err error) error {
	return &cmdError{op: op, context: context, err: err}
}

type globalFlags struct {
	configPath string
	debug      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var global globalFlags
	var opts previewFlags

	rootCmd := &cobra.Command{
		Use:   "kittypreview [flags] IMAGE...",
		Short: "Show images in a Kitty graphics terminal",
		Long: `kittypreview fits images into an area of the terminal and sends them
with the Kitty graphics protocol. Several images are laid out side by side.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, &global, &opts, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&global.configPath, "config", "", "Config file, read after the default ones")
	rootCmd.PersistentFlags().BoolVar(&global.debug, "debug", false, "Log debug records to stderr")

	flags := rootCmd.Flags()
	flags.StringVar(&opts.mode, "mode", "", "Transmission mode: chunks, file")
	flags.IntVar(&opts.left, "left", 0, "Leftmost column of the area")
	flags.IntVar(&opts.top, "top", 0, "Top row of the area")
	flags.IntVar(&opts.cols, "cols", 0, "Area width in cells (default: rest of the terminal)")
	flags.IntVar(&opts.rows, "rows", 0, "Area height in cells (default: rest of the terminal minus one row)")
	flags.BoolVar(&opts.downscale, "downscale", false, "Shrink images larger than their area before sending")
	flags.IntVar(&opts.quiet, "quiet", 0, "Terminal response suppression: 0, 1 or 2")

	rootCmd.AddCommand(newClearCmd(&global), newSweepCmd(&global))
	return rootCmd
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func loadConfig(global *globalFlags) (*config.Config, error) {
	cfg, err := config.Load(global.configPath)
	if err != nil {
		return nil, fail(errmsg.OpConfigLoad, global.configPath, err)
	}
	return cfg, nil
}
