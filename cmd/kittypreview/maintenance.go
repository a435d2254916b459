package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/kittypreview/internal/errmsg"
	"github.com/llehouerou/kittypreview/internal/kitty"
	"github.com/llehouerou/kittypreview/internal/termcap"
)

func newClearCmd(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every image shown in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := newLogger(cmd.ErrOrStderr(), global.debug)
			cfg, err := loadConfig(global)
			if err != nil {
				return err
			}

			if !termcap.IsKitty() {
				return fail(errmsg.OpImagesClear, "", kitty.ErrUnavailable)
			}
			// Deleting needs no cell size, so no renderer either
			enc := kitty.Encoder{Quiet: cfg.Quiet, Logger: log}
			out := kitty.NewTermOutput(cmd.OutOrStdout())
			if err := enc.WriteEraseAll(out); err != nil {
				return fail(errmsg.OpImagesClear, "", err)
			}
			if err := out.Flush(); err != nil {
				return fail(errmsg.OpImagesClear, "", err)
			}
			return nil
		},
	}
}

func newSweepCmd(global *globalFlags) *cobra.Command {
	var maxAge time.Duration

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Remove temp files left behind by file transmission",
		Long: `Terminals delete the temp files they read, but files written for a
terminal that never read them stay behind. sweep removes the ones older than
--max-age.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := newLogger(cmd.ErrOrStderr(), global.debug)
			cfg, err := loadConfig(global)
			if err != nil {
				return err
			}

			age := cfg.SweepAge()
			if cmd.Flags().Changed("max-age") {
				if maxAge <= 0 {
					return fail(errmsg.OpTempFileSweep, "", errors.New("--max-age must be positive"))
				}
				age = maxAge
			}

			tf := cfg.TempFiles()
			res, err := kitty.SweepTempFiles(tf.Dir, tf.Prefix, age, log)
			if err != nil {
				return fail(errmsg.OpTempFileSweep, tf.Dir, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d files, freed %s\n",
				res.Removed, humanize.IBytes(uint64(res.Freed))) //nolint:gosec // sizes are non-negative
			return nil
		},
	}
	cmd.Flags().DurationVar(&maxAge, "max-age", kitty.DefaultSweepAge, "Remove files older than this")
	return cmd
}
