package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brogergvhs/dubfilter/internal/util"
	"github.com/brogergvhs/dubfilter/internal/watch"

	"github.com/spf13/cobra"
)

var (
	flagDelay time.Duration
	flagOnce  bool
)

func init() {
	watchCmd := &cobra.Command{
		Use:   "watch <page.html>",
		Short: "Filter a page in place after a settle delay, and again whenever it changes",
		Args:  cobra.ExactArgs(1),
		RunE:  runWatch,
	}

	addRuleFlags(watchCmd)
	watchCmd.Flags().DurationVar(&flagDelay, "delay", 0, "settle delay before each pass (default from config, 1.5s)")
	watchCmd.Flags().BoolVar(&flagOnce, "once", false, "run a single delayed pass and exit")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	opts := ruleOptions()
	opts.Delay = flagDelay

	r, usedPath, err := newRunner(opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	r.log.Debugf("Config file: %s\n", usedPath)

	path := args[0]
	delay := time.Duration(r.cfg.Delay)
	util.CleanupUnfinishedTempFiles(cmd.ErrOrStderr(), path)

	pass := func() error {
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		data, res, err := r.pass(bytes.NewReader(raw), path)
		if err != nil {
			return err
		}

		wrote, err := util.WriteIfChanged(path, data)
		if err != nil {
			return err
		}
		if wrote {
			r.log.Infof("%s: %d/%d entries hidden\n", path, res.Hidden, res.Scanned)
		} else {
			r.log.Debugf("%s: nothing new to hide\n", path)
		}

		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flagOnce {
		err = watch.Once(ctx, delay, pass)
	} else {
		r.log.Infof("watching %s (delay %s), Ctrl+C to stop\n", path, delay)
		w := &watch.Watcher{Path: path, Delay: delay, Log: r.log, Pass: pass}
		err = w.Run(ctx)
	}

	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(cmd.ErrOrStderr(), "\nStopped.")
		return nil
	}

	return err
}
