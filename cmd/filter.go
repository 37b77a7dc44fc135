package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/brogergvhs/dubfilter/internal/config"
	"github.com/brogergvhs/dubfilter/internal/filter"
	"github.com/brogergvhs/dubfilter/internal/page"
	"github.com/brogergvhs/dubfilter/internal/ui"
	"github.com/brogergvhs/dubfilter/internal/util"

	"github.com/spf13/cobra"
)

var (
	flagOutput  string
	flagInPlace bool
	flagDryRun  bool
)

func init() {
	filterCmd := &cobra.Command{
		Use:   "filter [page.html ...]",
		Short: "Hide dubbed entries in saved calendar pages. Reads stdin and writes stdout when no file is given",
		RunE:  runFilter,
	}

	addRuleFlags(filterCmd)
	filterCmd.Flags().StringVar(&flagOutput, "output", "", "output folder for filtered pages")
	filterCmd.Flags().BoolVar(&flagInPlace, "in-place", false, "overwrite the input files")
	filterCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "report what would be hidden, write nothing")

	rootCmd.AddCommand(filterCmd)
}

type runner struct {
	cfg *config.Config
	cls *filter.Classifier
	log *ui.Logger
}

func newRunner(opts config.Options, logOut io.Writer) (*runner, string, error) {
	cfg, usedPath, err := config.LoadMerged(opts)
	if err != nil {
		return nil, "", err
	}

	cls, err := newClassifier(cfg)
	if err != nil {
		return nil, "", err
	}

	r := &runner{cfg: cfg, cls: cls, log: ui.NewLogger(logOut, cfg.Debug)}
	r.log.Debugf("language pattern: %s\n", cls.Pattern())

	return r, usedPath, nil
}

// pass filters one page. Hidden and orphaned titles go to the debug log.
func (r *runner) pass(in io.Reader, name string) ([]byte, filter.Result, error) {
	out, res, err := page.FilterHTML(in, r.cfg.Selectors(), r.cls)
	if err != nil {
		return nil, res, fmt.Errorf("%s: %w", name, err)
	}

	for _, t := range res.HiddenTitles {
		r.log.Debugf("%s: hide %q\n", name, t)
	}
	for _, t := range res.OrphanedTitles {
		r.log.Debugf("%s: no %s around %q, skipped\n", name, r.cfg.ContainerSelector, t)
	}

	return out, res, nil
}

func runFilter(cmd *cobra.Command, args []string) error {
	opts := ruleOptions()
	opts.Output = flagOutput
	opts.InPlace = flagInPlace

	stderr := cmd.ErrOrStderr()
	r, usedPath, err := newRunner(opts, stderr)
	if err != nil {
		return err
	}

	if usedPath != "" {
		r.log.Debugf("Config file: %s\n", usedPath)
	}
	if r.cfg.Debug {
		fmt.Fprintln(stderr, "Full config:")
		r.cfg.Print(stderr)
		fmt.Fprintln(stderr)
	}

	if len(args) == 0 {
		return r.filterStream(cmd.InOrStdin(), cmd.OutOrStdout())
	}

	if !r.cfg.InPlace && r.cfg.Output == "" && !flagDryRun {
		if len(args) > 1 {
			return fmt.Errorf("multiple pages need --output or --in-place")
		}
		return r.filterFileTo(args[0], cmd.OutOrStdout())
	}

	if !flagDryRun {
		if err := r.checkTargets(args); err != nil {
			return err
		}
	}

	if r.cfg.Output != "" && !r.cfg.InPlace && !flagDryRun {
		if err := os.MkdirAll(r.cfg.Output, 0755); err != nil {
			return fmt.Errorf("cannot create output folder: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return r.filterFiles(ctx, args, stderr)
}

func (r *runner) filterStream(in io.Reader, out io.Writer) error {
	data, res, err := r.pass(in, "stdin")
	if err != nil {
		return err
	}

	if flagDryRun {
		printDryRun(out, "stdin", res)
		return nil
	}

	r.log.Debugf("stdin: %d/%d entries hidden\n", res.Hidden, res.Scanned)
	_, err = out.Write(data)
	return err
}

func (r *runner) filterFileTo(path string, out io.Writer) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	data, res, err := r.pass(bytes.NewReader(raw), path)
	if err != nil {
		return err
	}

	r.log.Debugf("%s: %d/%d entries hidden\n", path, res.Hidden, res.Scanned)
	_, err = out.Write(data)
	return err
}

func (r *runner) filterFiles(ctx context.Context, paths []string, stderr io.Writer) error {
	var pm *ui.MPBProgressManager
	var handle *ui.ProgressHandle
	if len(paths) > 1 && !flagDryRun {
		pm = ui.NewProgressManager(stderr)
		handle = pm.Register("Pages")
		handle.SetTotal(len(paths))
	}

	if !flagDryRun {
		util.CleanupUnfinishedTempFiles(stderr, r.targets(paths)...)
	}

	stats := &ui.Stats{}
	start := time.Now()

	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}

		res, size, err := r.filterFile(path)
		stats.TotalFiles.Add(1)
		if err != nil {
			stats.FailedFiles.Add(1)
			r.log.Errorf("%v\n", err)
			continue
		}

		stats.TotalEntries.Add(int64(res.Scanned))
		stats.HiddenEntries.Add(int64(res.Hidden))
		stats.TotalBytes.Add(size)

		if flagDryRun {
			printDryRun(stderr, path, res)
		}
		if handle != nil {
			handle.Done(res.Hidden, size)
		}
	}

	if handle != nil {
		handle.MarkDone()
		pm.Close()
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("interrupted")
	}

	fmt.Fprintln(stderr)
	fmt.Fprintln(stderr, "Filter Summary:")
	fmt.Fprintf(stderr, "Pages:   %d\n", stats.TotalFiles.Load())
	fmt.Fprintf(stderr, "Entries: %d\n", stats.TotalEntries.Load())
	fmt.Fprintf(stderr, "Hidden:  %d\n", stats.HiddenEntries.Load())
	fmt.Fprintf(stderr, "Data:    %s\n", util.Human(stats.TotalBytes.Load()))
	fmt.Fprintf(stderr, "Time:    %s\n", time.Since(start).Round(time.Millisecond))

	if n := stats.FailedFiles.Load(); n > 0 {
		return fmt.Errorf("%d of %d pages failed", n, len(paths))
	}

	return nil
}

func (r *runner) filterFile(path string) (filter.Result, int64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return filter.Result{}, 0, err
	}

	data, res, err := r.pass(bytes.NewReader(raw), path)
	if err != nil {
		return res, 0, err
	}

	if flagDryRun {
		return res, int64(len(raw)), nil
	}

	dst := r.target(path)
	wrote, err := util.WriteIfChanged(dst, data)
	if err != nil {
		return res, 0, err
	}
	if !wrote {
		r.log.Debugf("%s: unchanged\n", dst)
	}

	return res, int64(len(raw)), nil
}

func (r *runner) target(path string) string {
	if r.cfg.InPlace {
		return path
	}

	return util.OutputPath(r.cfg.Output, path)
}

func (r *runner) targets(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, r.target(p))
	}

	return out
}

// checkTargets fails when two different inputs would be written to the
// same file, e.g. a/cal.html and b/cal.html with --output.
func (r *runner) checkTargets(paths []string) error {
	seen := make(map[string]string, len(paths))
	for _, p := range paths {
		dst := filepath.Clean(r.target(p))
		if prev, ok := seen[dst]; ok && filepath.Clean(prev) != filepath.Clean(p) {
			return fmt.Errorf("%s and %s would both be written to %s", prev, p, dst)
		}
		seen[dst] = p
	}

	return nil
}

func printDryRun(w io.Writer, name string, res filter.Result) {
	fmt.Fprintf(w, "%s: %d of %d entries would be hidden\n", name, res.Hidden, res.Scanned)
	for i, t := range res.HiddenTitles {
		fmt.Fprintf(w, "%3d) %s\n", i+1, t)
	}
	if res.Orphaned > 0 {
		fmt.Fprintf(w, "     %d dubbed titles have no container and stay as they are\n", res.Orphaned)
	}
}
