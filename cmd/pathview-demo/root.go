package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ayn2op/pathview"
	"github.com/ayn2op/pathview/curve"
	"github.com/ayn2op/pathview/delegate"
	"github.com/ayn2op/pathview/internal/pathdef"
	"github.com/gdamore/tcell/v3"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
)

type options struct {
	items      int
	pathItems  int
	cache      int
	rangeStart float64
	rangeEnd   float64
	rangeMode  string
	snap       string
	direction  string
	shape      string
	pathFile   string
	logFile    string
	snapshot   string
	duration   time.Duration
	async      bool
	showPath   bool
	highlight  bool
}

func newRootCommand() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:          "pathview-demo",
		Short:        "Scroll a circular list of items laid out along a path",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.items, "items", "n", 24, "Number of items in the model")
	f.IntVarP(&opts.pathItems, "path-items", "p", 7, "Items shown on the path at once (0 shows all)")
	f.IntVar(&opts.cache, "cache", 2, "Items kept alive beyond the visible window")
	f.Float64Var(&opts.rangeStart, "range-start", 0.5, "Preferred highlight begin, between 0 and 1")
	f.Float64Var(&opts.rangeEnd, "range-end", 0.5, "Preferred highlight end, between 0 and 1")
	f.StringVar(&opts.rangeMode, "range-mode", "strict", "Highlight range mode: none, apply or strict")
	f.StringVar(&opts.snap, "snap", "item", "Snap mode: none, item or one")
	f.StringVar(&opts.direction, "direction", "shortest", "Movement direction: shortest, positive or negative")
	f.StringVar(&opts.shape, "shape", "arc", "Built-in path when no --path is given: arc or ellipse")
	f.StringVar(&opts.pathFile, "path", "", "Path definition file (.hcl or .json)")
	f.StringVar(&opts.logFile, "log", "", "Write diagnostics to this file")
	f.StringVar(&opts.snapshot, "snapshot", "", "Print one frame of the given size (e.g. 80x20) instead of running")
	f.DurationVar(&opts.duration, "duration", 250*time.Millisecond, "Highlight move duration")
	f.BoolVar(&opts.async, "async", false, "Create items asynchronously")
	f.BoolVar(&opts.showPath, "show-path", false, "Trace the path")
	f.BoolVar(&opts.highlight, "highlight", true, "Mark the highlight position")
	return cmd
}

func run(cmd *cobra.Command, opts options) error {
	logger, closeLog, err := openLog(opts.logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	view, err := configure(pathview.NewPathView(), opts)
	if err != nil {
		return err
	}
	view.SetLogger(logger)

	var path curve.Curve
	if opts.pathFile != "" {
		dir, name := filepath.Split(opts.pathFile)
		if dir == "" {
			dir = "."
		}
		if path, err = pathdef.Load(osfs.New(dir), name); err != nil {
			return err
		}
	} else if opts.shape != "arc" && opts.shape != "ellipse" {
		return fmt.Errorf("unknown shape %q", opts.shape)
	}

	labels := make([]string, opts.items)
	for i := range labels {
		labels[i] = fmt.Sprintf("item %d", i)
	}
	model := delegate.NewModel(func(_ int, label string) any {
		return pathview.NewItemLabel(label).SetMaxWidth(12)
	}, labels...).SetSynchronous(!opts.async)

	s := newStage(view, model, opts.shape, path)
	s.showPath = opts.showPath

	if opts.snapshot != "" {
		width, height, err := parseSize(opts.snapshot)
		if err != nil {
			return err
		}
		snap := pathview.NewSnapshot(width, height).Capture(s)
		if model.Flush() > 0 {
			snap.Capture(s)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), snap.String())
		return err
	}

	app := pathview.NewApplication()
	if opts.async {
		// Incubation is requested from inside the event loop, which must not
		// block on its own update queue.
		model.SetIncubateFunc(func() {
			go app.QueueUpdateDraw(func() { model.Flush() })
		})
	}
	logger.Printf("pathview-demo: %d items, path items %d", opts.items, opts.pathItems)
	return app.SetRoot(s).Run()
}

// configure applies the command line options to view.
func configure(view *pathview.PathView, opts options) (*pathview.PathView, error) {
	rangeMode, err := parseRangeMode(opts.rangeMode)
	if err != nil {
		return nil, err
	}
	snap, err := parseSnapMode(opts.snap)
	if err != nil {
		return nil, err
	}
	direction, err := parseDirection(opts.direction)
	if err != nil {
		return nil, err
	}
	if opts.items < 0 {
		return nil, fmt.Errorf("items must not be negative, got %d", opts.items)
	}
	if opts.rangeStart < 0 || opts.rangeStart > 1 || opts.rangeEnd < 0 || opts.rangeEnd > 1 {
		return nil, fmt.Errorf("highlight range must lie within [0, 1], got %v..%v", opts.rangeStart, opts.rangeEnd)
	}

	view.
		SetPreferredHighlightBegin(opts.rangeStart).
		SetPreferredHighlightEnd(opts.rangeEnd).
		SetHighlightRangeMode(rangeMode).
		SetSnapMode(snap).
		SetMovementDirection(direction).
		SetCacheItemCount(opts.cache).
		SetHighlightMoveDuration(opts.duration).
		SetShowPath(opts.showPath)
	if opts.pathItems > 0 {
		view.SetPathItemCount(opts.pathItems)
	}
	if opts.highlight {
		view.SetHighlight(func() pathview.Primitive { return pathview.NewHighlightMarker(14) })
	}
	view.SetBorders(pathview.BordersAll).
		SetBorderSet(pathview.BorderSetRound()).
		SetTitle(" pathview ").
		SetTitleStyle(tcell.StyleDefault.Foreground(pathview.Styles.TitleColor).Bold(true))
	return view, nil
}

func openLog(name string) (*log.Logger, func(), error) {
	if name == "" {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return log.New(f, "", log.LstdFlags), func() { f.Close() }, nil
}

func parseRangeMode(s string) (pathview.HighlightRangeMode, error) {
	switch strings.ToLower(s) {
	case "none":
		return pathview.NoHighlightRange, nil
	case "apply":
		return pathview.ApplyRange, nil
	case "strict":
		return pathview.StrictlyEnforceRange, nil
	}
	return 0, fmt.Errorf("unknown range mode %q", s)
}

func parseSnapMode(s string) (pathview.SnapMode, error) {
	switch strings.ToLower(s) {
	case "none":
		return pathview.NoSnap, nil
	case "item":
		return pathview.SnapToItem, nil
	case "one":
		return pathview.SnapOneItem, nil
	}
	return 0, fmt.Errorf("unknown snap mode %q", s)
}

func parseDirection(s string) (pathview.MovementDirection, error) {
	switch strings.ToLower(s) {
	case "shortest":
		return pathview.Shortest, nil
	case "positive":
		return pathview.Positive, nil
	case "negative":
		return pathview.Negative, nil
	}
	return 0, fmt.Errorf("unknown movement direction %q", s)
}

func parseSize(s string) (int, int, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q, want WIDTHxHEIGHT", s)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid width in %q: %w", s, err)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid height in %q: %w", s, err)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("size %q must be positive", s)
	}
	return width, height, nil
}
