package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"flowkit/export"
	"flowkit/history"
	"flowkit/layout"
	"flowkit/scene"
	"flowkit/shape"
	"flowkit/terminal"
)

func main() {
	var (
		interactive = flag.Bool("i", false, "Interactive terminal editor")
		format      = flag.String("format", "png", "Export format: png, pdf, json")
		outputFile  = flag.String("o", "", "Output file (default: derived from format)")
		autosize    = flag.Bool("autosize", false, "Recompute shape sizes from their labels")
		arrange     = flag.Bool("arrange", false, "Grid-arrange shapes and separate overlaps")
		grid        = flag.Bool("grid", false, "Add a background grid (interactive mode)")
		capacity    = flag.Int("history", history.DefaultCapacity, "Undo history capacity")
		verbose     = flag.Bool("v", false, "Verbose logging")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	sc := scene.New()
	if flag.NArg() > 0 {
		if err := loadScene(sc, flag.Arg(0)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if *autosize {
		autosizeScene(sc)
	}
	if *arrange {
		arrangeScene(sc)
	}

	if *interactive {
		if *grid {
			sc.AddGrid(1600, 1200, 20)
		}
		hist := history.New(sc, history.WithCapacity(*capacity))
		hist.Attach()
		defer hist.Close()

		if err := terminal.Run(sc, hist, *outputFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := exportScene(sc, *format, *outputFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadScene reads a snapshot file onto the surface. Records that fail to
// decode are skipped, matching the history restore policy.
func loadScene(sc *scene.Scene, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	snap, err := scene.ReadSnapshot(f)
	if err != nil {
		return err
	}
	for i, rec := range snap.Objects {
		o, err := scene.Decode(rec)
		if err != nil {
			slog.Warn("skipping object in scene file", "index", i, "error", err)
			continue
		}
		sc.Add(o)
	}
	if snap.BackgroundColor != "" {
		sc.SetBackground(snap.BackgroundColor)
	}
	return nil
}

// autosizeScene recomputes every labeled shape's geometry, then normalizes
// the batch so generated diagrams stay visually consistent.
func autosizeScene(sc *scene.Scene) {
	var objs []*scene.Object
	var reqs []shape.Request
	for _, o := range sc.Objects() {
		if !scene.IsUserContent(o) || o.Type == "line" || o.Type == "text" {
			continue
		}
		opts := shape.SizeOptions{FontSize: o.FontSize}
		objs = append(objs, o)
		reqs = append(reqs, shape.Request{Text: o.Text, Type: shape.ParseType(o.Type), Options: opts})
	}
	for i, size := range shape.Normalize(reqs) {
		objs[i].Width = float64(size.Width)
		objs[i].Height = float64(size.Height)
		sc.NotifyModified(objs[i])
	}
}

// arrangeScene re-places sized shapes on a grid and pushes any remaining
// overlaps apart.
func arrangeScene(sc *scene.Scene) {
	var objs []*scene.Object
	var placed []layout.Placed
	for _, o := range sc.Objects() {
		if !scene.IsUserContent(o) || o.Type == "line" || o.Type == "text" {
			continue
		}
		objs = append(objs, o)
		placed = append(placed, layout.Placed{
			X: int(o.X), Y: int(o.Y),
			Width: int(o.Width), Height: int(o.Height),
		})
	}
	for i, p := range layout.ResolveOverlaps(placed, layout.DefaultSpacing) {
		objs[i].X = float64(p.X)
		objs[i].Y = float64(p.Y)
		sc.NotifyModified(objs[i])
	}
}

func exportScene(sc *scene.Scene, format, out string) error {
	snap := terminal.Capture(sc)
	if out == "" {
		out = "flowkit." + format
	}
	switch strings.ToLower(format) {
	case "png":
		return export.PNG(snap, out, export.PNGOptions{})
	case "pdf":
		return export.PDF(snap, out)
	case "json":
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		return export.JSON(snap, f)
	default:
		return fmt.Errorf("unknown format: %s (use png, pdf or json)", format)
	}
}

func printHelp() {
	fmt.Println(`flowkit - flowchart canvas core

Usage:
  flowkit [flags] [scene.json]

Flags:
  -i           Interactive terminal editor
  -format      Export format: png, pdf, json (default png)
  -o           Output file
  -autosize    Recompute shape sizes from their labels
  -arrange     Grid-arrange shapes and separate overlaps
  -grid        Add a background grid (interactive mode)
  -history     Undo history capacity (default 50)
  -v           Verbose logging

Interactive keys:
  arrows/hjkl  Move cursor          r c d e t  Add shape at cursor
  Enter        Edit label           x          Delete shape
  u            Undo                 Ctrl-R     Redo
  p            Save PNG             q / Esc    Quit`)
}
