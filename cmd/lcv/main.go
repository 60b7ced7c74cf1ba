package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/Geddart/linearcal/pkg/config"
	"github.com/Geddart/linearcal/pkg/loader"
	"github.com/Geddart/linearcal/pkg/render"
	"github.com/Geddart/linearcal/pkg/timeline"
	"github.com/Geddart/linearcal/pkg/ui"
	"github.com/Geddart/linearcal/pkg/version"
	"github.com/Geddart/linearcal/pkg/watcher"
)

func main() {
	cpuProfile := flag.String("cpu-profile", "", "Write CPU profile to file")
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	configPath := flag.String("config", "", "Config file path (default: XDG config dir)")
	snapshot := flag.String("snapshot", "", "Render one frame to a PNG/SVG file and exit")
	width := flag.Float64("width", 1600, "Snapshot width in pixels")
	height := flag.Float64("height", 400, "Snapshot height in pixels")
	at := flag.String("at", "", "Center time (RFC3339 or YYYY-MM-DD; default: now)")
	span := flag.String("span", "month", "Initial zoom preset (day, week, month, year, decade, ...)")
	watch := flag.Bool("watch", false, "Reload when the event file changes (TUI only)")
	flag.Parse()

	// In snapshot mode or without a TTY, suppress termenv's TTY probing so
	// control sequences never leak into captured output.
	if *snapshot != "" || !term.IsTerminal(int(os.Stdout.Fd())) {
		_ = os.Setenv("CI", "1")
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	if *help {
		fmt.Println("Usage: lcv [options] <events.json|events.db>...")
		fmt.Println("\nA pan/zoomable timeline viewer for event files.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("lcv %s\n", version.Version)
		os.Exit(0)
	}

	var cfg config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFrom(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	paths := flag.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "No event files given. Run lcv --help for usage.")
		os.Exit(1)
	}

	result, err := loader.Load(context.Background(), paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading events: %v\n", err)
		os.Exit(1)
	}
	lanes := cfg.Lanes
	if len(result.Lanes) > 0 {
		lanes = result.Lanes
	}

	center, err := parseCenter(*at, cfg.Location())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing --at: %v\n", err)
		os.Exit(1)
	}

	tl := timeline.New(center, 1e-6, *width, *height, timeline.Options{
		Lanes:           lanes,
		MaxInstances:    cfg.Render.MaxInstances,
		Location:        cfg.Location(),
		ZoomSensitivity: cfg.Input.ZoomSensitivity,
		Seasons:         cfg.Render.Seasons,
	})
	tl.Packer.MinWidthPx = cfg.Render.MinWidthPx
	tl.Insert(result.Events)
	if _, err := tl.SetZoomPreset(*span); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *snapshot != "" {
		if err := saveSnapshot(tl, *snapshot); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing snapshot: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s (%d events)\n", *snapshot, len(result.Events))
		return
	}

	// TUI mode: lane bands collapse to one terminal row each.
	tl.Packer.Layout = render.LaneLayout{Top: 0, LaneHeight: 1, LaneGap: 0}
	tl.Packer.MinWidthPx = 1

	p := tea.NewProgram(ui.NewModel(tl, cfg), tea.WithAltScreen())

	if *watch {
		w, err := watcher.New(paths[0], watcher.WithOnChange(func() {
			res, err := loader.Load(context.Background(), paths)
			if err != nil {
				p.Send(ui.ReloadMsg{Err: err})
				return
			}
			p.Send(ui.ReloadMsg{Events: res.Events})
		}))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error watching %s: %v\n", paths[0], err)
			os.Exit(1)
		}
		if err := w.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Error watching %s: %v\n", paths[0], err)
			os.Exit(1)
		}
		defer w.Stop()
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running UI: %v\n", err)
		os.Exit(1)
	}
}

func parseCenter(at string, loc *time.Location) (float64, error) {
	if at == "" {
		return float64(time.Now().UnixMilli()), nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, at, loc); err == nil {
			return float64(t.UnixMilli()), nil
		}
	}
	return 0, fmt.Errorf("unrecognized time %q (want RFC3339 or YYYY-MM-DD)", at)
}

func saveSnapshot(tl *timeline.Timeline, path string) error {
	frame := tl.Frame(float64(time.Now().UnixMilli()))
	return render.SaveSnapshot(render.SnapshotOptions{
		Path:    path,
		State:   frame.State,
		Lines:   frame.Grid.Lines,
		Events:  frame.Instances,
		Overlay: frame.Overlay,
	})
}
