package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/kwv/outliner/trace"
)

// AppOptions carries the CLI flag values
type AppOptions struct {
	Input      string
	Output     string
	Format     string
	ConfigFile string
	Threshold  int

	TurdSize     int
	TurnPolicy   string
	AlphaMax     float64
	OptTolerance float64

	Resolution  int
	SimplifyTol float64
	Scale       float64
	WriteParams string
	Info        bool
	Quiet       bool
}

// App encapsulates the application state and dependencies
type App struct {
	Options AppOptions
	Params  *trace.Params
}

// NewApp creates a new App instance
func NewApp(opts AppOptions) *App {
	return &App{Options: opts}
}

// Run executes the trace pipeline end to end: load parameters, threshold
// the input image, trace it, and write the requested output format.
func (a *App) Run() error {
	if err := a.loadParams(); err != nil {
		return err
	}

	if a.Options.WriteParams != "" {
		if err := trace.SaveParams(a.Options.WriteParams, a.Params); err != nil {
			return err
		}
		log.Printf("Wrote params to %s", a.Options.WriteParams)
	}

	if a.Options.Input == "" {
		return fmt.Errorf("no input image (use -input)")
	}

	if a.Options.Threshold < 0 || a.Options.Threshold > 255 {
		return fmt.Errorf("threshold must be between 0 and 255, got %d", a.Options.Threshold)
	}
	bm, err := trace.FromImageFile(a.Options.Input, uint8(a.Options.Threshold))
	if err != nil {
		return err
	}
	log.Printf("Loaded %s (%dx%d)", a.Options.Input, bm.Width(), bm.Height())

	// cancel cleanly on Ctrl+C; partially traced results are dropped
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := trace.Trace(ctx, bm, a.Params)
	if err != nil {
		return fmt.Errorf("tracing %s: %w", a.Options.Input, err)
	}

	if result.Empty() {
		log.Printf("No contours survived despeckling; nothing to write")
		return nil
	}

	if a.Options.Info || !a.Options.Quiet {
		a.printInfo(result)
	}

	if a.Options.Output == "" {
		return nil
	}
	return a.writeOutput(bm, result)
}

// loadParams merges the optional config file with the CLI overrides.
// Priority: CLI flag > config file > default.
func (a *App) loadParams() error {
	params := trace.DefaultParams()
	if a.Options.ConfigFile != "" {
		loaded, err := trace.LoadParams(a.Options.ConfigFile)
		if err != nil {
			return err
		}
		params = loaded
		log.Printf("Loaded params from %s", a.Options.ConfigFile)
	}

	if a.Options.TurdSize >= 0 {
		params.TurdSize = a.Options.TurdSize
	}
	if a.Options.TurnPolicy != "" {
		params.TurnPolicy = trace.TurnPolicy(a.Options.TurnPolicy)
	}
	if a.Options.AlphaMax >= 0 {
		params.AlphaMax = a.Options.AlphaMax
	}
	if a.Options.OptTolerance >= 0 {
		params.OptTolerance = a.Options.OptTolerance
	}

	if !a.Options.Quiet {
		params.Progress = func(level trace.ProgressLevel, fraction float64) {
			if fraction >= 1 {
				name := "path list"
				if level == trace.ProgressTracing {
					name = "tracing"
				}
				log.Printf("[PROGRESS] %s done", name)
			}
		}
	}

	if err := params.Validate(); err != nil {
		return err
	}
	a.Params = params
	return nil
}

// printInfo summarizes the trace on stdout
func (a *App) printInfo(result *trace.Result) {
	paths := result.Paths()
	corners, beziers := 0, 0
	for _, p := range paths {
		for _, seg := range p.FinalCurve().Segs {
			if seg.Tag == trace.SegCorner {
				corners++
			} else {
				beziers++
			}
		}
	}
	fmt.Printf("Traced %d contour(s), %d top-level\n", len(paths), len(result.Roots))
	fmt.Printf("Segments: %d corners, %d curves\n", corners, beziers)
	result.Walk(func(p *trace.Path, depth int) {
		kind := "fill"
		if !p.Sign {
			kind = "hole"
		}
		fmt.Printf("%s- %s: %d points, area %d, %d segments\n",
			strings.Repeat("  ", depth), kind, p.Len(), p.Area, p.FinalCurve().Len())
	})
}

// writeOutput writes the trace in the requested format
func (a *App) writeOutput(bm *trace.Bitmap, result *trace.Result) error {
	switch a.Options.Format {
	case "svg", "png":
		renderer := trace.NewVectorRenderer(result)
		if a.Options.Scale > 0 {
			renderer.Scale = a.Options.Scale
		}

		f, err := os.Create(a.Options.Output)
		if err != nil {
			return fmt.Errorf("creating output file %s: %w", a.Options.Output, err)
		}
		defer f.Close()

		if a.Options.Format == "svg" {
			if err := renderer.RenderToSVG(f); err != nil {
				return fmt.Errorf("rendering SVG: %w", err)
			}
		} else {
			if err := renderer.RenderToPNG(f); err != nil {
				return fmt.Errorf("rendering PNG: %w", err)
			}
		}

	case "geojson":
		fc := result.ToGeoJSON(a.Options.Resolution, a.Options.SimplifyTol)
		data, err := json.MarshalIndent(fc, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling GeoJSON: %w", err)
		}
		if err := os.WriteFile(a.Options.Output, data, 0644); err != nil {
			return fmt.Errorf("writing GeoJSON: %w", err)
		}

	case "preview":
		renderer := trace.NewPreviewRenderer(bm, result)
		if err := renderer.SavePNG(a.Options.Output); err != nil {
			return err
		}

	default:
		return fmt.Errorf("unknown format %q (must be svg, png, geojson, or preview)", a.Options.Format)
	}

	log.Printf("Created %s: %s", a.Options.Format, a.Options.Output)
	return nil
}
