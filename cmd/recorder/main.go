package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/neurochelplus/NeuroScreenCaster/internal/camera"
	"github.com/neurochelplus/NeuroScreenCaster/internal/config"
	"github.com/neurochelplus/NeuroScreenCaster/internal/cursor"
	"github.com/neurochelplus/NeuroScreenCaster/internal/export"
	"github.com/neurochelplus/NeuroScreenCaster/internal/followcursor"
	"github.com/neurochelplus/NeuroScreenCaster/internal/schema"
	"github.com/neurochelplus/NeuroScreenCaster/internal/telemetry"
	"github.com/neurochelplus/NeuroScreenCaster/internal/video"
	"github.com/neurochelplus/NeuroScreenCaster/internal/videoio"
)

// Application is the interactive entry point: a bare fmt.Scanln menu
// loop over a single loaded project, wired onto the camera/compose/
// export core instead of a live capture pipeline.
type Application struct {
	config  *config.Config
	log     *zap.SugaredLogger
	project schema.Project
	events  schema.EventsFile
	driver  *export.Driver
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewApplication() *Application {
	ctx, cancel := context.WithCancel(context.Background())
	return &Application{
		config: config.NewConfig(),
		log:    telemetry.NewLogger("info"),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (app *Application) Run() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go app.handleSignals(sigChan)

	for {
		if err := app.showMenu(); err != nil {
			return err
		}
	}
}

func (app *Application) showMenu() error {
	fmt.Println("\nCommands:")
	fmt.Println("1. Load a project (events.json + project.json)")
	fmt.Println("2. Run the smart camera engine over the loaded project")
	fmt.Println("3. Export the synthesized video")
	fmt.Println("4. Exit")
	fmt.Print("Choose an option: ")

	var choice int
	if _, err := fmt.Scanln(&choice); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}

	switch choice {
	case 1:
		return app.loadProject()
	case 2:
		return app.runCameraEngine()
	case 3:
		return app.exportVideo()
	case 4:
		return app.cleanup()
	default:
		fmt.Println("Invalid option")
		return nil
	}
}

func (app *Application) loadProject() error {
	dir, err := app.prompt("Enter the directory holding project.json and events.json: ")
	if err != nil {
		return err
	}
	p, err := schema.LoadProject(filepath.Join(dir, "project.json"))
	if err != nil {
		return err
	}
	ef, err := schema.LoadEventsFile(filepath.Join(dir, "events.json"))
	if err != nil {
		return err
	}
	if err := schema.ValidatePair(p, ef); err != nil {
		return err
	}
	app.project = p
	app.events = ef
	fmt.Printf("Loaded project %s (%d segments, %d events)\n",
		p.ID, len(p.Timeline.ZoomSegments), len(ef.Events))
	return nil
}

func (app *Application) runCameraEngine() error {
	if app.project.ID == "" {
		fmt.Println("No project loaded")
		return nil
	}
	cfg := camera.Config{
		Policy:       app.config.Camera.Policy,
		ScreenWidth:  float64(app.events.ScreenWidth),
		ScreenHeight: float64(app.events.ScreenHeight),
		VideoWidth:   float64(app.project.VideoWidth),
		VideoHeight:  float64(app.project.VideoHeight),
		DurationMs:   app.project.DurationMs,
	}
	segs := camera.Run(app.events, cfg, app.log)
	if len(segs) == 0 {
		fmt.Println("No eligible clicks found; leaving the timeline unchanged")
		return nil
	}

	samples := cursorSamplesFromEvents(app.events)
	smoothed := cursor.Smooth(samples, app.config.Cursor.SmoothingFactor)
	sampler := followcursor.SamplerFunc(func(tsMs float64) (x, y float64) {
		return cursor.Interpolate(smoothed, tsMs)
	})
	segs = camera.ExpandFollowCursor(segs, sampler, float64(app.events.ScreenWidth), float64(app.events.ScreenHeight))

	app.project.SetSegments(segs)
	fmt.Printf("Camera engine produced %d segments\n", len(segs))
	return nil
}

func (app *Application) exportVideo() error {
	if app.project.ID == "" {
		fmt.Println("No project loaded")
		return nil
	}
	outPath, err := app.prompt("Enter the output path (ex out.mp4): ")
	if err != nil {
		return err
	}

	dec, err := videoio.OpenDecoder(app.project.VideoPath)
	if err != nil {
		return err
	}
	defer dec.Close()

	enc, err := videoio.NewEncoder(outPath, app.config.Export.Width, app.config.Export.Height, app.config.Export.Fps)
	if err != nil {
		return err
	}

	samples := cursorSamplesFromEvents(app.events)
	smoothed := cursor.Smooth(samples, app.config.Cursor.SmoothingFactor)
	clickTimes := clickTimesFromEvents(app.events)

	app.driver = export.NewDriver(app.log)
	bar := video.NewProgressBar("export")
	done := make(chan export.Status, 1)
	go func() {
		done <- app.driver.Run(app.project.Segments(), smoothed, clickTimes, dec, enc, export.Params{
			OutputFps:         int(app.config.Export.Fps),
			OutputWidth:       app.config.Export.Width,
			OutputHeight:      app.config.Export.Height,
			DurationMs:        app.project.DurationMs,
			CursorSizeSetting: app.config.Cursor.Size,
			OutputPath:        outPath,
		})
	}()

	for {
		select {
		case final := <-done:
			bar.Report(final)
			if final.Error != "" {
				return fmt.Errorf("export: %s", final.Error)
			}
			fmt.Printf("Exported to %s\n", final.OutputPath)
			return nil
		default:
			bar.Report(app.driver.Status())
			time.Sleep(50 * time.Millisecond)
		}
	}
}

func cursorSamplesFromEvents(ef schema.EventsFile) []cursor.Sample {
	var out []cursor.Sample
	for _, e := range ef.Events {
		if e.Type == schema.EventMove || e.Type == schema.EventClick {
			out = append(out, cursor.Sample{
				TsMs: e.TsMs,
				X:    e.X / float64(ef.ScreenWidth),
				Y:    e.Y / float64(ef.ScreenHeight),
			})
		}
	}
	return out
}

func clickTimesFromEvents(ef schema.EventsFile) []float64 {
	var out []float64
	for _, e := range ef.Events {
		if e.Type == schema.EventClick {
			out = append(out, e.TsMs)
		}
	}
	return out
}

func (app *Application) prompt(msg string) (string, error) {
	fmt.Print(msg)
	var s string
	if _, err := fmt.Scanln(&s); err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(s), nil
}

func (app *Application) cleanup() error {
	if app.driver != nil {
		app.driver.Cancel()
	}
	app.cancel()
	return fmt.Errorf("exit")
}

func (app *Application) handleSignals(sigChan chan os.Signal) {
	for sig := range sigChan {
		fmt.Printf("\nReceived signal: %v\n", sig)
		if app.driver != nil {
			fmt.Println("Cancelling export...")
			app.driver.Cancel()
		}
		app.cancel()
		return
	}
}

func main() {
	app := NewApplication()
	if err := app.Run(); err != nil && err.Error() != "exit" {
		log.Fatalf("Application error: %v", err)
	}
}
