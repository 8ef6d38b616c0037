package export

import (
	"math"
	"os"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/neurochelplus/NeuroScreenCaster/internal/compose"
	"github.com/neurochelplus/NeuroScreenCaster/internal/corerr"
	"github.com/neurochelplus/NeuroScreenCaster/internal/cursor"
	"github.com/neurochelplus/NeuroScreenCaster/internal/segment"
	"github.com/neurochelplus/NeuroScreenCaster/internal/spring"
	"github.com/neurochelplus/NeuroScreenCaster/internal/telemetry"
)

// Encoder is the external collaborator contract: it
// accepts composed RGBA frames at the declared dimensions and an
// output path, and reports only Ok/terminal-error; progress is the
// driver's job, not the encoder's.
type Encoder interface {
	WriteFrame(rgba []byte, width, height int) error
	Close() error
}

// FrameSource supplies the decoded source frame at a timeline
// timestamp, in RGBA.
type FrameSource interface {
	FrameAt(tsMs float64) (rgba []byte, width, height int, err error)
}

// Params bundles one export run's configuration.
type Params struct {
	OutputFps         int
	OutputWidth       int
	OutputHeight      int
	DurationMs        float64
	CursorSizeSetting float64
	OutputPath        string
}

// Driver runs one export session. A single Driver is scoped to one
// export; cancellation is one atomic flag polled between frames, so
// Cancel is safe to call from any goroutine, including the UI thread,
// without locking.
type Driver struct {
	log       *zap.SugaredLogger
	cancelled int32
	status    atomic.Value
}

// NewDriver constructs a Driver. A nil logger falls back to a no-op.
func NewDriver(log *zap.SugaredLogger) *Driver {
	d := &Driver{log: telemetry.Or(log)}
	d.status.Store(Status{})
	return d
}

// Cancel requests cooperative cancellation; Run observes it at the
// next frame boundary.
func (d *Driver) Cancel() { atomic.StoreInt32(&d.cancelled, 1) }

// Status returns a snapshot of the current export status.
func (d *Driver) Status() Status { return d.status.Load().(Status) }

func (d *Driver) publish(s Status) { d.status.Store(s) }

// Run drives the export end to end: precompute the camera track at
// p.OutputFps (not 60fps; preview and export integrate at their own
// independent cadence), iterate frames, compose transform plus cursor,
// and hand each finished frame to enc. Run blocks until completion,
// cancellation, or a terminal encoder error; it never retries
// automatically.
func (d *Driver) Run(segs []segment.Segment, cursorSamples []cursor.Sample, clickTimesMs []float64, src FrameSource, enc Encoder, p Params) Status {
	startedAt := time.Now().UnixMilli()
	d.publish(Status{IsRunning: true, Progress: 0, Message: "exporting", OutputPath: p.OutputPath, StartedAtMs: startedAt})

	frameStepMs := 1000.0 / float64(p.OutputFps)
	track := spring.Integrate(segs, p.DurationMs, frameStepMs)
	pulse := cursor.NewPulseSignal(clickTimesMs)
	totalFrames := int(math.Ceil(p.DurationMs / frameStepMs))
	if totalFrames < 1 {
		totalFrames = 1
	}

	for frame := 0; frame <= totalFrames; frame++ {
		if atomic.LoadInt32(&d.cancelled) == 1 {
			return d.finishCancelled(enc, p)
		}

		ts := float64(frame) * frameStepMs
		if ts > p.DurationMs {
			ts = p.DurationMs
		}

		rect := spring.SampleAt(track, ts)
		xform := compose.RectTransform(rect, float64(p.OutputWidth), float64(p.OutputHeight))
		placement := compose.ComposeCursor(ts, cursorSamples, pulse, xform, p.CursorSizeSetting, float64(p.OutputWidth), float64(p.OutputHeight))

		srcRGBA, srcW, srcH, err := src.FrameAt(ts)
		if err != nil {
			return d.finishError(enc, p, corerr.New(corerr.ResourceUnavailable, "export.frameSource", err))
		}

		framePix := compose.Composite(srcRGBA, srcW, srcH, xform, placement, p.OutputWidth, p.OutputHeight)
		if err := enc.WriteFrame(framePix, p.OutputWidth, p.OutputHeight); err != nil {
			return d.finishError(enc, p, corerr.New(corerr.ResourceUnavailable, "export.encoder", err))
		}

		progress := float64(frame) / float64(totalFrames)
		d.publish(Status{IsRunning: true, Progress: progress, Message: "exporting", OutputPath: p.OutputPath, StartedAtMs: startedAt})
	}

	if err := enc.Close(); err != nil {
		return d.finishError(enc, p, corerr.New(corerr.ResourceUnavailable, "export.encoder.close", err))
	}

	final := Status{
		IsRunning:    false,
		Progress:     1,
		Message:      "done",
		OutputPath:   p.OutputPath,
		StartedAtMs:  startedAt,
		FinishedAtMs: time.Now().UnixMilli(),
	}
	d.publish(final)
	return final
}

func (d *Driver) finishCancelled(enc Encoder, p Params) Status {
	d.log.Infow("export: cancelled", "output", p.OutputPath)
	_ = enc.Close()
	_ = os.Remove(p.OutputPath)
	final := Status{
		IsRunning:    false,
		Progress:     d.Status().Progress,
		Message:      "cancelled",
		OutputPath:   p.OutputPath,
		Error:        "cancelled",
		FinishedAtMs: time.Now().UnixMilli(),
	}
	d.publish(final)
	return final
}

func (d *Driver) finishError(enc Encoder, p Params, err error) Status {
	d.log.Errorw("export: failed", "error", err)
	_ = enc.Close()
	final := Status{
		IsRunning:    false,
		Progress:     d.Status().Progress,
		Message:      "failed",
		OutputPath:   p.OutputPath,
		Error:        err.Error(),
		FinishedAtMs: time.Now().UnixMilli(),
	}
	d.publish(final)
	return final
}
