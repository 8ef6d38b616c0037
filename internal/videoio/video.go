// Package videoio adapts github.com/AlexEidt/Vidio into the export
// driver's FrameSource/Encoder contracts, and into the duration probe
// the QA smoke-check uses for --check-export.
package videoio

import (
	"fmt"

	vidio "github.com/AlexEidt/Vidio"
)

// Decoder adapts a Vidio-decoded source video into export.FrameSource.
// Vidio only exposes forward iteration, so FrameAt advances the
// decoder sequentially and serves the most recently decoded frame for
// any timestamp that falls inside it.
type Decoder struct {
	video    *vidio.Video
	fps      float64
	width    int
	height   int
	frameIdx int
	last     []byte
}

// OpenDecoder opens path for sequential RGBA frame access.
func OpenDecoder(path string) (*Decoder, error) {
	v, err := vidio.NewVideo(path)
	if err != nil {
		return nil, fmt.Errorf("videoio: open %s: %w", path, err)
	}
	return &Decoder{video: v, fps: v.FPS(), width: v.Width(), height: v.Height(), frameIdx: -1}, nil
}

func (d *Decoder) Close() error { d.video.Close(); return nil }

func (d *Decoder) Width() int  { return d.width }
func (d *Decoder) Height() int { return d.height }

// DurationMs reports the source video's decoded duration, used by the
// QA smoke-check's duration-drift comparison against Project.durationMs.
func (d *Decoder) DurationMs() float64 {
	if d.fps <= 0 {
		return 0
	}
	return float64(d.video.Frames()) / d.fps * 1000.0
}

// FrameAt implements export.FrameSource: it reads forward
// until the decode cursor reaches the frame covering tsMs and returns
// a defensive copy of that frame's RGBA buffer.
func (d *Decoder) FrameAt(tsMs float64) (rgba []byte, width, height int, err error) {
	target := int(tsMs / 1000.0 * d.fps)
	for d.frameIdx < target {
		if !d.video.Read() {
			break
		}
		d.frameIdx++
		d.last = d.video.FrameBuffer()
	}
	if d.last == nil {
		return nil, 0, 0, fmt.Errorf("videoio: no frame available at %gms", tsMs)
	}
	out := make([]byte, len(d.last))
	copy(out, d.last)
	return out, d.width, d.height, nil
}

// Encoder adapts a Vidio VideoWriter into export.Encoder.
type Encoder struct {
	writer *vidio.VideoWriter
}

// NewEncoder opens path for writing RGBA frames at width/height/fps.
func NewEncoder(path string, width, height int, fps float64) (*Encoder, error) {
	w, err := vidio.NewVideoWriter(path, width, height, &vidio.Options{FPS: fps})
	if err != nil {
		return nil, fmt.Errorf("videoio: create writer for %s: %w", path, err)
	}
	return &Encoder{writer: w}, nil
}

func (e *Encoder) WriteFrame(rgba []byte, width, height int) error {
	return e.writer.Write(rgba)
}

func (e *Encoder) Close() error { e.writer.Close(); return nil }
