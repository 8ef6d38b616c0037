package schema

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/neurochelplus/NeuroScreenCaster/internal/corerr"
	"github.com/neurochelplus/NeuroScreenCaster/internal/geometry"
	"github.com/neurochelplus/NeuroScreenCaster/internal/segment"
)

// ProjectSchemaVersion is the only schemaVersion this module accepts
// for project.json.
const ProjectSchemaVersion = 1

// Rect is the JSON-wire shape of a NormalizedRect.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func (r Rect) toGeometry() geometry.Rect {
	return geometry.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

func fromGeometry(r geometry.Rect) Rect {
	return Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

// TargetPoint is the JSON-wire shape of a TargetPoint.
type TargetPoint struct {
	TsMs float64 `json:"ts_ms"`
	Rect Rect    `json:"rect"`
}

// Spring is the JSON-wire shape of CameraSpring.
type Spring struct {
	Mass      float64 `json:"mass"`
	Stiffness float64 `json:"stiffness"`
	Damping   float64 `json:"damping"`
}

// ZoomSegment is the JSON-wire shape of a ZoomSegment.
//
// PanTrajectory is a legacy field: a project file written by an older
// version of this tool may carry panTrajectory instead of TargetPoints
// on a follow-cursor segment. Readers migrate it; writers never
// populate it again.
type ZoomSegment struct {
	ID            string        `json:"id"`
	StartTsMs     float64       `json:"startTs"`
	EndTsMs       float64       `json:"endTs"`
	InitialRect   Rect          `json:"initialRect"`
	TargetPoints  []TargetPoint `json:"targetPoints"`
	Spring        Spring        `json:"spring"`
	Mode          string        `json:"mode"`
	Trigger       string        `json:"trigger"`
	IsAuto        bool          `json:"isAuto"`
	PanTrajectory []TargetPoint `json:"panTrajectory,omitempty"`
}

const (
	modeFixed        = "fixed"
	modeFollowCursor = "follow-cursor"

	triggerAutoClick  = "auto-click"
	triggerAutoScroll = "auto-scroll"
	triggerManual     = "manual"
)

func modeToWire(m segment.Mode) string {
	if m == segment.ModeFollowCursor {
		return modeFollowCursor
	}
	return modeFixed
}

func modeFromWire(s string) segment.Mode {
	if s == modeFollowCursor {
		return segment.ModeFollowCursor
	}
	return segment.ModeFixed
}

func triggerToWire(t segment.Trigger) string {
	switch t {
	case segment.TriggerAutoClick:
		return triggerAutoClick
	case segment.TriggerAutoScroll:
		return triggerAutoScroll
	default:
		return triggerManual
	}
}

func triggerFromWire(s string) segment.Trigger {
	switch s {
	case triggerAutoClick:
		return segment.TriggerAutoClick
	case triggerAutoScroll:
		return segment.TriggerAutoScroll
	default:
		return segment.TriggerManual
	}
}

// ToSegment converts a wire ZoomSegment into the engine's segment.Segment,
// migrating a legacy PanTrajectory into TargetPoints when present and
// TargetPoints itself is empty.
func (z ZoomSegment) ToSegment() segment.Segment {
	points := z.TargetPoints
	if len(points) == 0 && len(z.PanTrajectory) > 0 {
		points = z.PanTrajectory
	}
	out := segment.Segment{
		ID:          z.ID,
		StartTsMs:   z.StartTsMs,
		EndTsMs:     z.EndTsMs,
		InitialRect: z.InitialRect.toGeometry(),
		Spring: segment.Spring{
			Mass:      z.Spring.Mass,
			Stiffness: z.Spring.Stiffness,
			Damping:   z.Spring.Damping,
		},
		Mode:    modeFromWire(z.Mode),
		Trigger: triggerFromWire(z.Trigger),
		IsAuto:  z.IsAuto,
	}
	for _, p := range points {
		out.TargetPoint = append(out.TargetPoint, segment.TargetPoint{TsMs: p.TsMs, Rect: p.Rect.toGeometry()})
	}
	if out.Spring == (segment.Spring{}) {
		out.Spring = segment.DefaultSpring
	}
	return out
}

// FromSegment converts an engine segment.Segment to its wire shape.
// It never emits PanTrajectory: writers stop producing it.
func FromSegment(s segment.Segment) ZoomSegment {
	z := ZoomSegment{
		ID:          s.ID,
		StartTsMs:   s.StartTsMs,
		EndTsMs:     s.EndTsMs,
		InitialRect: fromGeometry(s.InitialRect),
		Spring: Spring{
			Mass:      s.Spring.Mass,
			Stiffness: s.Spring.Stiffness,
			Damping:   s.Spring.Damping,
		},
		Mode:    modeToWire(s.Mode),
		Trigger: triggerToWire(s.Trigger),
		IsAuto:  s.IsAuto,
	}
	for _, p := range s.TargetPoint {
		z.TargetPoints = append(z.TargetPoints, TargetPoint{TsMs: p.TsMs, Rect: fromGeometry(p.Rect)})
	}
	return z
}

// CursorSettings is Project.settings.cursor.
type CursorSettings struct {
	Size            float64 `json:"size"`
	Color           string  `json:"color"`
	SmoothingFactor float64 `json:"smoothingFactor"`
}

// ExportSettings is Project.settings.export.
type ExportSettings struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Fps    float64 `json:"fps"`
	Codec  string  `json:"codec"`
}

// Settings is Project.settings.
type Settings struct {
	Cursor     CursorSettings `json:"cursor"`
	Background string         `json:"background"`
	Export     ExportSettings `json:"export"`
}

// Timeline is Project.timeline.
type Timeline struct {
	ZoomSegments []ZoomSegment `json:"zoomSegments"`
}

// Project is the project.json document.
type Project struct {
	SchemaVersion int      `json:"schemaVersion"`
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	CreatedAt     string   `json:"createdAt"`
	VideoPath     string   `json:"videoPath"`
	EventsPath    string   `json:"eventsPath"`
	DurationMs    float64  `json:"durationMs"`
	VideoWidth    int      `json:"videoWidth"`
	VideoHeight   int      `json:"videoHeight"`
	Timeline      Timeline `json:"timeline"`
	Settings      Settings `json:"settings"`
}

// LoadProject reads, migrates, and validates a project.json file.
func LoadProject(path string) (Project, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Project{}, corerr.New(corerr.ResourceUnavailable, "project.load", err)
	}
	var p Project
	if err := json.Unmarshal(raw, &p); err != nil {
		return Project{}, corerr.New(corerr.SchemaMismatch, "project.parse", err)
	}
	if err := p.Validate(); err != nil {
		return Project{}, err
	}
	return p, nil
}

// Validate checks schema version, segment ordering/non-overlap, and
// rect validity. It does not check RecordingID equality against a
// sibling EventsFile; see ValidatePair.
func (p Project) Validate() error {
	if p.SchemaVersion != ProjectSchemaVersion {
		return corerr.New(corerr.SchemaMismatch, "project.schemaVersion",
			fmt.Errorf("got %d, want %d", p.SchemaVersion, ProjectSchemaVersion))
	}
	if _, err := uuid.Parse(p.ID); err != nil {
		return corerr.New(corerr.SchemaMismatch, "project.id", err)
	}

	segs := make([]segment.Segment, 0, len(p.Timeline.ZoomSegments))
	for _, z := range p.Timeline.ZoomSegments {
		segs = append(segs, z.ToSegment())
	}
	segment.SortSegments(segs)

	for i, s := range segs {
		if !s.InitialRect.Valid() {
			return corerr.New(corerr.InvariantViolation, "project.initialRect",
				fmt.Errorf("segment %s has invalid initialRect", s.ID))
		}
		for _, tp := range s.TargetPoint {
			if !tp.Rect.Valid() {
				return corerr.New(corerr.InvariantViolation, "project.targetPoint",
					fmt.Errorf("segment %s has an invalid target rect", s.ID))
			}
		}
		if s.EndTsMs-s.StartTsMs < segment.MinSegmentMs {
			return corerr.New(corerr.InvariantViolation, "project.segmentDuration",
				fmt.Errorf("segment %s shorter than %gms", s.ID, segment.MinSegmentMs))
		}
		if i > 0 && s.StartTsMs < segs[i-1].EndTsMs {
			return corerr.New(corerr.InvariantViolation, "project.segmentOverlap",
				fmt.Errorf("segment %s overlaps the previous segment", s.ID))
		}
	}
	return nil
}

// ValidatePair additionally checks RecordingID == Project.ID, the
// lifecycle invariant the QA smoke-check enforces across a project and
// its sibling events file.
func ValidatePair(p Project, ef EventsFile) error {
	if p.ID != ef.RecordingID {
		return corerr.New(corerr.InvariantViolation, "project.recordingId",
			fmt.Errorf("project id %q != events recordingId %q", p.ID, ef.RecordingID))
	}
	return nil
}

// Segments returns the project's timeline as engine segment.Segment
// values, migrated and sorted.
func (p Project) Segments() []segment.Segment {
	segs := make([]segment.Segment, 0, len(p.Timeline.ZoomSegments))
	for _, z := range p.Timeline.ZoomSegments {
		segs = append(segs, z.ToSegment())
	}
	segment.SortSegments(segs)
	return segs
}

// SetSegments replaces the project's timeline with the given engine
// segments, writing them out in the current (non-legacy) wire shape.
func (p *Project) SetSegments(segs []segment.Segment) {
	segment.SortSegments(segs)
	p.Timeline.ZoomSegments = make([]ZoomSegment, 0, len(segs))
	for _, s := range segs {
		p.Timeline.ZoomSegments = append(p.Timeline.ZoomSegments, FromSegment(s))
	}
}

// Save writes the Project to path as indented JSON.
func (p Project) Save(path string) error {
	raw, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

// NewID generates a fresh project/recording id.
func NewID() string {
	return uuid.New().String()
}
