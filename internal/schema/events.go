// Package schema defines the on-disk contracts: events.json
// and project.json, their Go types, JSON (de)serialization, schema and
// invariant validation, and the legacy panTrajectory migration.
package schema

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/neurochelplus/NeuroScreenCaster/internal/corerr"
)

// EventsSchemaVersion is the only schemaVersion this module accepts
// for events.json.
const EventsSchemaVersion = 1

// EventType tags the InputEvent union.
type EventType string

const (
	EventMove     EventType = "move"
	EventClick    EventType = "click"
	EventMouseUp  EventType = "mouseUp"
	EventScroll   EventType = "scroll"
	EventKeyDown  EventType = "keyDown"
	EventKeyUp    EventType = "keyUp"
)

// ScrollDelta is a scroll event's wheel delta.
type ScrollDelta struct {
	Dx float64 `json:"dx"`
	Dy float64 `json:"dy"`
}

// BoundingRect is a UI control's bounding box in physical screen
// pixels.
type BoundingRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// UIContext is the optional UI-context probe payload attached to a
// click. A nil BoundingRect is the documented MissingContext
// case: expected, handled by the fallback zoom path, never an
// error.
type UIContext struct {
	AppName      *string       `json:"appName,omitempty"`
	ControlName  *string       `json:"controlName,omitempty"`
	BoundingRect *BoundingRect `json:"boundingRect,omitempty"`
}

// InputEvent is one entry of EventsFile.Events. Only the fields
// relevant to its Type are populated; callers should switch on Type
// before reading type-specific fields.
type InputEvent struct {
	Type      EventType    `json:"type"`
	TsMs      float64      `json:"ts"`
	X         float64      `json:"x,omitempty"`
	Y         float64      `json:"y,omitempty"`
	Button    string       `json:"button,omitempty"`
	UIContext *UIContext   `json:"uiContext,omitempty"`
	Delta     *ScrollDelta `json:"delta,omitempty"`
	KeyCode   string       `json:"keyCode,omitempty"`
}

// EventsFile is the events.json document.
type EventsFile struct {
	SchemaVersion int          `json:"schemaVersion"`
	RecordingID   string       `json:"recordingId"`
	StartTimeMs   int64        `json:"startTimeMs"`
	ScreenWidth   int          `json:"screenWidth"`
	ScreenHeight  int          `json:"screenHeight"`
	ScaleFactor   float64      `json:"scaleFactor"`
	Events        []InputEvent `json:"events"`
}

// LoadEventsFile reads and validates an events.json file. A
// schemaVersion mismatch or a malformed recordingId surfaces as a
// *corerr.CoreError with Kind SchemaMismatch; non-monotonic
// timestamps surface as InvariantViolation. An empty or
// coordinate-less event stream is NOT an error here (CaptureShortfall
// is a downstream, engine-level concern; see camera package).
func LoadEventsFile(path string) (EventsFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return EventsFile{}, corerr.New(corerr.ResourceUnavailable, "events.load", err)
	}
	var ef EventsFile
	if err := json.Unmarshal(raw, &ef); err != nil {
		return EventsFile{}, corerr.New(corerr.SchemaMismatch, "events.parse", err)
	}
	if err := ef.Validate(); err != nil {
		return EventsFile{}, err
	}
	return ef, nil
}

// Validate checks the EventsFile's schema version, a parseable
// recordingId, and strictly non-decreasing timestamps.
func (ef EventsFile) Validate() error {
	if ef.SchemaVersion != EventsSchemaVersion {
		return corerr.New(corerr.SchemaMismatch, "events.schemaVersion",
			fmt.Errorf("got %d, want %d", ef.SchemaVersion, EventsSchemaVersion))
	}
	if _, err := uuid.Parse(ef.RecordingID); err != nil {
		return corerr.New(corerr.SchemaMismatch, "events.recordingId", err)
	}
	if ef.ScaleFactor <= 0 || ef.ScaleFactor > 4 {
		return corerr.New(corerr.InvariantViolation, "events.scaleFactor",
			fmt.Errorf("scaleFactor %g out of (0,4]", ef.ScaleFactor))
	}
	lastTs := -1.0
	for i, e := range ef.Events {
		if e.TsMs < lastTs {
			return corerr.New(corerr.InvariantViolation, "events.monotonic",
				fmt.Errorf("event %d: ts %g < previous %g", i, e.TsMs, lastTs))
		}
		lastTs = e.TsMs
	}
	return nil
}

// Save writes the EventsFile to path as indented JSON.
func (ef EventsFile) Save(path string) error {
	raw, err := json.MarshalIndent(ef, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
