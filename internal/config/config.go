// Package config holds process-wide defaults used whenever a project
// file is silent on a field, plus the QA smoke-check's drift
// thresholds. A single nested Config struct built by NewConfig, in the
// same shape a project's own settings take, so a caller can overlay
// project.Settings on top of these defaults field by field.
package config

import (
	"github.com/neurochelplus/NeuroScreenCaster/internal/camera"
	"github.com/neurochelplus/NeuroScreenCaster/internal/segment"
)

type Config struct {
	Camera struct {
		Policy camera.Policy
	}
	Spring struct {
		Mass      float64
		Stiffness float64
		Damping   float64
	}
	Cursor struct {
		Size            float64
		Color           string
		SmoothingFactor float64
	}
	Export struct {
		Width  int
		Height int
		Fps    float64
		Codec  string
	}
	QA struct {
		DurationDriftCriticalRatio float64
		DurationDriftWarningRatio float64
		CursorBoundsTolerancePx    float64
		CursorBoundsScaleSlack     float64
	}
}

func NewConfig() *Config {
	c := &Config{}
	c.Camera.Policy = camera.PolicySingleClick
	c.Spring.Mass = segment.DefaultSpring.Mass
	c.Spring.Stiffness = segment.DefaultSpring.Stiffness
	c.Spring.Damping = segment.DefaultSpring.Damping
	c.Cursor.Size = 1.0
	c.Cursor.Color = "#000000"
	c.Cursor.SmoothingFactor = 0.5
	c.Export.Width = 1920
	c.Export.Height = 1080
	c.Export.Fps = 30
	c.Export.Codec = "h264"
	c.QA.DurationDriftCriticalRatio = 0.25
	c.QA.DurationDriftWarningRatio = 0.08
	c.QA.CursorBoundsTolerancePx = 2.0
	c.QA.CursorBoundsScaleSlack = 1.05
	return c
}
