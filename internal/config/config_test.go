package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/neurochelplus/NeuroScreenCaster/internal/camera"
)

func TestNewConfigDefaults(t *testing.T) {
	c := NewConfig()
	assert.Equal(t, camera.PolicySingleClick, c.Camera.Policy)
	assert.Equal(t, 170.0, c.Spring.Stiffness)
	assert.Equal(t, 26.0, c.Spring.Damping)
	assert.Equal(t, 30.0, c.Export.Fps)
	assert.InDelta(t, 0.25, c.QA.DurationDriftCriticalRatio, 1e-9)
	assert.InDelta(t, 0.08, c.QA.DurationDriftWarningRatio, 1e-9)
}
