package videoio

import (
	"testing"

	"github.com/neurochelplus/NeuroScreenCaster/internal/export"
)

// Compile-time check that the adapters satisfy the export package's
// collaborator interfaces; exercising real decode/encode needs an
// actual media file, which this test suite does not carry.
var (
	_ export.FrameSource = (*Decoder)(nil)
	_ export.Encoder     = (*Encoder)(nil)
)

func TestAdaptersSatisfyExportInterfaces(t *testing.T) {
	// Nothing to assert at runtime beyond the compile-time checks above.
}
