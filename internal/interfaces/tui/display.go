// Package tui is the interactive generation window: the form, the Generate
// Molecule button, the result text and a colour preview of the depiction.
package tui

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/turtacn/molgen/internal/infrastructure/monitoring/logging"
)

// PreviewFile is the name the latest depiction is saved under.
const PreviewFile = "molecule.png"

// Display holds the two output regions of the window. The presenter writes to
// it from the generation goroutine and the model reads it when rendering.
type Display struct {
	mu        sync.RWMutex
	text      string
	image     []byte
	outputDir string
	logger    logging.Logger
}

// NewDisplay creates empty regions. When outputDir is set every image shown
// is also written there as PreviewFile.
func NewDisplay(outputDir string, logger logging.Logger) *Display {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Display{outputDir: outputDir, logger: logger}
}

func (d *Display) SetText(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.text = text
}

func (d *Display) SetImage(png []byte) {
	d.mu.Lock()
	d.image = png
	d.mu.Unlock()

	if d.outputDir == "" || len(png) == 0 {
		return
	}
	path := filepath.Join(d.outputDir, PreviewFile)
	if err := os.MkdirAll(d.outputDir, 0o755); err != nil {
		d.logger.Warn("Failed to create output directory", logging.String("dir", d.outputDir), logging.Err(err))
		return
	}
	if err := os.WriteFile(path, png, 0o644); err != nil {
		d.logger.Warn("Failed to save depiction", logging.String("path", path), logging.Err(err))
		return
	}
	d.logger.Debug("Saved depiction", logging.String("path", path), logging.Int("bytes", len(png)))
}

// Snapshot returns the current text and image.
func (d *Display) Snapshot() (string, []byte) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.text, d.image
}

//Personal.AI order the ending
