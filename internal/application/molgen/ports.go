package molgen

import (
	"context"
	"time"

	"github.com/turtacn/molgen/internal/domain/molecule"
)

// Renderer turns a molecule into an encoded image.
type Renderer interface {
	Render(m *molecule.Molecule) ([]byte, error)
}

// TextRegion is the read-only result area of the display surface.
type TextRegion interface {
	SetText(text string)
}

// ImageRegion is the picture area of the display surface.
type ImageRegion interface {
	SetImage(png []byte)
}

// ResultCache stores finished results by request key.
type ResultCache interface {
	Get(ctx context.Context, key string) (*GenerateResult, bool, error)
	Set(ctx context.Context, key string, result *GenerateResult) error
}

// ImageStore keeps rendered depictions and returns the stored object key.
type ImageStore interface {
	Put(ctx context.Context, key string, png []byte) (string, error)
}

// EventPublisher announces finished generations.
type EventPublisher interface {
	PublishGenerated(ctx context.Context, event *GeneratedEvent) error
}

// HistoryRepository persists generation history.
type HistoryRepository interface {
	Save(ctx context.Context, record *GenerationRecord) error
	ListRecent(ctx context.Context, limit int) ([]*GenerationRecord, error)
}

// Recorder receives generation metrics.
type Recorder interface {
	ObserveGeneration(status string, elapsed time.Duration)
	CacheHit()
	CacheMiss()
}

// Generation status labels reported to the Recorder.
const (
	StatusSuccess        = "success"
	StatusCacheHit       = "cache_hit"
	StatusInputError     = "input_error"
	StatusStructureError = "structure_error"
	StatusError          = "error"
)

type nopRecorder struct{}

func (nopRecorder) ObserveGeneration(string, time.Duration) {}
func (nopRecorder) CacheHit()                               {}
func (nopRecorder) CacheMiss()                              {}

//Personal.AI order the ending
