package molgen

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/turtacn/molgen/internal/domain/molecule"
)

// fakeRegion records what the display shows.
type fakeRegion struct {
	mu        sync.Mutex
	text      string
	image     []byte
	textSets  int
	imageSets int
}

func (r *fakeRegion) SetText(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.text = text
	r.textSets++
}

func (r *fakeRegion) SetImage(png []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.image = png
	r.imageSets++
}

// fakeRenderer returns a fixed payload or a fixed error.
type fakeRenderer struct {
	err   error
	calls int
}

func (r *fakeRenderer) Render(m *molecule.Molecule) ([]byte, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return []byte(fmt.Sprintf("png:%d", m.NumAtoms())), nil
}

type MockResultCache struct {
	mock.Mock
}

func (m *MockResultCache) Get(ctx context.Context, key string) (*GenerateResult, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*GenerateResult), args.Bool(1), args.Error(2)
}

func (m *MockResultCache) Set(ctx context.Context, key string, result *GenerateResult) error {
	args := m.Called(ctx, key, result)
	return args.Error(0)
}

type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Put(ctx context.Context, key string, png []byte) (string, error) {
	args := m.Called(ctx, key, png)
	return args.String(0), args.Error(1)
}

type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Save(ctx context.Context, record *GenerationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockHistoryRepository) ListRecent(ctx context.Context, limit int) ([]*GenerationRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*GenerationRecord), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishGenerated(ctx context.Context, event *GeneratedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) ObserveGeneration(status string, elapsed time.Duration) {
	m.Called(status, elapsed)
}

func (m *MockRecorder) CacheHit()  { m.Called() }
func (m *MockRecorder) CacheMiss() { m.Called() }

//Personal.AI order the ending
