package molgen

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/turtacn/molgen/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molgen/pkg/errors"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// Service runs generations and serves their history.
type Service interface {
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResult, error)
	History(ctx context.Context, limit int) ([]*GenerationRecord, error)
}

// Dependencies wires a Service. Presenter is required; every infrastructure
// port is optional and skipped when nil.
type Dependencies struct {
	Builder   *Builder
	Presenter *Presenter
	Cache     ResultCache
	Images    ImageStore
	History   HistoryRepository
	Events    EventPublisher
	Metrics   Recorder
	Logger    logging.Logger

	// Now and NewID default to time.Now and uuid.NewString.
	Now   func() time.Time
	NewID func() string
}

type serviceImpl struct {
	builder   *Builder
	presenter *Presenter
	cache     ResultCache
	images    ImageStore
	history   HistoryRepository
	events    EventPublisher
	metrics   Recorder
	logger    logging.Logger
	now       func() time.Time
	newID     func() string
}

// NewService creates the generation service.
func NewService(deps Dependencies) (Service, error) {
	if deps.Presenter == nil {
		return nil, errors.InvalidParam("presenter is required")
	}
	s := &serviceImpl{
		builder:   deps.Builder,
		presenter: deps.Presenter,
		cache:     deps.Cache,
		images:    deps.Images,
		history:   deps.History,
		events:    deps.Events,
		metrics:   deps.Metrics,
		logger:    deps.Logger,
		now:       deps.Now,
		newID:     deps.NewID,
	}
	if s.logger == nil {
		s.logger = logging.NewNopLogger()
	}
	if s.builder == nil {
		s.builder = NewBuilder(s.logger)
	}
	if s.metrics == nil {
		s.metrics = nopRecorder{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s, nil
}

func (s *serviceImpl) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResult, error) {
	if req == nil {
		return nil, errors.InvalidParam("request is required")
	}
	start := time.Now()
	key := req.CacheKey()
	log := s.logger.With(logging.String("base", req.BaseSMILES), logging.String("groups", req.GroupsString()))

	if cached := s.lookup(ctx, key, log); cached != nil {
		s.metrics.ObserveGeneration(StatusCacheHit, time.Since(start))
		return cached, nil
	}

	mol, err := s.builder.Build(req.BaseSMILES, req.Groups)
	if err != nil {
		s.metrics.ObserveGeneration(statusFor(err), time.Since(start))
		log.Info("generation rejected", logging.String("code", errors.GetCode(err).String()), logging.Err(err))
		return nil, err
	}

	desc := Describe(mol)
	pres, err := s.presenter.Compose(mol, desc)
	if err != nil {
		s.metrics.ObserveGeneration(StatusError, time.Since(start))
		log.Error("failed to compose result", logging.Err(err))
		return nil, err
	}

	res := &GenerateResult{
		ID:          s.newID(),
		BaseSMILES:  req.BaseSMILES,
		Groups:      req.Groups,
		SMILES:      pres.SMILES,
		Descriptors: desc,
		Report:      pres.Report,
		Image:       pres.Image,
		CreatedAt:   s.now().UTC(),
	}
	s.fanOut(ctx, key, req, res, log)

	s.metrics.ObserveGeneration(StatusSuccess, time.Since(start))
	log.Info("molecule generated",
		logging.String("id", res.ID),
		logging.String("smiles", res.SMILES),
		logging.Duration("elapsed", time.Since(start)))
	return res, nil
}

// lookup returns a cached result, or nil on a miss or a cache failure.
func (s *serviceImpl) lookup(ctx context.Context, key string, log logging.Logger) *GenerateResult {
	if s.cache == nil {
		return nil
	}
	res, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Warn("result cache read failed", logging.Err(err))
		s.metrics.CacheMiss()
		return nil
	}
	if !ok || res == nil {
		s.metrics.CacheMiss()
		return nil
	}
	s.metrics.CacheHit()
	res.Cached = true
	return res
}

// fanOut runs the best-effort side effects. The image goes first so that the
// other sinks can record its key. Failures are logged and swallowed.
func (s *serviceImpl) fanOut(ctx context.Context, key string, req *GenerateRequest, res *GenerateResult, log logging.Logger) {
	if s.images != nil {
		stored, err := s.images.Put(ctx, "generations/"+res.ID+".png", res.Image)
		if err != nil {
			log.Warn("image upload failed", logging.String("id", res.ID), logging.Err(err))
		} else {
			res.ImageKey = stored
		}
	}

	var g errgroup.Group
	if s.cache != nil {
		g.Go(func() error {
			if err := s.cache.Set(ctx, key, res); err != nil {
				log.Warn("result cache write failed", logging.Err(err))
			}
			return nil
		})
	}
	if s.history != nil {
		rec := &GenerationRecord{
			ID:               res.ID,
			BaseSMILES:       req.BaseSMILES,
			FunctionalGroups: req.GroupsString(),
			SMILES:           res.SMILES,
			Descriptors:      res.Descriptors,
			ImageKey:         res.ImageKey,
			CreatedAt:        res.CreatedAt,
		}
		g.Go(func() error {
			if err := s.history.Save(ctx, rec); err != nil {
				log.Warn("history write failed", logging.String("id", res.ID), logging.Err(err))
			}
			return nil
		})
	}
	if s.events != nil {
		evt := &GeneratedEvent{
			ID:          res.ID,
			BaseSMILES:  req.BaseSMILES,
			SMILES:      res.SMILES,
			Descriptors: res.Descriptors,
			ImageKey:    res.ImageKey,
			OccurredAt:  res.CreatedAt,
		}
		g.Go(func() error {
			if err := s.events.PublishGenerated(ctx, evt); err != nil {
				log.Warn("event publish failed", logging.String("id", res.ID), logging.Err(err))
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (s *serviceImpl) History(ctx context.Context, limit int) ([]*GenerationRecord, error) {
	if s.history == nil {
		return nil, errors.New(errors.ErrCodeFeatureDisabled, "generation history is not configured")
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	limit = lo.Clamp(limit, 1, maxHistoryLimit)
	records, err := s.history.ListRecent(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list generation history")
	}
	return records, nil
}

func statusFor(err error) string {
	switch {
	case errors.IsInputSyntax(err):
		return StatusInputError
	case errors.IsStructureValidation(err):
		return StatusStructureError
	default:
		return StatusError
	}
}

//Personal.AI order the ending
