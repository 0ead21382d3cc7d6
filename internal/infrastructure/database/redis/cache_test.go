package redis

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/molgen/internal/application/molgen"
	"github.com/turtacn/molgen/internal/domain/molecule"
	"github.com/turtacn/molgen/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molgen/pkg/errors"
)

type ResultCacheTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *Client
	cache  *ResultCache
}

func (s *ResultCacheTestSuite) SetupTest() {
	s.client, s.mr = newTestClient(s.T())
	s.cache = NewResultCache(s.client, logging.NewNopLogger(), WithPrefix("test:"), WithTTL(time.Hour), WithJitter(0))
}

func sampleResult() *molgen.GenerateResult {
	return &molgen.GenerateResult{
		ID:          "gen-1",
		BaseSMILES:  "CCO",
		Groups:      []molgen.FunctionalGroupSpec{{Fragment: "O", Index: 0}},
		SMILES:      "OCCO",
		Descriptors: molecule.Descriptors{MolWt: 62.068, LogP: -1.0293, HBD: 2, HBA: 2},
		Report:      "Generated Molecule: OCCO",
		Image:       []byte{0x89, 'P', 'N', 'G'},
		CreatedAt:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *ResultCacheTestSuite) TestSetThenGet() {
	ctx := context.Background()
	want := sampleResult()

	s.Require().NoError(s.cache.Set(ctx, "abc", want))
	s.True(s.mr.Exists("test:result:abc"))
	s.Equal(time.Hour, s.mr.TTL("test:result:abc"))

	got, ok, err := s.cache.Get(ctx, "abc")
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(want.SMILES, got.SMILES)
	s.Equal(want.Groups, got.Groups)
	s.Equal(want.Image, got.Image)
	s.True(want.CreatedAt.Equal(got.CreatedAt))
	s.InDelta(want.Descriptors.MolWt, got.Descriptors.MolWt, 1e-9)
}

func (s *ResultCacheTestSuite) TestGet_Miss() {
	got, ok, err := s.cache.Get(context.Background(), "missing")
	s.NoError(err)
	s.False(ok)
	s.Nil(got)
}

func (s *ResultCacheTestSuite) TestGet_CorruptEntryIsDropped() {
	s.Require().NoError(s.mr.Set("test:result:bad", "{not json"))

	got, ok, err := s.cache.Get(context.Background(), "bad")
	s.NoError(err)
	s.False(ok)
	s.Nil(got)
	s.False(s.mr.Exists("test:result:bad"))
}

func (s *ResultCacheTestSuite) TestGet_ServerError() {
	s.mr.SetError("ERR boom")
	defer s.mr.SetError("")

	_, ok, err := s.cache.Get(context.Background(), "abc")
	s.Error(err)
	s.False(ok)
	s.True(errors.IsCode(err, errors.ErrCodeCacheError))
}

func (s *ResultCacheTestSuite) TestSet_Nil() {
	s.Error(s.cache.Set(context.Background(), "abc", nil))
}

func (s *ResultCacheTestSuite) TestExpiry() {
	ctx := context.Background()
	s.Require().NoError(s.cache.Set(ctx, "abc", sampleResult()))
	s.mr.FastForward(2 * time.Hour)

	_, ok, err := s.cache.Get(ctx, "abc")
	s.NoError(err)
	s.False(ok)
}

func (s *ResultCacheTestSuite) TestInvalidate() {
	ctx := context.Background()
	s.Require().NoError(s.cache.Set(ctx, "abc", sampleResult()))
	s.Require().NoError(s.cache.Invalidate(ctx, "abc"))
	s.False(s.mr.Exists("test:result:abc"))
}

func (s *ResultCacheTestSuite) TestConcurrentGetsDecodeIndependently() {
	ctx := context.Background()
	s.Require().NoError(s.cache.Set(ctx, "abc", sampleResult()))

	var wg sync.WaitGroup
	results := make([]*molgen.GenerateResult, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, ok, err := s.cache.Get(ctx, "abc")
			if err == nil && ok {
				res.Cached = true
				results[i] = res
			}
		}(i)
	}
	wg.Wait()

	for i := range results {
		s.Require().NotNil(results[i])
		for j := i + 1; j < len(results); j++ {
			s.NotSame(results[i], results[j])
		}
	}
}

func TestResultCacheSuite(t *testing.T) {
	suite.Run(t, new(ResultCacheTestSuite))
}

func TestResultCache_Jitter(t *testing.T) {
	client, mr := newTestClient(t)
	cache := NewResultCache(client, nil, WithTTL(time.Hour))
	require.NoError(t, cache.Set(context.Background(), "k", sampleResult()))

	ttl := mr.TTL(client.Config().KeyPrefix + "result:k")
	assert.GreaterOrEqual(t, ttl, 54*time.Minute)
	assert.LessOrEqual(t, ttl, 66*time.Minute)
}

//Personal.AI order the ending
