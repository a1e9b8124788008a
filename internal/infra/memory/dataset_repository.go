package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"fitfinder-quiz-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// DatasetLoader fetches dataset content from a backing store (files, Postgres).
type DatasetLoader interface {
	LoadDataset(ctx context.Context, datasetID string) (domain.Dataset, error)
}

// DatasetRepository caches datasets with TTL to avoid repeated loads; the
// catalog is static for the life of a deployment, so a generous TTL is fine.
type DatasetRepository struct {
	loader DatasetLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedDataset
}

type cachedDataset struct {
	dataset   domain.Dataset
	expiresAt time.Time
}

func NewDatasetRepository(loader DatasetLoader, ttl time.Duration) *DatasetRepository {
	return &DatasetRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedDataset),
	}
}

func (r *DatasetRepository) GetDataset(ctx context.Context, datasetID string) (domain.Dataset, error) {
	now := r.clock()

	r.mu.RLock()
	if entry, ok := r.cache[datasetID]; ok && entry.expiresAt.After(now) {
		r.mu.RUnlock()
		return entry.dataset, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do(datasetID, func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if entry, ok := r.cache[datasetID]; ok && entry.expiresAt.After(now) {
			r.mu.RUnlock()
			return entry.dataset, nil
		}
		r.mu.RUnlock()

		dataset, err := r.loader.LoadDataset(ctx, datasetID)
		if err != nil {
			return domain.Dataset{}, err
		}

		r.mu.Lock()
		r.cache[datasetID] = cachedDataset{
			dataset:   dataset,
			expiresAt: now.Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return dataset, nil
	})
	if err != nil {
		return domain.Dataset{}, err
	}
	return result.(domain.Dataset), nil
}

func (r *DatasetRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticDatasetLoader is a simple loader backed by an in-memory map (useful
// for tests/demos).
type StaticDatasetLoader struct {
	datasets map[string]domain.Dataset
}

func NewStaticDatasetLoader(datasets map[string]domain.Dataset) *StaticDatasetLoader {
	return &StaticDatasetLoader{datasets: datasets}
}

func (l *StaticDatasetLoader) LoadDataset(_ context.Context, datasetID string) (domain.Dataset, error) {
	if dataset, ok := l.datasets[datasetID]; ok {
		return dataset, nil
	}
	return domain.Dataset{}, domain.ErrDatasetNotFound
}
