package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"fitfinder-quiz-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// DatasetLoader fetches dataset content from a backing store (files, Postgres).
type DatasetLoader interface {
	LoadDataset(ctx context.Context, datasetID string) (domain.Dataset, error)
}

// DatasetRepository caches the serialized dataset document in Redis
// (SET dataset:{id}) and falls back to a loader on cache miss. The whole
// document is cached as one value so shoe order survives round-trips intact.
type DatasetRepository struct {
	client *redis.Client
	loader DatasetLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewDatasetRepository(client *redis.Client, loader DatasetLoader, ttl time.Duration) *DatasetRepository {
	return &DatasetRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *DatasetRepository) GetDataset(ctx context.Context, datasetID string) (domain.Dataset, error) {
	key := r.key(datasetID)

	raw, err := r.client.Get(ctx, key).Bytes()
	if err == nil && len(raw) > 0 {
		var dataset domain.Dataset
		if err := json.Unmarshal(raw, &dataset); err == nil {
			return dataset, nil
		}
		// Unreadable cache entry: fall through and refill from the loader.
	}

	result, err, _ := r.sf.Do(datasetID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		raw, err := r.client.Get(ctx, key).Bytes()
		if err == nil && len(raw) > 0 {
			var dataset domain.Dataset
			if err := json.Unmarshal(raw, &dataset); err == nil {
				return dataset, nil
			}
		}

		dataset, err := r.loader.LoadDataset(ctx, datasetID)
		if err != nil {
			return domain.Dataset{}, err
		}

		if encoded, err := json.Marshal(dataset); err == nil {
			_ = r.client.Set(ctx, key, encoded, r.ttlWithJitter()).Err()
		}
		return dataset, nil
	})
	if err != nil {
		return domain.Dataset{}, err
	}
	return result.(domain.Dataset), nil
}

func (r *DatasetRepository) key(datasetID string) string {
	return "dataset:" + datasetID
}

func (r *DatasetRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
