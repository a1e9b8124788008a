package postgres

import (
	"context"
	"errors"
	"fmt"

	"fitfinder-quiz-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// DatasetLoader loads dataset JSONB from Postgres.
type DatasetLoader struct {
	pool *pgxpool.Pool
}

func NewDatasetLoader(pool *pgxpool.Pool) *DatasetLoader {
	return &DatasetLoader{pool: pool}
}

func (l *DatasetLoader) LoadDataset(ctx context.Context, datasetID string) (domain.Dataset, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM datasets WHERE id=$1`, datasetID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Dataset{}, domain.ErrDatasetNotFound
	}
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("load dataset: %w", err)
	}
	dataset, err := domain.ParseDataset(raw)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("dataset %s: %w", datasetID, err)
	}
	return dataset, nil
}
