package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"fitfinder-quiz-service/internal/domain"
)

// DatasetLoader reads dataset documents from a directory, one JSON file per
// dataset id. This is the static-catalog deployment shape: the dataset ships
// alongside the binary and is read once per cache fill.
type DatasetLoader struct {
	dir string
}

func NewDatasetLoader(dir string) *DatasetLoader {
	return &DatasetLoader{dir: dir}
}

func (l *DatasetLoader) LoadDataset(_ context.Context, datasetID string) (domain.Dataset, error) {
	raw, err := os.ReadFile(filepath.Join(l.dir, datasetID+".json"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Dataset{}, domain.ErrDatasetNotFound
		}
		return domain.Dataset{}, fmt.Errorf("read dataset %s: %w", datasetID, err)
	}
	dataset, err := domain.ParseDataset(raw)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("dataset %s: %w", datasetID, err)
	}
	return dataset, nil
}
