package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"observation-quiz/internal/cache"
	"observation-quiz/internal/domain"
)

// DatasetFileAdapter implements domain.DatasetWriter and domain.DatasetReader
// with a single JSON file plus the image directory it references.
type DatasetFileAdapter struct {
	path           string
	images         *ImageFileAdapter
	imageURLPrefix string
}

// NewDatasetFileAdapter creates a new instance of DatasetFileAdapter
func NewDatasetFileAdapter(path string, images *ImageFileAdapter, imageURLPrefix string) *DatasetFileAdapter {
	return &DatasetFileAdapter{path: path, images: images, imageURLPrefix: imageURLPrefix}
}

// Path returns the dataset file location.
func (a *DatasetFileAdapter) Path() string {
	return a.path
}

// EncodeDataset renders ds as indented JSON with non-ASCII text and HTML
// characters left unescaped. Key order follows the struct field order.
func EncodeDataset(ds *domain.Dataset) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ds); err != nil {
		return nil, fmt.Errorf("failed to encode dataset: %w", err)
	}
	return buf.Bytes(), nil
}

// Write implements domain.DatasetWriter. The file is replaced atomically.
func (a *DatasetFileAdapter) Write(ctx context.Context, ds *domain.Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := EncodeDataset(ds)
	if err != nil {
		return domain.NewInternalError("failed to serialize dataset", err)
	}

	dir := filepath.Dir(a.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return domain.NewStorageError(fmt.Sprintf("failed to create dataset directory %s", dir), err)
	}
	tmp, err := os.CreateTemp(dir, ".dataset-*.json")
	if err != nil {
		return domain.NewStorageError("failed to create temporary dataset file", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return domain.NewStorageError("failed to write dataset", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return domain.NewStorageError("failed to close dataset", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return domain.NewStorageError("failed to set dataset permissions", err)
	}
	if err := os.Rename(tmpName, a.path); err != nil {
		os.Remove(tmpName)
		return domain.NewStorageError(fmt.Sprintf("failed to move dataset into place at %s", a.path), err)
	}
	return nil
}

// Read implements domain.DatasetReader.
func (a *DatasetFileAdapter) Read(ctx context.Context) (*domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(a.path)
	if err != nil {
		return nil, domain.NewStorageError(fmt.Sprintf("failed to read dataset %s", a.path), err)
	}
	var ds domain.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("failed to decode dataset %s: %v", a.path, err))
	}
	return &ds, nil
}

// ReadImage implements domain.DatasetReader by resolving a root-relative image
// reference against the image directory.
func (a *DatasetFileAdapter) ReadImage(ctx context.Context, imageRef string) ([]byte, error) {
	name, ok := cache.ImageNameFromURL(a.imageURLPrefix, imageRef)
	if !ok {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("image reference %q is not under %s", imageRef, a.imageURLPrefix))
	}
	return a.images.Load(ctx, name)
}
