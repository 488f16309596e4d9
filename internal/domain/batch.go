package domain

import "context"

// ImageStore persists rendered scene images. Saved images stay staged and
// invisible to readers until Commit.
type ImageStore interface {
	Save(ctx context.Context, name string, data []byte) error
	// Commit replaces every previously generated image with the staged set and
	// reports how many old images were removed.
	Commit(ctx context.Context) (int, error)
	// Discard drops staged images without touching published ones.
	Discard(ctx context.Context) error
}

// DatasetWriter persists the dataset file.
type DatasetWriter interface {
	Write(ctx context.Context, ds *Dataset) error
}

// DatasetReader loads a previously written dataset and its images.
type DatasetReader interface {
	Read(ctx context.Context) (*Dataset, error)
	ReadImage(ctx context.Context, imageRef string) ([]byte, error)
}

// GenerationSummary reports aggregate counts of a run.
type GenerationSummary struct {
	RunID        string
	Items        int
	Difficulties map[Difficulty]int
	Targets      map[ShapeKind]int
	Objects      int
}

// BatchService defines the interface for batch operations.
type BatchService interface {
	Generate(ctx context.Context) (*GenerationSummary, error)
}
