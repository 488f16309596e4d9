package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"observation-quiz/internal/cache"
	"observation-quiz/internal/domain"
)

// ImageFileAdapter implements domain.ImageStore on a local directory. Saved
// images are staged in a sibling directory and moved in by Commit, so a failed
// run never leaves a half-written batch in the published directory.
type ImageFileAdapter struct {
	dir string
}

// NewImageFileAdapter creates a new instance of ImageFileAdapter
func NewImageFileAdapter(dir string) *ImageFileAdapter {
	return &ImageFileAdapter{dir: dir}
}

// Dir returns the directory images are published to.
func (a *ImageFileAdapter) Dir() string {
	return a.dir
}

// StagingDir returns the directory Save writes to before Commit.
func (a *ImageFileAdapter) StagingDir() string {
	return filepath.Clean(a.dir) + ".staging"
}

// Save implements domain.ImageStore.
func (a *ImageFileAdapter) Save(ctx context.Context, name string, data []byte) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return domain.NewInvalidInputError(fmt.Sprintf("invalid image name %q", name))
	}
	staging := a.StagingDir()
	if err := os.MkdirAll(staging, 0o755); err != nil {
		return domain.NewStorageError(fmt.Sprintf("failed to create staging directory %s", staging), err)
	}
	path := filepath.Join(staging, name)
	f, err := os.Create(path)
	if err != nil {
		return domain.NewStorageError(fmt.Sprintf("failed to create image %s", path), err)
	}
	defer func() {
		if cErr := f.Close(); cErr != nil && err == nil {
			err = domain.NewStorageError(fmt.Sprintf("failed to close image %s", path), cErr)
		}
	}()
	if _, err = f.Write(data); err != nil {
		return domain.NewStorageError(fmt.Sprintf("failed to write image %s", path), err)
	}
	return nil
}

// Commit implements domain.ImageStore. Only files matching the image naming
// pattern are removed; anything else in the directory is left alone.
func (a *ImageFileAdapter) Commit(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return 0, domain.NewStorageError(fmt.Sprintf("failed to create image directory %s", a.dir), err)
	}
	staged, err := filepath.Glob(filepath.Join(a.StagingDir(), cache.ImageGlob))
	if err != nil {
		return 0, domain.NewStorageError("failed to list staged images", err)
	}
	previous, err := filepath.Glob(filepath.Join(a.dir, cache.ImageGlob))
	if err != nil {
		return 0, domain.NewStorageError("failed to list previous images", err)
	}

	removed := 0
	for _, m := range previous {
		if err := os.Remove(m); err != nil {
			return removed, domain.NewStorageError(fmt.Sprintf("failed to remove stale image %s", m), err)
		}
		removed++
	}
	for _, src := range staged {
		dst := filepath.Join(a.dir, filepath.Base(src))
		if err := os.Rename(src, dst); err != nil {
			return removed, domain.NewStorageError(fmt.Sprintf("failed to publish image %s", dst), err)
		}
	}
	if err := os.RemoveAll(a.StagingDir()); err != nil {
		return removed, domain.NewStorageError("failed to remove staging directory", err)
	}
	return removed, nil
}

// Discard implements domain.ImageStore.
func (a *ImageFileAdapter) Discard(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.RemoveAll(a.StagingDir()); err != nil {
		return domain.NewStorageError("failed to discard staged images", err)
	}
	return nil
}

// Load reads a previously saved image by file name.
func (a *ImageFileAdapter) Load(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(a.dir, name))
	if err != nil {
		return nil, domain.NewStorageError(fmt.Sprintf("failed to read image %s", name), err)
	}
	return data, nil
}
