package storage

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

type diskStorage struct {
	BaseDir string
}

// NewDiskStorage initializes a System backed by files under baseDir.
func NewDiskStorage(baseDir string) *diskStorage {
	return &diskStorage{BaseDir: baseDir}
}

func (ds *diskStorage) GetKeysWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	var matched []string

	searchPrefix := filepath.Join(ds.BaseDir, prefix)

	err := filepath.WalkDir(ds.BaseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasPrefix(path, searchPrefix) {
			matched = append(matched, path[len(ds.BaseDir)+1:])
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		// Base directory not created yet means no keys stored yet.
		return nil, nil
	}

	return matched, err
}

func (ds *diskStorage) Write(ctx context.Context, key string, data []byte) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	filePath := filepath.Join(ds.BaseDir, key)
	if err := os.MkdirAll(filepath.Dir(filePath), os.ModePerm); err != nil {
		return err
	}

	return os.WriteFile(filePath, data, 0644)
}

func (ds *diskStorage) Read(ctx context.Context, key string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := os.ReadFile(filepath.Join(ds.BaseDir, key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrDoesNotExist
	}
	return data, err
}

func (ds *diskStorage) Delete(ctx context.Context, key string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := os.Remove(filepath.Join(ds.BaseDir, key)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}
