package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DiskLogoStore keeps logos as files below a root directory
type DiskLogoStore struct {
	root string
}

// NewDiskLogoStore creates the root directory if needed
func NewDiskLogoStore(root string) (*DiskLogoStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, &StorageError{Op: "create_store", Err: fmt.Errorf("failed to create logo directory: %w", err)}
	}
	return &DiskLogoStore{root: root}, nil
}

func (s *DiskLogoStore) Put(ctx context.Context, key string, data []byte, _ string) error {
	if err := ctx.Err(); err != nil {
		return &StorageError{Op: "put_logo", Key: key, Err: err}
	}
	if err := validateKey(key); err != nil {
		return &StorageError{Op: "put_logo", Key: key, Err: err}
	}

	p := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return &StorageError{Op: "put_logo", Key: key, Err: err}
	}
	if err := os.WriteFile(p, data, 0644); err != nil {
		return &StorageError{Op: "put_logo", Key: key, Err: fmt.Errorf("failed to write logo file: %w", err)}
	}
	return nil
}

func (s *DiskLogoStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &StorageError{Op: "get_logo", Key: key, Err: err}
	}
	if err := validateKey(key); err != nil {
		return nil, &StorageError{Op: "get_logo", Key: key, Err: err}
	}

	data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(key)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &StorageError{Op: "get_logo", Key: key, Err: ErrLogoNotFound}
		}
		return nil, &StorageError{Op: "get_logo", Key: key, Err: fmt.Errorf("failed to read logo file: %w", err)}
	}
	return data, nil
}

func (s *DiskLogoStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return &StorageError{Op: "delete_logo", Key: key, Err: err}
	}
	if err := validateKey(key); err != nil {
		return &StorageError{Op: "delete_logo", Key: key, Err: err}
	}

	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(key)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &StorageError{Op: "delete_logo", Key: key, Err: fmt.Errorf("failed to remove logo file: %w", err)}
	}
	return nil
}
