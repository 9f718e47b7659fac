// Package storage keeps uploaded company logos.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
)

// ErrLogoNotFound is returned when no object exists under a key
var ErrLogoNotFound = errors.New("logo not found")

// ErrInvalidKey is returned for keys that are empty or escape the store root
var ErrInvalidKey = errors.New("invalid logo key")

// LogoStore persists logo bytes under opaque keys. Delete of a missing key
// is not an error.
type LogoStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// StorageError represents an error that occurred within a logo store
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// LogoKey builds the object key for a company's logo upload
func LogoKey(companyID, objectID string) string {
	return path.Join("logos", companyID, objectID+".png")
}

// validateKey rejects absolute keys and keys containing empty, "." or ".." segments
func validateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return ErrInvalidKey
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return ErrInvalidKey
		}
	}
	return nil
}
