package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ridwanfathin/gst-invoice-service/internal/domain"
)

// FileRepository implements CompanyRepository with one JSON file per profile
type FileRepository struct {
	baseDir string
	mutex   sync.RWMutex
	now     func() time.Time
}

// NewFileRepository creates a new file-based company repository
func NewFileRepository(baseDir string) (*FileRepository, error) {
	// Ensure base directory exists
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, &RepositoryError{
			Op:  "create_repository",
			Err: fmt.Errorf("failed to create base directory: %w", err),
		}
	}

	return &FileRepository{
		baseDir: baseDir,
		now:     time.Now,
	}, nil
}

func (r *FileRepository) path(id string) string {
	return filepath.Join(r.baseDir, id+".json")
}

// GetProfile retrieves a profile by its ID
func (r *FileRepository) GetProfile(ctx context.Context, id string) (*domain.CompanyProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, &RepositoryError{Op: "get_profile", Err: err}
	}
	if err := ValidateProfileID(id); err != nil {
		return nil, &RepositoryError{Op: "get_profile", Err: err}
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.read(id)
}

func (r *FileRepository) read(id string) (*domain.CompanyProfile, error) {
	data, err := os.ReadFile(r.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &RepositoryError{Op: "get_profile", Err: ErrProfileNotFound}
		}
		return nil, &RepositoryError{
			Op:  "get_profile",
			Err: fmt.Errorf("failed to read profile file: %w", err),
		}
	}

	var profile domain.CompanyProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, &RepositoryError{
			Op:  "get_profile",
			Err: fmt.Errorf("failed to deserialize profile: %w", err),
		}
	}

	return &profile, nil
}

// UpsertProfile writes the profile, replacing any previous version
func (r *FileRepository) UpsertProfile(ctx context.Context, profile *domain.CompanyProfile) error {
	if err := ctx.Err(); err != nil {
		return &RepositoryError{Op: "upsert_profile", Err: err}
	}
	if err := ValidateProfileID(profile.ID); err != nil {
		return &RepositoryError{Op: "upsert_profile", Err: err}
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	now := r.now().UTC()
	profile.CreatedAt = now
	if existing, err := r.read(profile.ID); err == nil {
		profile.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, ErrProfileNotFound) {
		return &RepositoryError{Op: "upsert_profile", Err: err}
	}
	profile.UpdatedAt = now

	// Serialize profile to JSON
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return &RepositoryError{
			Op:  "upsert_profile",
			Err: fmt.Errorf("failed to serialize profile: %w", err),
		}
	}

	// Write to a temp file first so readers never see a partial profile
	tmp, err := os.CreateTemp(r.baseDir, profile.ID+".*.tmp")
	if err != nil {
		return &RepositoryError{
			Op:  "upsert_profile",
			Err: fmt.Errorf("failed to create temp file: %w", err),
		}
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return &RepositoryError{
			Op:  "upsert_profile",
			Err: fmt.Errorf("failed to write profile file: %w", err),
		}
	}
	if err := tmp.Close(); err != nil {
		return &RepositoryError{
			Op:  "upsert_profile",
			Err: fmt.Errorf("failed to write profile file: %w", err),
		}
	}
	if err := os.Rename(tmp.Name(), r.path(profile.ID)); err != nil {
		return &RepositoryError{
			Op:  "upsert_profile",
			Err: fmt.Errorf("failed to replace profile file: %w", err),
		}
	}

	return nil
}
