package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/ridwanfathin/gst-invoice-service/internal/domain"
)

// ErrProfileNotFound is returned when no company profile exists for an ID
var ErrProfileNotFound = errors.New("company profile not found")

// ErrInvalidProfileID is returned for IDs that are empty or contain
// characters outside [A-Za-z0-9_-]
var ErrInvalidProfileID = errors.New("invalid company profile id")

var profileIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// CompanyRepository stores company header defaults
type CompanyRepository interface {
	// GetProfile returns the profile or ErrProfileNotFound
	GetProfile(ctx context.Context, id string) (*domain.CompanyProfile, error)

	// UpsertProfile creates or replaces a profile. CreatedAt is kept from the
	// stored row when it exists; UpdatedAt is set to now. The timestamps are
	// written back into profile.
	UpsertProfile(ctx context.Context, profile *domain.CompanyProfile) error
}

// RepositoryError represents an error that occurred within a repository
type RepositoryError struct {
	// Op is the operation that failed
	Op string

	// Err is the underlying error
	Err error
}

// Error returns a string representation of the error
func (e *RepositoryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

// Unwrap exposes the underlying error to errors.Is and errors.As
func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// ValidateProfileID checks that id is safe to use as a key and file name
func ValidateProfileID(id string) error {
	if !profileIDPattern.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidProfileID, id)
	}
	return nil
}
