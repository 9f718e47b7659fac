package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ridwanfathin/gst-invoice-service/internal/domain"
)

// PostgresCompanyRepository implements CompanyRepository using PostgreSQL
type PostgresCompanyRepository struct {
	db *pgxpool.Pool
}

// NewPostgresCompanyRepository creates a new PostgreSQL company repository
func NewPostgresCompanyRepository(db *pgxpool.Pool) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{db: db}
}

// GetProfile retrieves a profile by its ID
func (r *PostgresCompanyRepository) GetProfile(ctx context.Context, id string) (*domain.CompanyProfile, error) {
	if err := ValidateProfileID(id); err != nil {
		return nil, &RepositoryError{Op: "get_profile", Err: err}
	}

	query := `
		SELECT id, name, email, phone, address, COALESCE(logo_key, ''), created_at, updated_at
		FROM company_profiles
		WHERE id = $1
	`

	profile := &domain.CompanyProfile{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&profile.ID,
		&profile.Company.Name,
		&profile.Company.Email,
		&profile.Company.Phone,
		&profile.Company.Address,
		&profile.LogoKey,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &RepositoryError{Op: "get_profile", Err: ErrProfileNotFound}
		}
		return nil, &RepositoryError{
			Op:  "get_profile",
			Err: fmt.Errorf("failed to get profile by ID: %w", err),
		}
	}

	return profile, nil
}

// UpsertProfile inserts the profile or updates the existing row
func (r *PostgresCompanyRepository) UpsertProfile(ctx context.Context, profile *domain.CompanyProfile) error {
	if err := ValidateProfileID(profile.ID); err != nil {
		return &RepositoryError{Op: "upsert_profile", Err: err}
	}

	query := `
		INSERT INTO company_profiles (id, name, email, phone, address, logo_key)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			address = EXCLUDED.address,
			logo_key = EXCLUDED.logo_key,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx,
		query,
		profile.ID,
		profile.Company.Name,
		profile.Company.Email,
		profile.Company.Phone,
		profile.Company.Address,
		profile.LogoKey,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return &RepositoryError{
			Op:  "upsert_profile",
			Err: fmt.Errorf("failed to upsert profile: %w", err),
		}
	}

	return nil
}
