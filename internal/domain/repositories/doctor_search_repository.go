package repositories

import (
	"context"

	"github.com/medmarket/backend/internal/domain/entities"
)

// DoctorSearchRepository is the free-text doctor index kept alongside the
// relational store. Indexing is best effort; the relational store remains
// the source of truth.
type DoctorSearchRepository interface {
	// Index upserts a doctor document
	Index(ctx context.Context, doctor *entities.User) error

	// Delete removes a doctor document from the index
	Delete(ctx context.Context, id string) error

	// Suggest returns doctors matching a free-text query
	Suggest(ctx context.Context, query string, limit int) ([]entities.DoctorSummary, error)
}
