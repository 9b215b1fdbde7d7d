package database

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/medmarket/backend/internal/domain/entities"
	"github.com/medmarket/backend/internal/domain/repositories"
	"github.com/medmarket/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/medmarket/backend/pkg/errors"
)

// RatingAdapter implements the RatingRepository interface. The doctor row
// and all owned ads are updated inside one transaction so other readers
// never observe the two out of sync.
type RatingAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewRatingAdapter creates a new rating adapter
func NewRatingAdapter(client *postgres.Client) repositories.RatingRepository {
	return &RatingAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// ApplyDoctorRating writes rating to the doctor and every ad the doctor
// owns, returning the affected ad IDs.
func (a *RatingAdapter) ApplyDoctorRating(ctx context.Context, doctorID string, rating float64) ([]string, error) {
	now := time.Now()

	userQuery, userArgs, err := a.db.Update("users").
		Set(goqu.Record{"rating": rating, "updated_at": now}).
		Where(goqu.Ex{"id": doctorID, "role": entities.RoleDoctor}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build doctor rating update query", err)
	}

	adQuery, adArgs, err := a.db.Update("ads").
		Set(goqu.Record{"rating": rating, "updated_at": now}).
		Where(goqu.Ex{"doctor_id": doctorID}).
		Returning("id").
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build ad rating update query", err)
	}

	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to begin rating transaction", err)
	}

	result, err := tx.ExecContext(ctx, userQuery, userArgs...)
	if err != nil {
		tx.Rollback()
		return nil, apperrors.NewInternalError("failed to update doctor rating", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		tx.Rollback()
		return nil, apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		tx.Rollback()
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("doctor with id %s not found", doctorID))
	}

	rows, err := tx.QueryContext(ctx, adQuery, adArgs...)
	if err != nil {
		tx.Rollback()
		return nil, apperrors.NewInternalError("failed to update ad ratings", err)
	}

	var adIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			tx.Rollback()
			return nil, apperrors.NewInternalError("failed to scan ad id", err)
		}
		adIDs = append(adIDs, id)
	}
	rows.Close()

	if err := rows.Err(); err != nil {
		tx.Rollback()
		return nil, apperrors.NewInternalError("error iterating ad ids", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.NewInternalError("failed to commit rating transaction", err)
	}
	return adIDs, nil
}
