package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/medmarket/backend/internal/domain/entities"
	"github.com/medmarket/backend/internal/domain/repositories"
	"github.com/medmarket/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/medmarket/backend/pkg/errors"
)

var adColumns = []interface{}{
	"id", "doctor_id", "category_id", "title", "description",
	"price", "city", "rating", "created_at", "updated_at",
}

// AdAdapter implements the AdRepository interface
type AdAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAdAdapter creates a new ad adapter
func NewAdAdapter(client *postgres.Client) repositories.AdRepository {
	return &AdAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new ad
func (a *AdAdapter) Create(ctx context.Context, ad *entities.Ad) error {
	record := goqu.Record{
		"id":          ad.ID,
		"doctor_id":   ad.DoctorID,
		"category_id": ad.CategoryID,
		"title":       ad.Title,
		"description": ad.Description,
		"price":       ad.Price,
		"city":        ad.City,
		"rating":      ad.Rating,
		"created_at":  ad.CreatedAt,
		"updated_at":  ad.UpdatedAt,
	}

	query, args, err := a.db.Insert("ads").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build ad insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create ad", err)
	}
	return nil
}

// GetByID retrieves an ad by ID
func (a *AdAdapter) GetByID(ctx context.Context, id string) (*entities.Ad, error) {
	query, args, err := a.db.Select(adColumns...).From("ads").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build ad query", err)
	}

	ad, err := scanAd(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("ad with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get ad", err)
	}
	return ad, nil
}

// ListByDoctor retrieves all ads owned by a doctor
func (a *AdAdapter) ListByDoctor(ctx context.Context, doctorID string) ([]*entities.Ad, error) {
	return a.list(ctx, a.db.Select(adColumns...).From("ads").
		Where(goqu.Ex{"doctor_id": doctorID}).
		Order(goqu.I("created_at").Asc()))
}

// ListByCategory retrieves all ads in a category
func (a *AdAdapter) ListByCategory(ctx context.Context, categoryID string) ([]*entities.Ad, error) {
	return a.list(ctx, a.db.Select(adColumns...).From("ads").
		Where(goqu.Ex{"category_id": categoryID}).
		Order(goqu.I("created_at").Asc()))
}

// ListByCityAndRatingBetween retrieves ads in a city with rating inside
// the inclusive [minRating, maxRating] range
func (a *AdAdapter) ListByCityAndRatingBetween(ctx context.Context, city string, minRating, maxRating float64) ([]*entities.Ad, error) {
	return a.list(ctx, a.db.Select(adColumns...).From("ads").
		Where(goqu.Ex{"city": city}).
		Where(goqu.C("rating").Gte(minRating)).
		Where(goqu.C("rating").Lte(maxRating)).
		Order(goqu.I("rating").Desc()))
}

// Update updates an ad
func (a *AdAdapter) Update(ctx context.Context, ad *entities.Ad) error {
	ad.UpdatedAt = time.Now()

	record := goqu.Record{
		"category_id": ad.CategoryID,
		"title":       ad.Title,
		"description": ad.Description,
		"price":       ad.Price,
		"city":        ad.City,
		"rating":      ad.Rating,
		"updated_at":  ad.UpdatedAt,
	}

	query, args, err := a.db.Update("ads").
		Set(record).
		Where(goqu.Ex{"id": ad.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build ad update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update ad", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("ad with id %s not found", ad.ID))
	}
	return nil
}

// Delete deletes an ad
func (a *AdAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("ads").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build ad delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete ad", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("ad with id %s not found", id))
	}
	return nil
}

func (a *AdAdapter) list(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.Ad, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build ad list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list ads", err)
	}
	defer rows.Close()

	var ads []*entities.Ad
	for rows.Next() {
		ad, err := scanAd(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan ad", err)
		}
		ads = append(ads, ad)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating ads", err)
	}

	return ads, nil
}

func scanAd(row rowScanner) (*entities.Ad, error) {
	ad := &entities.Ad{}
	err := row.Scan(
		&ad.ID,
		&ad.DoctorID,
		&ad.CategoryID,
		&ad.Title,
		&ad.Description,
		&ad.Price,
		&ad.City,
		&ad.Rating,
		&ad.CreatedAt,
		&ad.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return ad, nil
}
