package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/medmarket/backend/internal/domain/entities"
	"github.com/medmarket/backend/internal/domain/repositories"
	"github.com/medmarket/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/medmarket/backend/pkg/errors"
)

var favoriteColumns = []interface{}{"id", "user_id", "ad_id", "created_at"}

// FavoriteAdapter implements the FavoriteAdRepository interface
type FavoriteAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewFavoriteAdapter creates a new favorite adapter
func NewFavoriteAdapter(client *postgres.Client) repositories.FavoriteAdRepository {
	return &FavoriteAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new favorite record
func (a *FavoriteAdapter) Create(ctx context.Context, favorite *entities.FavoriteAd) error {
	record := goqu.Record{
		"id":         favorite.ID,
		"user_id":    favorite.UserID,
		"ad_id":      favorite.AdID,
		"created_at": favorite.CreatedAt,
	}

	query, args, err := a.db.Insert("favorite_ads").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build favorite insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create favorite", err)
	}
	return nil
}

// GetByUserAndAd retrieves the favorite for a (user, ad) pair
func (a *FavoriteAdapter) GetByUserAndAd(ctx context.Context, userID, adID string) (*entities.FavoriteAd, error) {
	query, args, err := a.db.Select(favoriteColumns...).From("favorite_ads").
		Where(goqu.Ex{"user_id": userID, "ad_id": adID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build favorite query", err)
	}

	favorite, err := scanFavorite(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no favorite for user %s and ad %s", userID, adID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get favorite", err)
	}
	return favorite, nil
}

// ListByUser retrieves all favorites of a user
func (a *FavoriteAdapter) ListByUser(ctx context.Context, userID string) ([]*entities.FavoriteAd, error) {
	query, args, err := a.db.Select(favoriteColumns...).From("favorite_ads").
		Where(goqu.Ex{"user_id": userID}).
		Order(goqu.I("created_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build favorite list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list favorites", err)
	}
	defer rows.Close()

	var favorites []*entities.FavoriteAd
	for rows.Next() {
		favorite, err := scanFavorite(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan favorite", err)
		}
		favorites = append(favorites, favorite)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating favorites", err)
	}

	return favorites, nil
}

// Delete deletes a favorite record
func (a *FavoriteAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("favorite_ads").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build favorite delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete favorite", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("favorite with id %s not found", id))
	}
	return nil
}

func scanFavorite(row rowScanner) (*entities.FavoriteAd, error) {
	favorite := &entities.FavoriteAd{}
	err := row.Scan(
		&favorite.ID,
		&favorite.UserID,
		&favorite.AdID,
		&favorite.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return favorite, nil
}
