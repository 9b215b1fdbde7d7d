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

// CityAdapter implements the CityRepository interface
type CityAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCityAdapter creates a new city adapter
func NewCityAdapter(client *postgres.Client) repositories.CityRepository {
	return &CityAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByID retrieves a city by ID
func (a *CityAdapter) GetByID(ctx context.Context, id string) (*entities.City, error) {
	query, args, err := a.db.Select("id", "name").From("cities").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build city query", err)
	}

	city := &entities.City{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(&city.ID, &city.Name)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("city with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get city", err)
	}
	return city, nil
}

// List retrieves all cities
func (a *CityAdapter) List(ctx context.Context) ([]*entities.City, error) {
	query, args, err := a.db.Select("id", "name").From("cities").
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build city list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list cities", err)
	}
	defer rows.Close()

	var cities []*entities.City
	for rows.Next() {
		city := &entities.City{}
		if err := rows.Scan(&city.ID, &city.Name); err != nil {
			return nil, apperrors.NewInternalError("failed to scan city", err)
		}
		cities = append(cities, city)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating cities", err)
	}

	return cities, nil
}

// CategoryAdapter implements the CategoryRepository interface
type CategoryAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCategoryAdapter creates a new category adapter
func NewCategoryAdapter(client *postgres.Client) repositories.CategoryRepository {
	return &CategoryAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByID retrieves a category by ID
func (a *CategoryAdapter) GetByID(ctx context.Context, id string) (*entities.Category, error) {
	query, args, err := a.db.Select("id", "name").From("categories").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build category query", err)
	}

	category := &entities.Category{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(&category.ID, &category.Name)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("category with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get category", err)
	}
	return category, nil
}

// List retrieves all categories
func (a *CategoryAdapter) List(ctx context.Context) ([]*entities.Category, error) {
	query, args, err := a.db.Select("id", "name").From("categories").
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build category list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list categories", err)
	}
	defer rows.Close()

	var categories []*entities.Category
	for rows.Next() {
		category := &entities.Category{}
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, apperrors.NewInternalError("failed to scan category", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating categories", err)
	}

	return categories, nil
}
