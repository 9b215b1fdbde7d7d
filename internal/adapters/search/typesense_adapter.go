package search

import (
	"context"
	"fmt"

	"github.com/medmarket/backend/internal/domain/entities"
	"github.com/medmarket/backend/internal/domain/repositories"
	tsclient "github.com/medmarket/backend/internal/infrastructure/clients/typesense"
	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"
)

const collectionName = "doctors"

// TypesenseAdapter implements doctor suggestion search using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements DoctorSearchRepository
var _ repositories.DoctorSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	// Check if collection exists
	_, err := a.client.Client().Collection(collectionName).Retrieve(ctx)
	if err == nil {
		return nil // Collection exists
	}

	// Create collection
	schema := &api.CollectionSchema{
		Name: collectionName,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "first_name", Type: "string"},
			{Name: "last_name", Type: "string"},
			{Name: "rating", Type: "float"},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("created_at"),
	}

	_, err = a.client.Client().Collections().Create(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// Index upserts a doctor document
func (a *TypesenseAdapter) Index(ctx context.Context, doctor *entities.User) error {
	document := map[string]interface{}{
		"id":         doctor.ID,
		"first_name": doctor.FirstName,
		"last_name":  doctor.LastName,
		"rating":     doctor.Rating,
		"created_at": doctor.CreatedAt.Unix(),
	}

	_, err := a.client.Client().Collection(collectionName).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index doctor: %w", err)
	}

	return nil
}

// Delete removes a doctor document from the index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(collectionName).Document(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete doctor from index: %w", err)
	}
	return nil
}

// Suggest returns doctors matching a free-text name query, best rated first
func (a *TypesenseAdapter) Suggest(ctx context.Context, query string, limit int) ([]entities.DoctorSummary, error) {
	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(query),
		QueryBy: pointer.String("first_name,last_name"),
		SortBy:  pointer.String("_text_match:desc,rating:desc"),
		PerPage: pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(collectionName).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search doctors: %w", err)
	}

	doctors := []entities.DoctorSummary{}
	if result.Hits == nil {
		return doctors, nil
	}
	for _, hit := range *result.Hits {
		doc := *hit.Document

		// Typesense returns map[string]interface{}, cast safely
		doctor := entities.DoctorSummary{}
		if val, ok := doc["id"].(string); ok {
			doctor.ID = val
		}
		if val, ok := doc["first_name"].(string); ok {
			doctor.FirstName = val
		}
		if val, ok := doc["last_name"].(string); ok {
			doctor.LastName = val
		}
		if val, ok := doc["rating"].(float64); ok {
			doctor.Rating = val
		}

		doctors = append(doctors, doctor)
	}

	return doctors, nil
}
