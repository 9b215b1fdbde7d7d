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

var feedbackColumns = []interface{}{
	"id", "client_id", "doctor_id", "rating", "text", "created_at", "updated_at",
}

// FeedbackAdapter implements feedback persistence in Postgres.
type FeedbackAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewFeedbackAdapter creates a new feedback adapter.
func NewFeedbackAdapter(client *postgres.Client) repositories.FeedbackRepository {
	return &FeedbackAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a feedback record.
func (a *FeedbackAdapter) Create(ctx context.Context, feedback *entities.Feedback) error {
	record := goqu.Record{
		"id":         feedback.ID,
		"client_id":  feedback.ClientID,
		"doctor_id":  feedback.DoctorID,
		"rating":     feedback.Rating,
		"text":       feedback.Text,
		"created_at": feedback.CreatedAt,
		"updated_at": feedback.UpdatedAt,
	}

	query, args, err := a.db.Insert("feedback").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build feedback insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create feedback", err)
	}
	return nil
}

// GetByID retrieves a feedback record by ID.
func (a *FeedbackAdapter) GetByID(ctx context.Context, id string) (*entities.Feedback, error) {
	query, args, err := a.db.Select(feedbackColumns...).From("feedback").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build feedback query", err)
	}

	feedback, err := scanFeedback(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("feedback with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get feedback", err)
	}
	return feedback, nil
}

// ListByDoctor retrieves all feedback received by a doctor.
func (a *FeedbackAdapter) ListByDoctor(ctx context.Context, doctorID string) ([]*entities.Feedback, error) {
	return a.list(ctx, goqu.Ex{"doctor_id": doctorID})
}

// ListByClient retrieves all feedback authored by a client.
func (a *FeedbackAdapter) ListByClient(ctx context.Context, clientID string) ([]*entities.Feedback, error) {
	return a.list(ctx, goqu.Ex{"client_id": clientID})
}

// Update updates a feedback record's mutable fields.
func (a *FeedbackAdapter) Update(ctx context.Context, feedback *entities.Feedback) error {
	record := goqu.Record{
		"rating":     feedback.Rating,
		"text":       feedback.Text,
		"updated_at": feedback.UpdatedAt,
	}

	query, args, err := a.db.Update("feedback").
		Set(record).
		Where(goqu.Ex{"id": feedback.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build feedback update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update feedback", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("feedback with id %s not found", feedback.ID))
	}
	return nil
}

// Delete deletes a feedback record.
func (a *FeedbackAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("feedback").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build feedback delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete feedback", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("feedback with id %s not found", id))
	}
	return nil
}

func (a *FeedbackAdapter) list(ctx context.Context, where goqu.Ex) ([]*entities.Feedback, error) {
	query, args, err := a.db.Select(feedbackColumns...).From("feedback").
		Where(where).
		Order(goqu.I("created_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build feedback list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list feedback", err)
	}
	defer rows.Close()

	var feedbacks []*entities.Feedback
	for rows.Next() {
		feedback, err := scanFeedback(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan feedback", err)
		}
		feedbacks = append(feedbacks, feedback)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating feedback", err)
	}

	return feedbacks, nil
}

func scanFeedback(row rowScanner) (*entities.Feedback, error) {
	feedback := &entities.Feedback{}
	err := row.Scan(
		&feedback.ID,
		&feedback.ClientID,
		&feedback.DoctorID,
		&feedback.Rating,
		&feedback.Text,
		&feedback.CreatedAt,
		&feedback.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return feedback, nil
}
