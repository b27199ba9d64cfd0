package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/feedbackhub/feedbackhub/internal/domain"
	"github.com/feedbackhub/feedbackhub/internal/pkg/logger"
)

type FeedbackTypeRepo struct {
	db     *pgxpool.Pool
	logger *logger.Logger
}

func NewFeedbackTypeRepo(db *pgxpool.Pool, logger *logger.Logger) *FeedbackTypeRepo {
	return &FeedbackTypeRepo{
		db:     db,
		logger: logger.Component("repository/postgres"),
	}
}

func (r *FeedbackTypeRepo) Create(ctx context.Context, ft *domain.FeedbackType) (*domain.FeedbackType, error) {
	query := `
		INSERT INTO feedback_types (name, description, active)
		VALUES ($1, $2, $3)
		RETURNING id, name, description, active
	`

	var created domain.FeedbackType
	err := r.db.QueryRow(ctx, query, ft.Name, ft.Description, ft.Active).Scan(
		&created.ID,
		&created.Name,
		&created.Description,
		&created.Active,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrTypeExists
		}
		return nil, fmt.Errorf("insert feedback type: %w", err)
	}

	return &created, nil
}

func (r *FeedbackTypeRepo) GetByID(ctx context.Context, id int64) (*domain.FeedbackType, error) {
	query := `SELECT id, name, description, active FROM feedback_types WHERE id = $1`

	var ft domain.FeedbackType
	err := r.db.QueryRow(ctx, query, id).Scan(&ft.ID, &ft.Name, &ft.Description, &ft.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTypeNotFound
		}
		return nil, fmt.Errorf("get feedback type: %w", err)
	}

	return &ft, nil
}

func (r *FeedbackTypeRepo) GetByName(ctx context.Context, name string) (*domain.FeedbackType, error) {
	query := `SELECT id, name, description, active FROM feedback_types WHERE name = $1`

	var ft domain.FeedbackType
	err := r.db.QueryRow(ctx, query, name).Scan(&ft.ID, &ft.Name, &ft.Description, &ft.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTypeNotFound
		}
		return nil, fmt.Errorf("get feedback type by name: %w", err)
	}

	return &ft, nil
}

func (r *FeedbackTypeRepo) List(ctx context.Context, activeOnly bool) ([]*domain.FeedbackType, error) {
	query := `
		SELECT id, name, description, active
		FROM feedback_types
		WHERE $1 = false OR active = true
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("query feedback types: %w", err)
	}
	defer rows.Close()

	var types []*domain.FeedbackType
	for rows.Next() {
		var ft domain.FeedbackType
		if err := rows.Scan(&ft.ID, &ft.Name, &ft.Description, &ft.Active); err != nil {
			return nil, fmt.Errorf("scan feedback type: %w", err)
		}
		types = append(types, &ft)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return types, nil
}

func (r *FeedbackTypeRepo) Update(ctx context.Context, ft *domain.FeedbackType) (*domain.FeedbackType, error) {
	query := `
		UPDATE feedback_types
		SET name = $1, description = $2, active = $3
		WHERE id = $4
		RETURNING id, name, description, active
	`

	var updated domain.FeedbackType
	err := r.db.QueryRow(ctx, query, ft.Name, ft.Description, ft.Active, ft.ID).Scan(
		&updated.ID,
		&updated.Name,
		&updated.Description,
		&updated.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTypeNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrTypeExists
		}
		return nil, fmt.Errorf("update feedback type: %w", err)
	}

	return &updated, nil
}
