package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/feedbackhub/feedbackhub/internal/domain"
	"github.com/feedbackhub/feedbackhub/internal/pkg/logger"
)

type FeedbackRepo struct {
	db     *pgxpool.Pool
	logger *logger.Logger
}

func NewFeedbackRepo(db *pgxpool.Pool, logger *logger.Logger) *FeedbackRepo {
	return &FeedbackRepo{
		db:     db,
		logger: logger.Component("repository/postgres"),
	}
}

// scopeClause matches everything when both parameters are NULL, otherwise
// rows authored by / addressed to $1 or belonging to team $2.
const scopeClause = `(($1::bigint IS NULL AND $2::bigint IS NULL)
		OR f.author_id = $1 OR f.recipient_id = $1 OR f.team_id = $2)`

const feedbackSelect = `
	SELECT
		f.id, f.title, f.description, f.status, f.author_id, f.recipient_id,
		f.type_id, f.team_id, f.anonymous, f.score, f.created_at, f.updated_at,
		a.name, a.email, a.role, a.team_id, a.status,
		r.name, r.email, r.role, r.team_id, r.status,
		t.name, t.description, t.active
	FROM feedbacks f
	LEFT JOIN users a ON a.id = f.author_id
	JOIN users r ON r.id = f.recipient_id
	JOIN feedback_types t ON t.id = f.type_id
`

func scanFeedback(row pgx.Row) (*domain.Feedback, error) {
	var (
		fb        domain.Feedback
		author    domain.PublicUser
		aName     *string
		aEmail    *string
		aRole     *domain.Role
		aTeamID   *int64
		aStatus   *domain.UserStatus
		recipient domain.PublicUser
		ftype     domain.FeedbackType
	)

	err := row.Scan(
		&fb.ID, &fb.Title, &fb.Description, &fb.Status, &fb.AuthorID, &fb.RecipientID,
		&fb.TypeID, &fb.TeamID, &fb.Anonymous, &fb.Score, &fb.CreatedAt, &fb.UpdatedAt,
		&aName, &aEmail, &aRole, &aTeamID, &aStatus,
		&recipient.Name, &recipient.Email, &recipient.Role, &recipient.TeamID, &recipient.Status,
		&ftype.Name, &ftype.Description, &ftype.Active,
	)
	if err != nil {
		return nil, err
	}

	if fb.AuthorID != nil && aName != nil {
		author.ID = *fb.AuthorID
		author.Name = *aName
		author.Email = *aEmail
		author.Role = *aRole
		author.TeamID = aTeamID
		author.Status = *aStatus
		fb.Author = &author
	}

	recipient.ID = fb.RecipientID
	fb.Recipient = &recipient

	ftype.ID = fb.TypeID
	fb.Type = &ftype

	return &fb, nil
}

func (r *FeedbackRepo) Create(ctx context.Context, fb *domain.Feedback) (*domain.Feedback, error) {
	query := `
		INSERT INTO feedbacks (title, description, status, author_id, recipient_id, type_id, team_id, anonymous)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		fb.Title,
		fb.Description,
		fb.Status,
		fb.AuthorID,
		fb.RecipientID,
		fb.TypeID,
		fb.TeamID,
		fb.Anonymous,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert feedback: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *FeedbackRepo) GetByID(ctx context.Context, id int64) (*domain.Feedback, error) {
	query := feedbackSelect + ` WHERE f.id = $1`

	fb, err := scanFeedback(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("get feedback: %w", err)
	}

	return fb, nil
}

func (r *FeedbackRepo) List(ctx context.Context, scope FeedbackScope, limit int) ([]*domain.Feedback, error) {
	query := feedbackSelect + ` WHERE ` + scopeClause + ` ORDER BY f.created_at DESC`
	args := []any{scope.UserID, scope.TeamID}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query feedbacks: %w", err)
	}
	defer rows.Close()

	var feedbacks []*domain.Feedback
	for rows.Next() {
		fb, err := scanFeedback(rows)
		if err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		feedbacks = append(feedbacks, fb)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return feedbacks, nil
}

func (r *FeedbackRepo) UpdateStatus(ctx context.Context, id int64, status domain.FeedbackStatus) (*domain.Feedback, error) {
	query := `
		UPDATE feedbacks
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	if err := r.db.QueryRow(ctx, query, status, id).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("update feedback status: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *FeedbackRepo) UpdateScore(ctx context.Context, id int64, score int) (*domain.Feedback, error) {
	query := `
		UPDATE feedbacks
		SET score = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	if err := r.db.QueryRow(ctx, query, score, id).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("update feedback score: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *FeedbackRepo) CountByStatus(ctx context.Context, scope FeedbackScope) ([]StatusCount, error) {
	query := `
		SELECT f.status, COUNT(*)
		FROM feedbacks f
		WHERE ` + scopeClause + `
		GROUP BY f.status
		ORDER BY f.status
	`

	rows, err := r.db.Query(ctx, query, scope.UserID, scope.TeamID)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	defer rows.Close()

	var counts []StatusCount
	for rows.Next() {
		var c StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return counts, nil
}

func (r *FeedbackRepo) CountByType(ctx context.Context, scope FeedbackScope) ([]TypeCount, error) {
	query := `
		SELECT t.name, COUNT(*)
		FROM feedbacks f
		JOIN feedback_types t ON t.id = f.type_id
		WHERE ` + scopeClause + `
		GROUP BY t.name
		ORDER BY t.name
	`

	rows, err := r.db.Query(ctx, query, scope.UserID, scope.TeamID)
	if err != nil {
		return nil, fmt.Errorf("count by type: %w", err)
	}
	defer rows.Close()

	var counts []TypeCount
	for rows.Next() {
		var c TypeCount
		if err := rows.Scan(&c.TypeName, &c.Count); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return counts, nil
}

func (r *FeedbackRepo) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM feedbacks WHERE created_at >= $1`

	if err := r.db.QueryRow(ctx, query, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("count created since: %w", err)
	}

	return count, nil
}

func (r *FeedbackRepo) CountStatusChangedSince(ctx context.Context, status domain.FeedbackStatus, since time.Time) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM feedbacks WHERE status = $1 AND updated_at >= $2`

	if err := r.db.QueryRow(ctx, query, status, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("count status changed since: %w", err)
	}

	return count, nil
}
