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

type TeamRepo struct {
	db     *pgxpool.Pool
	logger *logger.Logger
}

func NewTeamRepo(db *pgxpool.Pool, logger *logger.Logger) *TeamRepo {
	return &TeamRepo{
		db:     db,
		logger: logger.Component("repository/postgres"),
	}
}

func (r *TeamRepo) NameExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM teams WHERE name = $1)`

	if err := r.db.QueryRow(ctx, query, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("check team exists: %w", err)
	}

	return exists, nil
}

func (r *TeamRepo) Create(ctx context.Context, team *domain.Team) (*domain.Team, error) {
	query := `
		INSERT INTO teams (name, description, manager_id)
		VALUES ($1, $2, $3)
		RETURNING id, name, description, manager_id, created_at
	`

	var created domain.Team
	err := r.db.QueryRow(ctx, query, team.Name, team.Description, team.ManagerID).Scan(
		&created.ID,
		&created.Name,
		&created.Description,
		&created.ManagerID,
		&created.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrTeamExists
		}
		return nil, fmt.Errorf("insert team: %w", err)
	}

	return &created, nil
}

func (r *TeamRepo) GetByID(ctx context.Context, id int64) (*domain.Team, error) {
	query := `
		SELECT id, name, description, manager_id, created_at
		FROM teams
		WHERE id = $1
	`

	var team domain.Team
	err := r.db.QueryRow(ctx, query, id).Scan(
		&team.ID,
		&team.Name,
		&team.Description,
		&team.ManagerID,
		&team.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, fmt.Errorf("get team: %w", err)
	}

	return &team, nil
}

// GetWithMembers loads a team together with its member projections.
// LEFT JOIN keeps empty teams visible.
func (r *TeamRepo) GetWithMembers(ctx context.Context, id int64) (*domain.Team, error) {
	query := `
		SELECT
			t.id, t.name, t.description, t.manager_id, t.created_at,
			COALESCE(u.id, 0), COALESCE(u.name, ''), COALESCE(u.email, ''),
			COALESCE(u.role, ''), u.team_id, COALESCE(u.status, '')
		FROM teams t
		LEFT JOIN users u ON u.team_id = t.id
		WHERE t.id = $1
		ORDER BY u.name
	`

	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("query team: %w", err)
	}
	defer rows.Close()

	var team *domain.Team
	for rows.Next() {
		var (
			t      domain.Team
			member domain.PublicUser
		)

		if err := rows.Scan(
			&t.ID, &t.Name, &t.Description, &t.ManagerID, &t.CreatedAt,
			&member.ID, &member.Name, &member.Email, &member.Role, &member.TeamID, &member.Status,
		); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		if team == nil {
			t.Members = []*domain.PublicUser{}
			team = &t
		}

		// skip the empty row produced by the join for memberless teams
		if member.ID != 0 {
			m := member
			team.Members = append(team.Members, &m)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	if team == nil {
		return nil, domain.ErrTeamNotFound
	}

	return team, nil
}

func (r *TeamRepo) List(ctx context.Context) ([]*domain.Team, error) {
	query := `
		SELECT id, name, description, manager_id, created_at
		FROM teams
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query teams: %w", err)
	}
	defer rows.Close()

	var teams []*domain.Team
	for rows.Next() {
		var team domain.Team
		if err := rows.Scan(&team.ID, &team.Name, &team.Description, &team.ManagerID, &team.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, &team)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return teams, nil
}

func (r *TeamRepo) Update(ctx context.Context, team *domain.Team) (*domain.Team, error) {
	query := `
		UPDATE teams
		SET name = $1, description = $2, manager_id = $3
		WHERE id = $4
		RETURNING id, name, description, manager_id, created_at
	`

	var updated domain.Team
	err := r.db.QueryRow(ctx, query, team.Name, team.Description, team.ManagerID, team.ID).Scan(
		&updated.ID,
		&updated.Name,
		&updated.Description,
		&updated.ManagerID,
		&updated.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTeamNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrTeamExists
		}
		return nil, fmt.Errorf("update team: %w", err)
	}

	return &updated, nil
}
