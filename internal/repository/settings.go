package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/feedbackhub/feedbackhub/internal/domain"
	"github.com/feedbackhub/feedbackhub/internal/pkg/logger"
)

type SettingsRepo struct {
	db     *pgxpool.Pool
	logger *logger.Logger
}

func NewSettingsRepo(db *pgxpool.Pool, logger *logger.Logger) *SettingsRepo {
	return &SettingsRepo{
		db:     db,
		logger: logger.Component("repository/postgres"),
	}
}

func (r *SettingsRepo) Get(ctx context.Context, key string) (*domain.SystemSetting, error) {
	query := `SELECT key, value, updated_at FROM system_settings WHERE key = $1`

	var setting domain.SystemSetting
	err := r.db.QueryRow(ctx, query, key).Scan(&setting.Key, &setting.Value, &setting.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSettingNotFound
		}
		return nil, fmt.Errorf("get setting: %w", err)
	}

	return &setting, nil
}

func (r *SettingsRepo) Set(ctx context.Context, key, value string) (*domain.SystemSetting, error) {
	query := `
		INSERT INTO system_settings (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
		RETURNING key, value, updated_at
	`

	var setting domain.SystemSetting
	err := r.db.QueryRow(ctx, query, key, value).Scan(&setting.Key, &setting.Value, &setting.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert setting: %w", err)
	}

	return &setting, nil
}
