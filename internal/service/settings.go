package service

import (
	"context"
	"fmt"

	. "github.com/go-ozzo/ozzo-validation"

	"github.com/feedbackhub/feedbackhub/internal/domain"
	"github.com/feedbackhub/feedbackhub/internal/pkg/logger"
	"github.com/feedbackhub/feedbackhub/internal/repository"
)

type SettingsService struct {
	settings repository.SettingsRepository
	logger   *logger.Logger
}

func NewSettingsService(settings repository.SettingsRepository, logger *logger.Logger) *SettingsService {
	return &SettingsService{
		settings: settings,
		logger:   logger,
	}
}

func (s *SettingsService) Get(ctx context.Context, key string) (*domain.SystemSetting, error) {
	setting, err := s.settings.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get setting: %w", err)
	}
	return setting, nil
}

func (s *SettingsService) Set(ctx context.Context, key, value string) (*domain.SystemSetting, error) {
	if err := Validate(key, Required, Length(1, 255)); err != nil {
		return nil, Errors{"key": err}
	}

	setting, err := s.settings.Set(ctx, key, value)
	if err != nil {
		return nil, fmt.Errorf("set setting: %w", err)
	}

	s.logger.Info("setting updated", "key", key)

	return setting, nil
}
