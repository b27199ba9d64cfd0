package service

import (
	"context"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedbackhub/feedbackhub/internal/domain"
)

type fakeSettingsRepo struct {
	settings map[string]*domain.SystemSetting
}

func (r *fakeSettingsRepo) Get(_ context.Context, key string) (*domain.SystemSetting, error) {
	setting, ok := r.settings[key]
	if !ok {
		return nil, domain.ErrSettingNotFound
	}
	return setting, nil
}

func (r *fakeSettingsRepo) Set(_ context.Context, key, value string) (*domain.SystemSetting, error) {
	setting := &domain.SystemSetting{Key: key, Value: value, UpdatedAt: time.Now()}
	r.settings[key] = setting
	return setting, nil
}

func TestSettingsRoundTrip(t *testing.T) {
	svc := NewSettingsService(&fakeSettingsRepo{settings: make(map[string]*domain.SystemSetting)}, newTestLogger(t))

	_, err := svc.Get(context.Background(), "weekly_report_enabled")
	assert.ErrorIs(t, err, domain.ErrSettingNotFound)

	set, err := svc.Set(context.Background(), "weekly_report_enabled", "true")
	require.NoError(t, err)
	assert.Equal(t, "true", set.Value)

	got, err := svc.Get(context.Background(), "weekly_report_enabled")
	require.NoError(t, err)
	assert.Equal(t, "true", got.Value)
}

func TestSettingsSetRejectsEmptyKey(t *testing.T) {
	svc := NewSettingsService(&fakeSettingsRepo{settings: make(map[string]*domain.SystemSetting)}, newTestLogger(t))

	_, err := svc.Set(context.Background(), "", "value")
	require.Error(t, err)

	var verrs validation.Errors
	assert.ErrorAs(t, err, &verrs)
}
