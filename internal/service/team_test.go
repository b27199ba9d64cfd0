package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedbackhub/feedbackhub/internal/domain"
)

func newTeamFixture(t *testing.T) (*TeamService, *fakeTeamRepo, *fakeUserRepo) {
	t.Helper()

	teams := newFakeTeamRepo()
	users := newFakeUserRepo()
	return NewTeamService(teams, users, newTestLogger(t)), teams, users
}

func TestCreateTeam(t *testing.T) {
	svc, _, users := newTeamFixture(t)
	manager := users.add(&domain.User{Name: "Manager", Email: "m@example.com", Role: domain.RoleManager, Status: domain.UserStatusActive})

	team, err := svc.Create(context.Background(), &TeamInput{
		Name:        "Platform",
		Description: "Owns the shared infrastructure.",
		ManagerID:   &manager.ID,
	})
	require.NoError(t, err)

	assert.NotZero(t, team.ID)
	require.NotNil(t, team.ManagerID)
	assert.Equal(t, manager.ID, *team.ManagerID)
}

func TestCreateTeamDuplicateName(t *testing.T) {
	svc, teams, _ := newTeamFixture(t)
	_, err := teams.Create(context.Background(), &domain.Team{Name: "Platform"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), &TeamInput{Name: "Platform"})
	assert.ErrorIs(t, err, domain.ErrTeamExists)
}

func TestCreateTeamUnknownManager(t *testing.T) {
	svc, teams, _ := newTeamFixture(t)

	missing := int64(404)
	_, err := svc.Create(context.Background(), &TeamInput{Name: "Platform", ManagerID: &missing})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Empty(t, teams.teams)
}

func TestUpdateTeamPartial(t *testing.T) {
	svc, teams, users := newTeamFixture(t)
	manager := users.add(&domain.User{Name: "Manager", Email: "m@example.com", Role: domain.RoleManager, Status: domain.UserStatusActive})

	team, err := teams.Create(context.Background(), &domain.Team{
		Name:        "Platform",
		Description: "Owns the shared infrastructure.",
		ManagerID:   &manager.ID,
	})
	require.NoError(t, err)

	// renaming must not clear the omitted fields
	name := "Platform Engineering"
	updated, err := svc.Update(context.Background(), team.ID, &UpdateTeamInput{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "Platform Engineering", updated.Name)
	assert.Equal(t, "Owns the shared infrastructure.", updated.Description)
	require.NotNil(t, updated.ManagerID)
	assert.Equal(t, manager.ID, *updated.ManagerID)

	// reassigning the manager keeps the rest
	other := users.add(&domain.User{Name: "Other", Email: "o@example.com", Role: domain.RoleManager, Status: domain.UserStatusActive})
	updated, err = svc.Update(context.Background(), team.ID, &UpdateTeamInput{ManagerID: &other.ID})
	require.NoError(t, err)
	assert.Equal(t, "Platform Engineering", updated.Name)
	require.NotNil(t, updated.ManagerID)
	assert.Equal(t, other.ID, *updated.ManagerID)
}

func TestUpdateTeamUnknownManager(t *testing.T) {
	svc, teams, _ := newTeamFixture(t)
	team, err := teams.Create(context.Background(), &domain.Team{Name: "Platform"})
	require.NoError(t, err)

	missing := int64(404)
	_, err = svc.Update(context.Background(), team.ID, &UpdateTeamInput{ManagerID: &missing})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Nil(t, teams.teams[team.ID].ManagerID)
}

func TestFeedbackTypeListFiltersInactive(t *testing.T) {
	types := newFakeTypeRepo("PERFORMANCE")
	svc := NewFeedbackTypeService(types, newTestLogger(t))

	inactive := false
	_, err := svc.Create(context.Background(), &FeedbackTypeInput{Name: "RETIRED", Active: &inactive})
	require.NoError(t, err)

	activeOnly, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, activeOnly, 1)

	all, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestFeedbackTypeUpdatePreservesActive(t *testing.T) {
	types := newFakeTypeRepo("PERFORMANCE")
	svc := NewFeedbackTypeService(types, newTestLogger(t))

	// update without touching Active keeps the current flag
	updated, err := svc.Update(context.Background(), 1, &FeedbackTypeInput{Name: "PERFORMANCE", Description: "reworded"})
	require.NoError(t, err)
	assert.True(t, updated.Active)

	inactive := false
	updated, err = svc.Update(context.Background(), 1, &FeedbackTypeInput{Name: "PERFORMANCE", Active: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.Active)
}
