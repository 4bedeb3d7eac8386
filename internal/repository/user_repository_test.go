package repository

import (
	"testing"

	"runway-tickets/internal/model"
	apperrors "runway-tickets/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_InsertIfAbsent(t *testing.T) {
	ctx := setupTest(t)
	repo := NewUserRepository(testDB)
	name := "ana"
	user := &model.User{ID: uuid.New(), Email: "ana@example.com", DisplayName: &name, Role: model.UserRoleViewer}

	created, err := repo.InsertIfAbsent(ctx, user)
	require.NoError(t, err)
	assert.True(t, created)

	other := "someone else"
	created, err = repo.InsertIfAbsent(ctx, &model.User{ID: user.ID, Email: "ana@example.com", DisplayName: &other, Role: model.UserRoleViewer})
	require.NoError(t, err)
	assert.False(t, created)

	saved, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana", *saved.DisplayName)
	assert.False(t, saved.IsAdmin)
}

func TestUserRepository_SetRoleByEmail(t *testing.T) {
	ctx := setupTest(t)
	repo := NewUserRepository(testDB)
	id := uuid.New()
	_, err := repo.InsertIfAbsent(ctx, &model.User{ID: id, Email: "ops@example.com", Role: model.UserRoleViewer})
	require.NoError(t, err)

	user, err := repo.SetRoleByEmail(ctx, "ops@example.com", model.UserRoleAdmin)

	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, model.UserRoleAdmin, user.Role)
	assert.True(t, user.IsAdmin)

	_, err = repo.SetRoleByEmail(ctx, "nobody@example.com", model.UserRoleAdmin)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
