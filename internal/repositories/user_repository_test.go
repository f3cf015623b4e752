package repositories

import (
	"testing"

	"tipjar_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_DuplicateEmailOrUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	seedUser(t, db, "fan@example.com", "fan", models.UserRoleSupporter)

	err := repo.Create(&models.User{
		Email:        "fan@example.com",
		Username:     "fan2",
		DisplayName:  "Fan 2",
		PasswordHash: "x",
		Role:         models.UserRoleSupporter,
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	err = repo.Create(&models.User{
		Email:        "fan2@example.com",
		Username:     "fan",
		DisplayName:  "Fan 2",
		PasswordHash: "x",
		Role:         models.UserRoleSupporter,
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestUserRepository_FindCreatorByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	fan := seedUser(t, db, "fan@example.com", "fan", models.UserRoleSupporter)
	creator := seedUser(t, db, "alice@example.com", "alice", models.UserRoleCreator)

	found, err := repo.FindCreatorByID(creator.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", found.Username)

	_, err = repo.FindCreatorByID(fan.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = repo.FindCreatorByID("missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_FindByEmailAndUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	seedUser(t, db, "fan@example.com", "fan", models.UserRoleSupporter)

	byEmail, err := repo.FindByEmail("fan@example.com")
	require.NoError(t, err)
	byUsername, err := repo.FindByUsername("fan")
	require.NoError(t, err)
	assert.Equal(t, byEmail.ID, byUsername.ID)

	_, err = repo.FindByEmail("ghost@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
