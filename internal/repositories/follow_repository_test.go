package repositories

import (
	"testing"

	"tipjar_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRepository_UniquePair(t *testing.T) {
	db := newTestDB(t)
	repo := NewFollowRepository(db)

	fan := seedUser(t, db, "fan@example.com", "fan", models.UserRoleSupporter)
	creator := seedUser(t, db, "alice@example.com", "alice", models.UserRoleCreator)

	require.NoError(t, repo.Create(&models.Follow{FollowerID: fan.ID, CreatorID: creator.ID}))

	err := repo.Create(&models.Follow{FollowerID: fan.ID, CreatorID: creator.ID})
	assert.ErrorIs(t, err, ErrFollowAlreadyExists)

	count, err := repo.CountByCreator(creator.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestFollowRepository_FindAndFollowerUsers(t *testing.T) {
	db := newTestDB(t)
	repo := NewFollowRepository(db)

	fan := seedUser(t, db, "fan@example.com", "fan", models.UserRoleSupporter)
	creator := seedUser(t, db, "alice@example.com", "alice", models.UserRoleCreator)

	_, err := repo.Find(fan.ID, creator.ID)
	assert.ErrorIs(t, err, ErrFollowNotFound)

	require.NoError(t, repo.Create(&models.Follow{FollowerID: fan.ID, CreatorID: creator.ID}))

	found, err := repo.Find(fan.ID, creator.ID)
	require.NoError(t, err)
	assert.Equal(t, fan.ID, found.FollowerID)

	users, err := repo.FindFollowerUsers(creator.ID, 20, 0)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "fan", users[0].Username)
}
