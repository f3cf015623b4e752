package repositories

import (
	"testing"

	"tipjar_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// An explicit false must survive the insert; a column default would
// silently flip a deactivated plan back to active.
func TestPlanRepository_CreateStoresInactive(t *testing.T) {
	db := newTestDB(t)
	repo := NewPlanRepository(db)

	creator := seedUser(t, db, "alice@example.com", "alice", models.UserRoleCreator)

	require.NoError(t, repo.Create(&models.SubscriptionPlan{
		CreatorID: creator.ID,
		Name:      "Retired",
		Price:     1000,
		Currency:  "USD",
		IsActive:  false,
	}))

	stored, err := repo.FindByCreatorAndPrice(creator.ID, 1000)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	active, err := repo.FindActiveByCreator(creator.ID)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestPlanRepository_UniqueCreatorPrice(t *testing.T) {
	db := newTestDB(t)
	repo := NewPlanRepository(db)

	creator := seedUser(t, db, "alice@example.com", "alice", models.UserRoleCreator)

	require.NoError(t, repo.Create(&models.SubscriptionPlan{
		CreatorID: creator.ID, Name: "Tier", Price: 1000, Currency: "USD", IsActive: true,
	}))

	err := repo.Create(&models.SubscriptionPlan{
		CreatorID: creator.ID, Name: "Tier again", Price: 1000, Currency: "USD", IsActive: true,
	})
	assert.ErrorIs(t, err, ErrPlanAlreadyExists)

	// Same price under another creator is fine.
	other := seedUser(t, db, "bob@example.com", "bob", models.UserRoleCreator)
	assert.NoError(t, repo.Create(&models.SubscriptionPlan{
		CreatorID: other.ID, Name: "Tier", Price: 1000, Currency: "USD", IsActive: true,
	}))
}
