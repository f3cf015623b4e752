package services

import (
	"context"
	"testing"

	"tipjar_backend/internal/models"
	"tipjar_backend/internal/services/dto"
	"tipjar_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfile(t *testing.T) {
	db := newTestDB(t)
	creator := createCreator(t, db, "alice")
	support := newSupportSvc(db)

	_, err := support.RecordSupport(context.Background(), &dto.SupportRequest{
		Email:     "fan1@example.com",
		Amount:    500,
		CreatorID: creator.ID,
	})
	require.NoError(t, err)
	_, err = support.RecordSupport(context.Background(), &dto.SupportRequest{
		Email:       "fan2@example.com",
		Amount:      1500,
		IsRecurring: true,
		CreatorID:   creator.ID,
	})
	require.NoError(t, err)

	svc := NewCreatorService(db)
	profile, err := svc.GetProfile(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, creator.ID, profile.ID)
	assert.Equal(t, "Creator alice", profile.DisplayName)
	assert.EqualValues(t, 2, profile.FollowerCount)
	assert.EqualValues(t, 2, profile.SupporterCount)
	require.Len(t, profile.Plans, 1)
	assert.Equal(t, int64(1500), profile.Plans[0].Price)
}

func TestGetProfile_UnknownOrNonCreator(t *testing.T) {
	db := newTestDB(t)
	svc := NewCreatorService(db)

	_, err := svc.GetProfile(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperrors.ErrCreatorNotFound)

	supporter := &models.User{
		Email:        "fan@example.com",
		Username:     "fan",
		DisplayName:  "Fan",
		PasswordHash: "x",
		Role:         models.UserRoleSupporter,
		Status:       models.UserStatusActive,
	}
	require.NoError(t, db.Create(supporter).Error)

	_, err = svc.GetProfile(context.Background(), "fan")
	assert.ErrorIs(t, err, apperrors.ErrCreatorNotFound)
}

func TestGetPlans_OnlyActive(t *testing.T) {
	db := newTestDB(t)
	creator := createCreator(t, db, "alice")

	require.NoError(t, db.Create(&models.SubscriptionPlan{
		CreatorID: creator.ID, Name: "Live", Price: 1000, Currency: "USD", IsActive: true,
	}).Error)
	require.NoError(t, db.Create(&models.SubscriptionPlan{
		CreatorID: creator.ID, Name: "Retired", Price: 2000, Currency: "USD", IsActive: false,
	}).Error)

	svc := NewCreatorService(db)
	plans, err := svc.GetPlans(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "Live", plans[0].Name)
}

func TestGetPayments(t *testing.T) {
	db := newTestDB(t)
	creator := createCreator(t, db, "alice")
	support := newSupportSvc(db)

	_, err := support.RecordSupport(context.Background(), &dto.SupportRequest{
		Name:      "Generous Fan",
		Email:     "fan@example.com",
		Message:   "hello",
		Amount:    500,
		CreatorID: creator.ID,
	})
	require.NoError(t, err)

	svc := NewCreatorService(db)
	page, err := svc.GetPayments(context.Background(), creator.ID, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
	assert.EqualValues(t, 500, page.TotalAmount)
	require.Len(t, page.Payments, 1)
	assert.Equal(t, "Generous Fan", page.Payments[0].SupporterName)
	assert.Equal(t, int64(500), page.Payments[0].Amount)
	assert.Equal(t, "hello", page.Payments[0].Message)
}

func TestGetFollowersAndMemberships(t *testing.T) {
	db := newTestDB(t)
	creator := createCreator(t, db, "alice")
	support := newSupportSvc(db)

	_, err := support.RecordSupport(context.Background(), &dto.SupportRequest{
		Email:       "fan@example.com",
		Amount:      1500,
		IsRecurring: true,
		CreatorID:   creator.ID,
	})
	require.NoError(t, err)

	svc := NewCreatorService(db)

	followers, total, err := svc.GetFollowers(context.Background(), creator.ID, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, followers, 1)
	assert.Equal(t, "fan", followers[0].Username)

	memberships, err := svc.GetMemberships(context.Background(), creator.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, memberships, 1)
	assert.Equal(t, "Monthly Supporter", memberships[0].PlanName)
	assert.Equal(t, string(models.MembershipStatusActive), memberships[0].Status)
}

func TestUpdatePlan(t *testing.T) {
	db := newTestDB(t)
	creator := createCreator(t, db, "alice")
	other := createCreator(t, db, "bob")

	plan := &models.SubscriptionPlan{
		CreatorID: creator.ID, Name: "Monthly Supporter", Price: 1500, Currency: "USD", IsActive: true,
	}
	require.NoError(t, db.Create(plan).Error)

	svc := NewCreatorService(db)

	newName := "Gold Tier"
	inactive := false
	updated, err := svc.UpdatePlan(context.Background(), creator.ID, plan.ID, &dto.UpdatePlanRequest{
		Name:     &newName,
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "Gold Tier", updated.Name)
	assert.False(t, updated.IsActive)

	_, err = svc.UpdatePlan(context.Background(), other.ID, plan.ID, &dto.UpdatePlanRequest{Name: &newName})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 403, appErr.HTTPCode)

	_, err = svc.UpdatePlan(context.Background(), creator.ID, "missing-plan", &dto.UpdatePlanRequest{Name: &newName})
	assert.ErrorIs(t, err, apperrors.ErrPlanNotFound)
}
