package repositories

import (
	"errors"

	"tipjar_backend/internal/models"

	"gorm.io/gorm"
)

var ErrMembershipNotFound = errors.New("membership not found")

type MembershipRepository interface {
	Create(membership *models.Membership) error
	FindActiveBySupporterAndPlan(supporterID, planID string) (*models.Membership, error)
	FindByCreator(creatorID string, limit, offset int) ([]models.Membership, error)
}

type MembershipRepositoryImpl struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &MembershipRepositoryImpl{db: db}
}

func (r *MembershipRepositoryImpl) Create(membership *models.Membership) error {
	return r.db.Create(membership).Error
}

func (r *MembershipRepositoryImpl) FindActiveBySupporterAndPlan(supporterID, planID string) (*models.Membership, error) {
	var membership models.Membership
	err := r.db.First(&membership,
		"supporter_id = ? AND plan_id = ? AND status = ?",
		supporterID, planID, models.MembershipStatusActive).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMembershipNotFound
		}
		return nil, err
	}
	return &membership, nil
}

func (r *MembershipRepositoryImpl) FindByCreator(creatorID string, limit, offset int) ([]models.Membership, error) {
	var memberships []models.Membership
	err := r.db.Preload("Plan").
		Joins("JOIN subscription_plans ON subscription_plans.id = memberships.plan_id").
		Where("subscription_plans.creator_id = ?", creatorID).
		Order("memberships.created_at DESC").Limit(limit).Offset(offset).
		Find(&memberships).Error
	return memberships, err
}
