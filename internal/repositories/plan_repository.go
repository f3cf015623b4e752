package repositories

import (
	"errors"

	"tipjar_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrPlanNotFound      = errors.New("subscription plan not found")
	ErrPlanAlreadyExists = errors.New("subscription plan already exists")
)

type PlanRepository interface {
	FindByID(id string) (*models.SubscriptionPlan, error)
	FindByCreatorAndPrice(creatorID string, price int64) (*models.SubscriptionPlan, error)
	FindActiveByCreator(creatorID string) ([]models.SubscriptionPlan, error)
	Create(plan *models.SubscriptionPlan) error
	Update(plan *models.SubscriptionPlan) error
}

type PlanRepositoryImpl struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &PlanRepositoryImpl{db: db}
}

func (r *PlanRepositoryImpl) FindByID(id string) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	err := r.db.First(&plan, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// FindByCreatorAndPrice matches on the exact minor-unit price, active or
// not. The (creator_id, price) unique index makes this the plan's
// effective natural key.
func (r *PlanRepositoryImpl) FindByCreatorAndPrice(creatorID string, price int64) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	err := r.db.First(&plan, "creator_id = ? AND price = ?", creatorID, price).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepositoryImpl) FindActiveByCreator(creatorID string) ([]models.SubscriptionPlan, error) {
	var plans []models.SubscriptionPlan
	err := r.db.Where("creator_id = ? AND is_active = ?", creatorID, true).
		Order("price ASC").Find(&plans).Error
	return plans, err
}

func (r *PlanRepositoryImpl) Create(plan *models.SubscriptionPlan) error {
	if err := r.db.Create(plan).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrPlanAlreadyExists
		}
		return err
	}
	return nil
}

func (r *PlanRepositoryImpl) Update(plan *models.SubscriptionPlan) error {
	result := r.db.Model(plan).Updates(map[string]interface{}{
		"name":      plan.Name,
		"is_active": plan.IsActive,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPlanNotFound
	}
	return nil
}
