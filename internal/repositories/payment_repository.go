package repositories

import (
	"errors"

	"tipjar_backend/internal/models"

	"gorm.io/gorm"
)

var ErrPaymentNotFound = errors.New("payment not found")

type PaymentRepository interface {
	Create(payment *models.Payment) error
	FindByID(id string) (*models.Payment, error)
	FindByCreator(creatorID string, limit, offset int) ([]models.Payment, error)
	CountByCreator(creatorID string) (int64, error)
	SumByCreator(creatorID string) (int64, error)
	CountDistinctSupporters(creatorID string) (int64, error)
}

type PaymentRepositoryImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &PaymentRepositoryImpl{db: db}
}

// Create appends a ledger entry. There is deliberately no Update or Delete
// on this repository.
func (r *PaymentRepositoryImpl) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

func (r *PaymentRepositoryImpl) FindByID(id string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.First(&payment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepositoryImpl) FindByCreator(creatorID string, limit, offset int) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Preload("Supporter").
		Where("creator_id = ?", creatorID).
		Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&payments).Error
	return payments, err
}

func (r *PaymentRepositoryImpl) CountByCreator(creatorID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Payment{}).Where("creator_id = ?", creatorID).Count(&count).Error
	return count, err
}

func (r *PaymentRepositoryImpl) SumByCreator(creatorID string) (int64, error) {
	var total int64
	err := r.db.Model(&models.Payment{}).
		Where("creator_id = ? AND status = ?", creatorID, models.PaymentStatusSuccess).
		Select("COALESCE(SUM(amount), 0)").Scan(&total).Error
	return total, err
}

func (r *PaymentRepositoryImpl) CountDistinctSupporters(creatorID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Payment{}).
		Where("creator_id = ?", creatorID).
		Distinct("supporter_id").Count(&count).Error
	return count, err
}
