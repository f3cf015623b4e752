package repositories

import (
	"errors"

	"tipjar_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrFollowNotFound      = errors.New("follow not found")
	ErrFollowAlreadyExists = errors.New("follow already exists")
)

type FollowRepository interface {
	Find(followerID, creatorID string) (*models.Follow, error)
	Create(follow *models.Follow) error
	FindFollowerUsers(creatorID string, limit, offset int) ([]models.User, error)
	CountByCreator(creatorID string) (int64, error)
}

type FollowRepositoryImpl struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &FollowRepositoryImpl{db: db}
}

func (r *FollowRepositoryImpl) Find(followerID, creatorID string) (*models.Follow, error) {
	var follow models.Follow
	err := r.db.First(&follow, "follower_id = ? AND creator_id = ?", followerID, creatorID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFollowNotFound
		}
		return nil, err
	}
	return &follow, nil
}

// Create inserts the edge. The composite unique index turns a concurrent
// duplicate insert into ErrFollowAlreadyExists, which callers treat as
// success after re-fetching.
func (r *FollowRepositoryImpl) Create(follow *models.Follow) error {
	if err := r.db.Create(follow).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrFollowAlreadyExists
		}
		return err
	}
	return nil
}

// FindFollowerUsers returns the follower users of a creator, newest
// follow first.
func (r *FollowRepositoryImpl) FindFollowerUsers(creatorID string, limit, offset int) ([]models.User, error) {
	var users []models.User
	err := r.db.Model(&models.User{}).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.creator_id = ?", creatorID).
		Order("follows.created_at DESC").Limit(limit).Offset(offset).
		Find(&users).Error
	return users, err
}

func (r *FollowRepositoryImpl) CountByCreator(creatorID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("creator_id = ?", creatorID).Count(&count).Error
	return count, err
}
