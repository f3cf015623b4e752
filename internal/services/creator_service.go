package services

import (
	"context"
	"errors"

	"tipjar_backend/internal/models"
	"tipjar_backend/internal/repositories"
	"tipjar_backend/internal/services/dto"
	"tipjar_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type CreatorService interface {
	GetProfile(ctx context.Context, username string) (*dto.CreatorProfileResponse, error)
	GetPlans(ctx context.Context, username string) ([]dto.PlanResponse, error)
	GetPayments(ctx context.Context, creatorID string, page, pageSize int) (*dto.PaymentListResponse, error)
	GetFollowers(ctx context.Context, creatorID string, page, pageSize int) ([]dto.FollowerResponse, int64, error)
	GetMemberships(ctx context.Context, creatorID string, page, pageSize int) ([]dto.MembershipResponse, error)
	UpdatePlan(ctx context.Context, creatorID, planID string, req *dto.UpdatePlanRequest) (*dto.PlanResponse, error)
}

type creatorService struct {
	db *gorm.DB
}

func NewCreatorService(db *gorm.DB) CreatorService {
	return &creatorService{db: db}
}

func (s *creatorService) GetProfile(ctx context.Context, username string) (*dto.CreatorProfileResponse, error) {
	db := s.db.WithContext(ctx)

	creator, err := s.findCreatorByUsername(db, username)
	if err != nil {
		return nil, err
	}

	plans, err := repositories.NewPlanRepository(db).FindActiveByCreator(creator.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	followerCount, err := repositories.NewFollowRepository(db).CountByCreator(creator.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	supporterCount, err := repositories.NewPaymentRepository(db).CountDistinctSupporters(creator.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.CreatorProfileResponse{
		ID:             creator.ID,
		Username:       creator.Username,
		DisplayName:    creator.DisplayName,
		Bio:            creator.Bio,
		Plans:          toPlanResponses(plans),
		FollowerCount:  followerCount,
		SupporterCount: supporterCount,
	}
	return resp, nil
}

func (s *creatorService) GetPlans(ctx context.Context, username string) ([]dto.PlanResponse, error) {
	db := s.db.WithContext(ctx)

	creator, err := s.findCreatorByUsername(db, username)
	if err != nil {
		return nil, err
	}

	plans, err := repositories.NewPlanRepository(db).FindActiveByCreator(creator.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toPlanResponses(plans), nil
}

func (s *creatorService) GetPayments(ctx context.Context, creatorID string, page, pageSize int) (*dto.PaymentListResponse, error) {
	db := s.db.WithContext(ctx)
	payments := repositories.NewPaymentRepository(db)

	total, err := payments.CountByCreator(creatorID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	totalAmount, err := payments.SumByCreator(creatorID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	rows, err := payments.FindByCreator(creatorID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.PaymentResponse, 0, len(rows))
	for _, p := range rows {
		supporterName := ""
		if p.Supporter != nil {
			supporterName = p.Supporter.DisplayName
		}
		items = append(items, dto.PaymentResponse{
			ID:            p.ID,
			SupporterName: supporterName,
			Amount:        p.Amount,
			Message:       p.Message,
			IsRecurring:   p.IsRecurring,
			Status:        string(p.Status),
			CreatedAt:     p.CreatedAt,
		})
	}

	return &dto.PaymentListResponse{
		Payments:    items,
		Total:       total,
		TotalAmount: totalAmount,
		Page:        page,
	}, nil
}

func (s *creatorService) GetFollowers(ctx context.Context, creatorID string, page, pageSize int) ([]dto.FollowerResponse, int64, error) {
	db := s.db.WithContext(ctx)
	follows := repositories.NewFollowRepository(db)

	total, err := follows.CountByCreator(creatorID)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}

	users, err := follows.FindFollowerUsers(creatorID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}

	result := make([]dto.FollowerResponse, 0, len(users))
	for _, u := range users {
		result = append(result, dto.FollowerResponse{
			ID:          u.ID,
			Username:    u.Username,
			DisplayName: u.DisplayName,
		})
	}
	return result, total, nil
}

func (s *creatorService) GetMemberships(ctx context.Context, creatorID string, page, pageSize int) ([]dto.MembershipResponse, error) {
	db := s.db.WithContext(ctx)

	rows, err := repositories.NewMembershipRepository(db).FindByCreator(creatorID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := make([]dto.MembershipResponse, 0, len(rows))
	for _, m := range rows {
		planName := ""
		if m.Plan != nil {
			planName = m.Plan.Name
		}
		result = append(result, dto.MembershipResponse{
			ID:        m.ID,
			PlanID:    m.PlanID,
			PlanName:  planName,
			Status:    string(m.Status),
			CreatedAt: m.CreatedAt,
		})
	}
	return result, nil
}

// UpdatePlan lets a creator rename or (de)activate one of their own plans.
func (s *creatorService) UpdatePlan(ctx context.Context, creatorID, planID string, req *dto.UpdatePlanRequest) (*dto.PlanResponse, error) {
	db := s.db.WithContext(ctx)
	plans := repositories.NewPlanRepository(db)

	plan, err := plans.FindByID(planID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlanNotFound) {
			return nil, apperrors.ErrPlanNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if plan.CreatorID != creatorID {
		return nil, apperrors.NewForbiddenError("Plan belongs to another creator")
	}

	if req.Name != nil {
		plan.Name = *req.Name
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}
	if err := plans.Update(plan); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := toPlanResponses([]models.SubscriptionPlan{*plan})
	return &resp[0], nil
}

func (s *creatorService) findCreatorByUsername(db *gorm.DB, username string) (*models.User, error) {
	user, err := repositories.NewUserRepository(db).FindByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrCreatorNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if user.Role != models.UserRoleCreator {
		return nil, apperrors.ErrCreatorNotFound
	}
	return user, nil
}

func toPlanResponses(plans []models.SubscriptionPlan) []dto.PlanResponse {
	result := make([]dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		result = append(result, dto.PlanResponse{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Currency: p.Currency,
			IsActive: p.IsActive,
		})
	}
	return result
}
