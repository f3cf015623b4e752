package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"tipjar_backend/internal/auth"
	"tipjar_backend/internal/email"
	"tipjar_backend/internal/logger"
	"tipjar_backend/internal/models"
	"tipjar_backend/internal/repositories"
	"tipjar_backend/internal/services/dto"
	"tipjar_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SupportService records a support event: it resolves the supporter
// identity, appends the payment to the ledger, ensures the follow edge and,
// for recurring support, resolves the plan and enrolls a membership. All
// steps run in one transaction; either everything is committed or nothing.
type SupportService interface {
	RecordSupport(ctx context.Context, req *dto.SupportRequest) (*dto.SupportResult, error)
}

type SupportConfig struct {
	// Timeout bounds the whole orchestration, storage waits included.
	Timeout time.Duration
	// AllowDuplicateMembership writes one membership row per recurring
	// support event (renewal log). When false, an existing active
	// membership on the plan is reused.
	AllowDuplicateMembership bool
	DefaultPlanName          string
	Currency                 string
}

type supportService struct {
	db     *gorm.DB
	cfg    SupportConfig
	mailer email.Provider
}

func NewSupportService(db *gorm.DB, cfg SupportConfig, mailer email.Provider) SupportService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.DefaultPlanName == "" {
		cfg.DefaultPlanName = "Monthly Supporter"
	}
	if cfg.Currency == "" {
		cfg.Currency = "USD"
	}
	if mailer == nil {
		mailer = email.NoopProvider{}
	}
	return &supportService{db: db, cfg: cfg, mailer: mailer}
}

func (s *supportService) RecordSupport(ctx context.Context, req *dto.SupportRequest) (*dto.SupportResult, error) {
	// Input validation happens before any storage access.
	if req.Amount <= 0 {
		return nil, apperrors.ErrInvalidAmount
	}
	supporterEmail := strings.ToLower(strings.TrimSpace(req.Email))
	// Both sides of the @ must be non-empty: the local part doubles as the
	// provisioned username.
	if at := strings.Index(supporterEmail, "@"); at < 1 || at == len(supporterEmail)-1 {
		return nil, apperrors.NewBadRequestError("A valid supporter email is required")
	}
	if strings.TrimSpace(req.CreatorID) == "" {
		return nil, apperrors.NewBadRequestError("creator_id is required")
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	result := &dto.SupportResult{}
	var creator *models.User

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := repositories.NewUserRepository(tx)

		var err error
		creator, err = users.FindCreatorByID(req.CreatorID)
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return apperrors.ErrCreatorNotFound
			}
			return err
		}

		supporter, supporterCreated, err := s.resolveSupporter(tx, supporterEmail, req.Name)
		if err != nil {
			return err
		}
		result.SupporterID = supporter.ID
		result.SupporterCreated = supporterCreated

		payment := &models.Payment{
			SupporterID: supporter.ID,
			CreatorID:   creator.ID,
			Amount:      req.Amount,
			Message:     req.Message,
			IsRecurring: req.IsRecurring,
			Status:      models.PaymentStatusSuccess,
		}
		if err := repositories.NewPaymentRepository(tx).Create(payment); err != nil {
			return err
		}
		result.PaymentID = payment.ID

		_, followCreated, err := s.ensureFollow(tx, supporter.ID, creator.ID)
		if err != nil {
			return err
		}
		result.FollowCreated = followCreated

		if req.IsRecurring {
			plan, planCreated, err := s.resolvePlan(tx, creator.ID, req.Amount)
			if err != nil {
				return err
			}
			result.PlanID = plan.ID
			result.PlanCreated = planCreated

			membership, err := s.enrollMembership(tx, supporter.ID, plan.ID)
			if err != nil {
				return err
			}
			result.MembershipID = membership.ID
		}

		return nil
	})
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	logger.CtxInfo(ctx, "support recorded",
		"payment_id", result.PaymentID,
		"creator_id", creator.ID,
		"amount", req.Amount,
		"recurring", req.IsRecurring,
		"supporter_created", result.SupporterCreated,
	)

	// Receipt delivery is best-effort and happens only after commit.
	go func(to, creatorName string, amount int64) {
		if err := s.mailer.SendSupportReceipt(to, creatorName, amount, s.cfg.Currency); err != nil {
			logger.Warn("failed to send support receipt", "error", err, "to", to)
		}
	}(supporterEmail, creator.DisplayName, req.Amount)

	return result, nil
}

// resolveSupporter finds the supporter by normalized email or provisions a
// new account. A duplicate-key race is recovered by re-fetching once; a
// username collision with a different account retries once with a suffixed
// username.
func (s *supportService) resolveSupporter(tx *gorm.DB, supporterEmail, nameHint string) (*models.User, bool, error) {
	users := repositories.NewUserRepository(tx)

	existing, err := users.FindByEmail(supporterEmail)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, false, err
	}

	local := supporterEmail[:strings.Index(supporterEmail, "@")]
	displayName := strings.TrimSpace(nameHint)
	if displayName == "" {
		displayName = local
	}
	placeholder, err := auth.UnusablePassword()
	if err != nil {
		return nil, false, err
	}

	supporter := &models.User{
		Email:        supporterEmail,
		Username:     local,
		DisplayName:  displayName,
		PasswordHash: placeholder,
		Role:         models.UserRoleSupporter,
		Status:       models.UserStatusActive,
		IsVerified:   false,
	}

	// The insert runs in a savepoint so a unique violation does not poison
	// the surrounding transaction.
	createErr := tx.Transaction(func(inner *gorm.DB) error {
		return repositories.NewUserRepository(inner).Create(supporter)
	})
	if createErr == nil {
		return supporter, true, nil
	}
	if !errors.Is(createErr, repositories.ErrUserAlreadyExists) {
		return nil, false, createErr
	}

	// Either we lost an email race or the derived username is taken.
	if existing, err := users.FindByEmail(supporterEmail); err == nil {
		return existing, false, nil
	}

	supporter.ID = ""
	supporter.Username = local + "-" + uuid.NewString()[:8]
	createErr = tx.Transaction(func(inner *gorm.DB) error {
		return repositories.NewUserRepository(inner).Create(supporter)
	})
	if createErr != nil {
		return nil, false, apperrors.ErrConflict(createErr, "support", "Could not provision supporter account")
	}
	return supporter, true, nil
}

// ensureFollow guarantees exactly one follow edge per (supporter, creator)
// pair. A concurrent duplicate insert is treated as success.
func (s *supportService) ensureFollow(tx *gorm.DB, followerID, creatorID string) (*models.Follow, bool, error) {
	follows := repositories.NewFollowRepository(tx)

	existing, err := follows.Find(followerID, creatorID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repositories.ErrFollowNotFound) {
		return nil, false, err
	}

	follow := &models.Follow{FollowerID: followerID, CreatorID: creatorID}
	createErr := tx.Transaction(func(inner *gorm.DB) error {
		return repositories.NewFollowRepository(inner).Create(follow)
	})
	if createErr == nil {
		return follow, true, nil
	}
	if errors.Is(createErr, repositories.ErrFollowAlreadyExists) {
		existing, err := follows.Find(followerID, creatorID)
		return existing, false, err
	}
	return nil, false, createErr
}

// resolvePlan finds the creator's plan priced at the given amount or
// auto-creates one. A plan that was deactivated at this price is
// reactivated instead of conflicting on the (creator, price) index.
func (s *supportService) resolvePlan(tx *gorm.DB, creatorID string, price int64) (*models.SubscriptionPlan, bool, error) {
	plans := repositories.NewPlanRepository(tx)

	existing, err := plans.FindByCreatorAndPrice(creatorID, price)
	if err == nil {
		if !existing.IsActive {
			existing.IsActive = true
			if err := plans.Update(existing); err != nil {
				return nil, false, err
			}
		}
		return existing, false, nil
	}
	if !errors.Is(err, repositories.ErrPlanNotFound) {
		return nil, false, err
	}

	plan := &models.SubscriptionPlan{
		CreatorID: creatorID,
		Name:      s.cfg.DefaultPlanName,
		Price:     price,
		Currency:  s.cfg.Currency,
		Features:  datatypes.JSON([]byte(`{"auto_created":true}`)),
		IsActive:  true,
	}
	createErr := tx.Transaction(func(inner *gorm.DB) error {
		return repositories.NewPlanRepository(inner).Create(plan)
	})
	if createErr == nil {
		return plan, true, nil
	}
	if errors.Is(createErr, repositories.ErrPlanAlreadyExists) {
		existing, err := plans.FindByCreatorAndPrice(creatorID, price)
		return existing, false, err
	}
	return nil, false, createErr
}

// enrollMembership links the supporter to the plan. Duplicate rows per
// recurring event are the historical behavior; the config flag switches to
// reusing an existing active membership.
func (s *supportService) enrollMembership(tx *gorm.DB, supporterID, planID string) (*models.Membership, error) {
	memberships := repositories.NewMembershipRepository(tx)

	if !s.cfg.AllowDuplicateMembership {
		existing, err := memberships.FindActiveBySupporterAndPlan(supporterID, planID)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, repositories.ErrMembershipNotFound) {
			return nil, err
		}
	}

	membership := &models.Membership{
		SupporterID: supporterID,
		PlanID:      planID,
		Status:      models.MembershipStatusActive,
	}
	if err := memberships.Create(membership); err != nil {
		return nil, err
	}
	return membership, nil
}

// mapError translates internal failures into the service's error taxonomy.
// AppErrors pass through; deadline expiry becomes a retryable timeout;
// anything else is a storage error with the cause logged, not exposed.
func (s *supportService) mapError(ctx context.Context, err error) error {
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		logger.CtxWarn(ctx, "support orchestration timed out", "error", err)
		return apperrors.ErrSupportTimeout
	}
	logger.CtxWithError(ctx, "support orchestration failed", err)
	return apperrors.StorageError(err)
}
