package dto

import "time"

type PlanResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Currency string `json:"currency"`
	IsActive bool   `json:"is_active"`
}

type CreatorProfileResponse struct {
	ID             string         `json:"id"`
	Username       string         `json:"username"`
	DisplayName    string         `json:"display_name"`
	Bio            string         `json:"bio,omitempty"`
	Plans          []PlanResponse `json:"plans"`
	FollowerCount  int64          `json:"follower_count"`
	SupporterCount int64          `json:"supporter_count"`
}

type PaymentResponse struct {
	ID            string    `json:"id"`
	SupporterName string    `json:"supporter_name"`
	Amount        int64     `json:"amount"`
	Message       string    `json:"message,omitempty"`
	IsRecurring   bool      `json:"is_recurring"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// PaymentListResponse is the dashboard payments page: one page of entries
// plus the creator's all-time successful total in minor units.
type PaymentListResponse struct {
	Payments    []PaymentResponse `json:"payments"`
	Total       int64             `json:"total"`
	TotalAmount int64             `json:"total_amount"`
	Page        int               `json:"page"`
}

type FollowerResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

type MembershipResponse struct {
	ID        string    `json:"id"`
	PlanID    string    `json:"plan_id"`
	PlanName  string    `json:"plan_name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type UpdatePlanRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	IsActive *bool   `json:"is_active"`
}
