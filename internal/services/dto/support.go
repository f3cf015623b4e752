package dto

// SupportRequest is the body of POST /support. Amount is in minor currency
// units. Name and message are optional; email identifies the supporter and
// provisions an account when none exists.
type SupportRequest struct {
	Name        string `json:"name" validate:"omitempty,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Message     string `json:"message" validate:"omitempty,max=500"`
	Amount      int64  `json:"amount" validate:"required,gt=0"`
	IsRecurring bool   `json:"is_recurring"`
	CreatorID   string `json:"creator_id" validate:"required"`
}

// SupportResult reports what the reconciliation actually did.
type SupportResult struct {
	PaymentID        string `json:"payment_id"`
	SupporterID      string `json:"supporter_id"`
	SupporterCreated bool   `json:"supporter_created"`
	FollowCreated    bool   `json:"follow_created"`
	PlanID           string `json:"plan_id,omitempty"`
	PlanCreated      bool   `json:"plan_created,omitempty"`
	MembershipID     string `json:"membership_id,omitempty"`
}
