package models

import "gorm.io/datatypes"

// SubscriptionPlan is a priced recurring-support tier owned by a creator.
// Price is in minor currency units. The (creator_id, price) unique index
// guarantees at most one auto-created plan per distinct price per creator.
type SubscriptionPlan struct {
	BaseModel
	CreatorID string         `gorm:"not null;uniqueIndex:idx_creator_price"`
	Name      string         `gorm:"not null"`
	Price     int64          `gorm:"not null;uniqueIndex:idx_creator_price"`
	Currency  string         `gorm:"type:varchar(10);default:'USD'"`
	Features  datatypes.JSON
	// No default tag: GORM would skip a zero-value field on insert and the
	// column default would silently overwrite an explicit false. Every
	// write path sets this field.
	IsActive bool `gorm:"not null"`
}

// Membership links a supporter to a plan. By default one row is written per
// recurring support event (renewal log semantics); see config
// allow_duplicate_membership for the current-state alternative.
type Membership struct {
	BaseModel
	SupporterID string           `gorm:"not null;index"`
	PlanID      string           `gorm:"not null;index"`
	Status      MembershipStatus `gorm:"type:varchar(20);default:'active'"`

	// Relations
	Plan *SubscriptionPlan `gorm:"foreignKey:PlanID"`
}
