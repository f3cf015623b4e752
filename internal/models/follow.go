package models

// Follow is a directed supporter -> creator edge. The composite unique
// index is what makes EnsureFollow idempotent under concurrent calls:
// a second insert for the same pair fails with a duplicate-key error
// that callers treat as success.
type Follow struct {
	BaseModel
	FollowerID string `gorm:"not null;uniqueIndex:idx_follower_creator"`
	CreatorID  string `gorm:"not null;uniqueIndex:idx_follower_creator"`
}
