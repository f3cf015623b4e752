package models

// Payment is an append-only ledger entry: a row is written once when a
// support event is recorded and never updated or deleted afterwards.
// Amount is in minor currency units (cents), not a float.
type Payment struct {
	BaseModel
	SupporterID string        `gorm:"not null;index"`
	CreatorID   string        `gorm:"not null;index"`
	Amount      int64         `gorm:"not null"`
	Message     string
	IsRecurring bool
	Status      PaymentStatus `gorm:"type:varchar(20);not null"`

	// Relations
	Supporter *User `gorm:"foreignKey:SupporterID"`
}
