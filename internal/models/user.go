package models

type User struct {
	BaseModel
	Email        string     `gorm:"uniqueIndex;not null"`
	Username     string     `gorm:"uniqueIndex;not null"`
	DisplayName  string     `gorm:"not null"`
	Bio          string
	PasswordHash string     `gorm:"not null"`
	Role         UserRole   `gorm:"type:varchar(20);not null"`
	Status       UserStatus `gorm:"type:varchar(20);default:'pending'"`
	IsVerified   bool       `gorm:"default:false"`

	// Relations
	Plans []SubscriptionPlan `gorm:"foreignKey:CreatorID"`
}
