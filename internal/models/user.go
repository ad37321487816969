package models

// User represents an account allowed to call the inventory API.
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"uniqueIndex:idx_users_username;type:varchar(100);not null"`
	Email        string `json:"email" gorm:"uniqueIndex:idx_users_email;type:varchar(255);not null"`
	PasswordHash string `json:"-" gorm:"type:varchar(255);not null"`
	IsActive     bool   `json:"is_active" gorm:"not null"`
	Timestamps
}
