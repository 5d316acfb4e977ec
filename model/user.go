package model

import "time"

// User represents a registered account.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	Username     string    `json:"username" gorm:"size:100;not null"`
	Email        string    `json:"email" gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"column:password;size:255;not null"` // Not exposed in API responses
	CreatedAt    time.Time `json:"createdAt"`
}

// TableName keeps the SQL table aligned with the Mongo collection name.
func (User) TableName() string {
	return "users"
}
