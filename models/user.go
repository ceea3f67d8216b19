// models/user.go
package models

import "time"

// User is the identity record behind admins and students. Students joining a
// challenge through an access code get a guest row with no password.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"unique;not null;size:100"`
	Email        *string   `json:"email,omitempty" gorm:"unique;size:150"`
	Password     string    `json:"-" gorm:"size:255"`
	IsGuest      bool      `json:"is_guest" gorm:"default:false;index"`
	IsAdmin      bool      `json:"is_admin" gorm:"default:false"`
	StudentType  string    `json:"student_type" gorm:"size:50"`
	LastLogin    time.Time `json:"last_login"`
	LastActivity time.Time `json:"last_activity"`
	CreatedAt    time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
