// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a registered account. Passwords are stored as bcrypt
// hashes only and are never serialized.
type User struct {
	ID                     uint       `gorm:"primaryKey" json:"id"`
	Email                  string     `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Username               string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Password               string     `gorm:"column:password_hash;size:255;not null" json:"-"`
	FirstName              string     `gorm:"size:100;not null" json:"first_name"`
	LastName               string     `gorm:"size:100;not null" json:"last_name"`
	Bio                    string     `gorm:"size:250" json:"bio"`
	ProfileImageURL        string     `gorm:"size:255" json:"profile_image_url"`
	Role                   string     `gorm:"size:20;not null;default:user" json:"role"`
	IsActive               bool       `gorm:"not null;default:true" json:"is_active"`
	PasswordResetToken     *string    `gorm:"size:255" json:"-"`
	PasswordResetExpiresAt *time.Time `json:"-"`
	LastLoginAt            *time.Time `json:"last_login_at"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`

	// Relationships
	Notes         []Note         `json:"-"`
	Comments      []Comment      `json:"-"`
	Votes         []Vote         `json:"-"`
	Reports       []Report       `gorm:"foreignKey:ReporterUserID" json:"-"`
	Notifications []Notification `gorm:"foreignKey:RecipientUserID" json:"-"`
	Favorites     []Favorite     `json:"-"`
}

// RoleAdmin is the elevated role; everything else is treated as a regular user.
const RoleAdmin = "admin"
