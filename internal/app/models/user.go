package models

import (
	"time"
)

// RoleType represents the role of a user
type RoleType string

const (
	RoleStudent RoleType = "student"
	RoleTeacher RoleType = "teacher"
	RoleAdmin   RoleType = "admin"
)

// IsValid reports whether the role is one of the known roles.
func (r RoleType) IsValid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// User defines the user model based on the 'users' table.
// Rows are created by the auth collaborator or the seed loader; the API
// surface only reads them.
type User struct {
	ID            string    `json:"id" db:"id" example:"usr_01"`
	Name          string    `json:"name" db:"name" example:"Jane Doe"`
	Email         string    `json:"email" db:"email" example:"jane@school.edu"`
	EmailVerified bool      `json:"emailVerified" db:"email_verified" example:"true"`
	Image         *string   `json:"image,omitempty" db:"image"`
	Role          RoleType  `json:"role" db:"role" example:"student"`
	ImageCldPubID *string   `json:"imageCldPubId,omitempty" db:"image_cld_pub_id"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// Session defines the session model based on the 'sessions' table.
// Owned by the auth collaborator; the seed loader wipes it.
type Session struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	Token     string    `json:"token" db:"token"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	IPAddress *string   `json:"ipAddress,omitempty" db:"ip_address"`
	UserAgent *string   `json:"userAgent,omitempty" db:"user_agent"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Account defines the credential model based on the 'accounts' table.
// Unique on (provider_id, account_id).
type Account struct {
	ID         string    `json:"id" db:"id"`
	UserID     string    `json:"userId" db:"user_id"`
	AccountID  string    `json:"accountId" db:"account_id"`
	ProviderID string    `json:"providerId" db:"provider_id"`
	Password   *string   `json:"-" db:"password"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}
