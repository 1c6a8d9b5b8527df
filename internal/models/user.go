package models

import (
	"time"
)

// Roles the service recognizes. Role lives on the user record and is assigned
// at creation; it is not derived from the username on any request path.
const (
	RoleCustomer = "customer"
	RoleCService = "cservice"
	RoleReviewer = "reviewer"
)

// User is an account that can log in. Passwords are stored as bcrypt hashes
// and never serialized.
type User struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;size:254;not null" json:"email"`
	FirstName    string    `gorm:"size:30" json:"first_name"`
	LastName     string    `gorm:"size:30" json:"last_name"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	Role         string    `gorm:"size:32;not null;default:customer" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AuthToken is a persistent API token, one active token per user. The token
// key travels in the Authorization header as "Token <key>".
type AuthToken struct {
	Key       string    `gorm:"primaryKey;size:40" json:"-"`
	UserID    uint64    `gorm:"uniqueIndex;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// TableName overrides the table name for AuthToken
func (AuthToken) TableName() string {
	return "auth_tokens"
}
