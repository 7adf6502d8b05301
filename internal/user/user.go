package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User mirrors the users table. HashedPassword never leaves the server
// boundary: it is excluded from JSON and additionally zeroed by Sanitized
// before a row is handed to any response writer.
type User struct {
	ID             string    `json:"id" gorm:"primaryKey;column:id"`
	Avatar         string    `json:"avatar" gorm:"column:avatar"`
	FirstName      string    `json:"first_name" gorm:"column:first_name"`
	LastName       string    `json:"last_name" gorm:"column:last_name"`
	Email          string    `json:"email" gorm:"column:email;uniqueIndex"`
	HashedPassword string    `json:"-" gorm:"column:hashed_password"`
	Tester         bool      `json:"tester" gorm:"column:tester"`
	SuperAdmin     bool      `json:"super_admin" gorm:"column:super_admin"`
	CreatedAt      time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"column:updated_at"`
	CreatedByID    *string   `json:"created_by_id,omitempty" gorm:"column:created_by_id"`
	UpdatedByID    *string   `json:"updated_by_id,omitempty" gorm:"column:updated_by_id"`
}

func (User) TableName() string { return "users" }

func (u *User) FullName() string {
	return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
}

// Sanitized returns a copy safe for transmission.
func (u *User) Sanitized() *User {
	clone := *u
	clone.HashedPassword = ""
	return &clone
}

// NormalizeEmail is the single place emails are case-folded before storage or
// lookup, keeping the uniqueness invariant case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type RepositoryAPI interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, u *User) error
	UpdatePassword(ctx context.Context, userID, updatedBy, hashedPassword string) (int64, error)
	ListIDs(ctx context.Context) ([]string, error)
	CreateBatch(ctx context.Context, users []*User) error
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
