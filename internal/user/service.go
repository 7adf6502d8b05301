package user

import (
	"context"
	"errors"

	"github.com/adminboard/internal"
	"gorm.io/gorm"
)

type ServiceAPI interface {
	Login(ctx context.Context, email, password string) (*User, error)
	Register(ctx context.Context, email, password, passwordConfirm string) (*User, error)
	EmailAvailable(ctx context.Context, email string) (bool, error)
	ChangePassword(ctx context.Context, userID, updatedBy, currentPassword, newPassword string) error
	BypassChangePassword(ctx context.Context, userID, updatedBy, newPassword string) error
	GetByID(ctx context.Context, id string) (*User, error)
}

type Service struct {
	repo       RepositoryAPI
	bcryptCost int
}

func NewService(repo RepositoryAPI, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = internal.DefaultBCryptCost
	}
	return &Service{repo: repo, bcryptCost: bcryptCost}
}

// Login verifies credentials and returns the full user row. Callers are
// responsible for stripping the credential hash before transmission.
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, internal.ErrDbConnection.WithCause(err)
	}

	if err := VerifyPassword(u.HashedPassword, password); err != nil {
		return nil, internal.ErrInvalidPassword
	}

	return u, nil
}

func (s *Service) Register(ctx context.Context, email, password, passwordConfirm string) (*User, error) {
	if password != passwordConfirm {
		return nil, internal.ErrPasswordMismatch
	}

	available, err := s.EmailAvailable(ctx, email)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, internal.ErrEmailTaken
	}

	hash, err := HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, internal.ErrDbConnection.WithCause(err)
	}

	u := &User{
		ID:             internal.NewID("user_"),
		Email:          NormalizeEmail(email),
		HashedPassword: hash,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, internal.ErrDbConnection.WithCause(err)
	}

	return u, nil
}

func (s *Service) EmailAvailable(ctx context.Context, email string) (bool, error) {
	_, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return true, nil
		}
		return false, internal.ErrDbConnection.WithCause(err)
	}
	return false, nil
}

func (s *Service) ChangePassword(ctx context.Context, userID, updatedBy, currentPassword, newPassword string) error {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return internal.ErrUserNotFound
		}
		return internal.ErrDbConnection.WithCause(err)
	}

	if err := VerifyPassword(u.HashedPassword, currentPassword); err != nil {
		return internal.ErrInvalidPassword
	}

	return s.BypassChangePassword(ctx, userID, updatedBy, newPassword)
}

// BypassChangePassword resets a credential without verifying the current one.
// Reserved for super-admin initiated resets.
func (s *Service) BypassChangePassword(ctx context.Context, userID, updatedBy, newPassword string) error {
	hash, err := HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return internal.ErrDbConnection.WithCause(err)
	}

	rows, err := s.repo.UpdatePassword(ctx, userID, updatedBy, hash)
	if err != nil {
		return internal.ErrDbConnection.WithCause(err)
	}
	if rows == 0 {
		return internal.ErrUserNotFound
	}
	return nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, internal.ErrDbConnection.WithCause(err)
	}
	return u, nil
}
