package postgres

import (
	"context"
	"time"

	"github.com/adminboard/internal/user"
	"gorm.io/gorm"
)

// UserRepository implements user.RepositoryAPI using GORM
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	var u user.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID, updatedBy, hashedPassword string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&user.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"hashed_password": hashedPassword,
			"updated_at":      time.Now().UTC(),
			"updated_by_id":   updatedBy,
		})
	return res.RowsAffected, res.Error
}

func (r *UserRepository) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&user.User{}).Pluck("id", &ids).Error
	return ids, err
}

func (r *UserRepository) CreateBatch(ctx context.Context, users []*user.User) error {
	if len(users) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for _, u := range users {
		if u.CreatedAt.IsZero() {
			u.CreatedAt = now
		}
		if u.UpdatedAt.IsZero() {
			u.UpdatedAt = now
		}
	}
	return r.db.WithContext(ctx).Create(&users).Error
}
