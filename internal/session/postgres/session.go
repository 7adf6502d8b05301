package postgres

import (
	"context"
	"time"

	"github.com/adminboard/internal/session"
	"gorm.io/gorm"
)

// SessionRepository implements session.RepositoryAPI using GORM
type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) session.RepositoryAPI {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, s *session.Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SessionRepository) GetActive(ctx context.Context, id string, now time.Time) (*session.Session, error) {
	var s session.Session
	err := r.db.WithContext(ctx).
		Where("id = ? AND active = ? AND expires_at > ?", id, true, now).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) UpdateSnapshot(ctx context.Context, sessionID, userID, userName string, data session.Data, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&session.Session{}).
		Where("id = ? AND user_id = ?", sessionID, userID).
		Updates(map[string]interface{}{
			"session_data":    data,
			"user_name":       userName,
			"updated_at":      now,
			"last_updated_at": now,
			"updated_by_id":   userID,
		})
	return res.RowsAffected, res.Error
}

func (r *SessionRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&session.Session{}).Error
}

func (r *SessionRepository) Deactivate(ctx context.Context, sessionID, userID string, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&session.Session{}).
		Where("id = ? AND user_id = ?", sessionID, userID).
		Updates(map[string]interface{}{
			"active":        false,
			"updated_at":    now,
			"updated_by_id": userID,
		})
	return res.RowsAffected, res.Error
}
