package session

import (
	"context"
	"time"

	"github.com/adminboard/internal/user"
)

// Data is the session-scoped data blob snapshotted onto the row. It is empty
// for regular users; elevated privileges are the only thing it carries today.
type Data struct {
	SuperAdmin bool `json:"super_admin,omitempty"`
}

// Session mirrors the sessions table. UserName and Data are a denormalized
// snapshot of the owning user, refreshed when older than the snapshot TTL so
// per-request reads avoid a join without the copy drifting unbounded.
type Session struct {
	ID            string         `json:"id" gorm:"primaryKey;column:id"`
	UserID        string         `json:"user_id" gorm:"column:user_id;index"`
	UserName      string         `json:"user_name" gorm:"column:user_name"`
	Data          Data           `json:"session_data" gorm:"column:session_data;serializer:json"`
	RequestInfo   map[string]any `json:"request_info" gorm:"column:request_info;serializer:json"`
	ExpiresAt     time.Time      `json:"expires_at" gorm:"column:expires_at"`
	Active        bool           `json:"active" gorm:"column:active"`
	LastActiveAt  time.Time      `json:"last_active_at" gorm:"column:last_active_at"`
	LastUpdatedAt time.Time      `json:"last_updated_at" gorm:"column:last_updated_at"`
	CreatedAt     time.Time      `json:"created_at" gorm:"column:created_at"`
	UpdatedAt     time.Time      `json:"updated_at" gorm:"column:updated_at"`
	CreatedByID   string         `json:"created_by_id" gorm:"column:created_by_id"`
	UpdatedByID   string         `json:"updated_by_id" gorm:"column:updated_by_id"`
}

func (Session) TableName() string { return "sessions" }

// Valid reports whether the session may authenticate a request at instant now.
func (s *Session) Valid(now time.Time) bool {
	return s.Active && s.ExpiresAt.After(now)
}

// View is what session resolution hands to the request pipeline: the snapshot
// plus the audit-resolved owning user, credential hash already stripped.
type View struct {
	Data      Data       `json:"session_data"`
	UserName  string     `json:"user_name"`
	User      *user.User `json:"user"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CreateParams struct {
	UserID      string
	UserName    string
	SuperAdmin  bool
	RequestInfo map[string]any
}

type Created struct {
	ID       string `json:"id"`
	UserName string `json:"user_name"`
	Data     Data   `json:"session_data"`
}

type RepositoryAPI interface {
	Create(ctx context.Context, s *Session) error
	// GetActive returns the row matching id with active=true and
	// expires_at > now, or gorm.ErrRecordNotFound.
	GetActive(ctx context.Context, id string, now time.Time) (*Session, error)
	UpdateSnapshot(ctx context.Context, sessionID, userID, userName string, data Data, now time.Time) (int64, error)
	DeleteAllForUser(ctx context.Context, userID string) error
	Deactivate(ctx context.Context, sessionID, userID string, now time.Time) (int64, error)
}

// UserDirectory is the slice of the user store session resolution needs.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

type ServiceAPI interface {
	Create(ctx context.Context, params CreateParams) (*Created, error)
	Get(ctx context.Context, sessionID string, refresh bool) (*View, bool, error)
	UpdateSessionData(ctx context.Context, sessionID string, u *user.User) (*View, error)
	DeleteAll(ctx context.Context, userID string)
	Logout(ctx context.Context, userID, sessionID string) error
}
