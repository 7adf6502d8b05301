package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/adminboard/internal"
	"github.com/adminboard/internal/user"
	"gorm.io/gorm"
)

// ErrSessionUpdate mirrors the creation failure for the refresh path.
var ErrSessionUpdate = internal.NewInternalError("Error updating session data", nil)

type Service struct {
	repo     RepositoryAPI
	users    UserDirectory
	validity time.Duration
	staleTTL time.Duration
	logger   *slog.Logger

	// now is swappable so staleness behavior is testable
	now func() time.Time
}

func NewService(repo RepositoryAPI, users UserDirectory, validity, staleTTL time.Duration, logger *slog.Logger) *Service {
	if validity <= 0 {
		validity = internal.DefaultSessionValidity
	}
	if staleTTL <= 0 {
		staleTTL = internal.DefaultSnapshotTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:     repo,
		users:    users,
		validity: validity,
		staleTTL: staleTTL,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SetNowFunc replaces the service clock. Tests use it to step through the
// staleness and expiry windows.
func (s *Service) SetNowFunc(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func dataFor(superAdmin bool) Data {
	if superAdmin {
		return Data{SuperAdmin: true}
	}
	return Data{}
}

// Create inserts a new active session with a fresh validity window.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Created, error) {
	now := s.now()
	row := &Session{
		ID:            internal.NewID("sess_"),
		UserID:        params.UserID,
		UserName:      params.UserName,
		Data:          dataFor(params.SuperAdmin),
		RequestInfo:   params.RequestInfo,
		ExpiresAt:     now.Add(s.validity),
		Active:        true,
		LastActiveAt:  now,
		LastUpdatedAt: now,
		CreatedAt:     now,
		UpdatedAt:     now,
		CreatedByID:   params.UserID,
		UpdatedByID:   params.UserID,
	}

	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("session create failed", "user_id", params.UserID, "error", err)
		return nil, internal.ErrSessionCreation.WithCause(err)
	}

	return &Created{ID: row.ID, UserName: row.UserName, Data: row.Data}, nil
}

// Get resolves an active, unexpired session together with its owning user.
// The second return value reports whether the denormalized snapshot was
// refreshed as a side effect: that happens when refresh is requested or when
// the snapshot is older than the staleness TTL.
func (s *Service) Get(ctx context.Context, sessionID string, refresh bool) (*View, bool, error) {
	now := s.now()

	row, err := s.repo.GetActive(ctx, sessionID, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, internal.ErrSessionNotFound
		}
		return nil, false, internal.ErrDbConnection.WithCause(err)
	}

	owner, err := s.users.GetByID(ctx, row.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, internal.ErrSessionNotFound
		}
		return nil, false, internal.ErrDbConnection.WithCause(err)
	}

	if refresh || now.Sub(row.LastUpdatedAt) >= s.staleTTL {
		view, err := s.UpdateSessionData(ctx, sessionID, owner)
		if err != nil {
			return nil, false, err
		}
		return view, true, nil
	}

	return &View{
		Data:      row.Data,
		UserName:  owner.FullName(),
		User:      owner.Sanitized(),
		UpdatedAt: row.UpdatedAt,
	}, false, nil
}

// UpdateSessionData recomputes the snapshot from the current user row and
// bumps the session timestamps.
func (s *Service) UpdateSessionData(ctx context.Context, sessionID string, u *user.User) (*View, error) {
	if u == nil || u.ID == "" {
		return nil, internal.ErrDbConnection
	}

	now := s.now()
	data := dataFor(u.SuperAdmin)

	rows, err := s.repo.UpdateSnapshot(ctx, sessionID, u.ID, u.FullName(), data, now)
	if err != nil {
		s.logger.Error("session snapshot update failed", "session_id", sessionID, "error", err)
		return nil, internal.ErrDbConnection.WithCause(err)
	}
	if rows == 0 {
		return nil, ErrSessionUpdate
	}

	return &View{
		Data:      data,
		UserName:  u.FullName(),
		User:      u.Sanitized(),
		UpdatedAt: now,
	}, nil
}

// DeleteAll hard-deletes every session for a user. Best-effort: a wipe that
// fails leaves rows that expire on their own.
func (s *Service) DeleteAll(ctx context.Context, userID string) {
	if err := s.repo.DeleteAllForUser(ctx, userID); err != nil {
		s.logger.Warn("session wipe failed", "user_id", userID, "error", err)
	}
}

// Logout flips active=false on exactly the presented session. Other sessions
// of the same user stay valid.
func (s *Service) Logout(ctx context.Context, userID, sessionID string) error {
	rows, err := s.repo.Deactivate(ctx, sessionID, userID, s.now())
	if err != nil {
		return internal.ErrDbConnection.WithCause(err)
	}
	if rows == 0 {
		return internal.ErrSessionNotFound
	}
	return nil
}
