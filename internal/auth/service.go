package auth

import (
	"context"

	"github.com/adminboard/internal/core/events"
	"github.com/adminboard/internal/session"
	"github.com/adminboard/internal/user"
)

// Service is the login/register/logout flow composed over the user and
// session services.
type Service struct {
	users    user.ServiceAPI
	sessions session.ServiceAPI
	bus      *events.EventBus
}

func NewService(users user.ServiceAPI, sessions session.ServiceAPI, bus *events.EventBus) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		bus:      bus,
	}
}

func (s *Service) openSession(ctx context.Context, u *user.User, requestInfo map[string]any) (*session.Created, error) {
	created, err := s.sessions.Create(ctx, session.CreateParams{
		UserID:      u.ID,
		UserName:    u.FullName(),
		SuperAdmin:  u.SuperAdmin,
		RequestInfo: requestInfo,
	})
	if err != nil {
		return nil, err
	}

	if s.bus != nil {
		_ = s.bus.Publish(ctx, events.NewSessionCreated(created.ID, u.ID))
	}
	return created, nil
}

// Login validates credentials and opens a session. The returned user still
// carries the credential hash; the handler strips it before transmission.
func (s *Service) Login(ctx context.Context, dto LoginDTO, requestInfo map[string]any) (*user.User, *session.Created, error) {
	if err := dto.Validate(); err != nil {
		return nil, nil, err
	}

	u, err := s.users.Login(ctx, dto.Email, dto.Password)
	if err != nil {
		return nil, nil, err
	}

	created, err := s.openSession(ctx, u, requestInfo)
	if err != nil {
		return nil, nil, err
	}

	return u, created, nil
}

func (s *Service) Register(ctx context.Context, dto RegisterDTO, requestInfo map[string]any) (*user.User, *session.Created, error) {
	if err := dto.Validate(); err != nil {
		return nil, nil, err
	}

	u, err := s.users.Register(ctx, dto.Email, dto.Password, dto.PasswordConfirm)
	if err != nil {
		return nil, nil, err
	}

	if s.bus != nil {
		_ = s.bus.Publish(ctx, events.NewUserRegistered(u.ID, u.Email))
	}

	created, err := s.openSession(ctx, u, requestInfo)
	if err != nil {
		return nil, nil, err
	}

	return u, created, nil
}

// Refresh force-refreshes the session snapshot for the presented session id.
func (s *Service) Refresh(ctx context.Context, sessionID string) (*session.View, bool, error) {
	return s.sessions.Get(ctx, sessionID, true)
}

// ResolveSession is the shared resolution path used by the login guard.
func (s *Service) ResolveSession(ctx context.Context, sessionID string) (*session.View, bool, error) {
	return s.sessions.Get(ctx, sessionID, false)
}

// Logout deactivates only the presented session. Concurrent sessions of the
// same user are untouched.
func (s *Service) Logout(ctx context.Context, userID, sessionID string) error {
	return s.sessions.Logout(ctx, userID, sessionID)
}
