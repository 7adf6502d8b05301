package session_test

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/adminboard/internal"
	"github.com/adminboard/internal/session"
	"github.com/adminboard/internal/user"
)

func TestSessionService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "SessionService Suite")
}

type mockSessionRepository struct {
	sessions map[string]*session.Session

	createError   error
	getError      error
	updateError   error
	updateCalls   int
	deletedFor    []string
	deleteError   error
	deactivateErr error
}

func newMockSessionRepository() *mockSessionRepository {
	return &mockSessionRepository{sessions: make(map[string]*session.Session)}
}

func (m *mockSessionRepository) Create(_ context.Context, s *session.Session) error {
	if m.createError != nil {
		return m.createError
	}
	clone := *s
	m.sessions[s.ID] = &clone
	return nil
}

func (m *mockSessionRepository) GetActive(_ context.Context, id string, now time.Time) (*session.Session, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	s, ok := m.sessions[id]
	if !ok || !s.Valid(now) {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *s
	return &clone, nil
}

func (m *mockSessionRepository) UpdateSnapshot(_ context.Context, sessionID, userID, userName string, data session.Data, now time.Time) (int64, error) {
	m.updateCalls++
	if m.updateError != nil {
		return 0, m.updateError
	}
	s, ok := m.sessions[sessionID]
	if !ok {
		return 0, nil
	}
	s.Data = data
	s.UserName = userName
	s.UpdatedAt = now
	s.LastUpdatedAt = now
	s.UpdatedByID = userID
	return 1, nil
}

func (m *mockSessionRepository) DeleteAllForUser(_ context.Context, userID string) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	m.deletedFor = append(m.deletedFor, userID)
	for id, s := range m.sessions {
		if s.UserID == userID {
			delete(m.sessions, id)
		}
	}
	return nil
}

func (m *mockSessionRepository) Deactivate(_ context.Context, sessionID, userID string, now time.Time) (int64, error) {
	if m.deactivateErr != nil {
		return 0, m.deactivateErr
	}
	s, ok := m.sessions[sessionID]
	if !ok || s.UserID != userID || !s.Active {
		return 0, nil
	}
	s.Active = false
	s.UpdatedAt = now
	return 1, nil
}

type mockUserDirectory struct {
	users    map[string]*user.User
	getError error
}

func (m *mockUserDirectory) GetByID(_ context.Context, id string) (*user.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *u
	return &clone, nil
}

var _ = Describe("SessionService", func() {
	var (
		repo    *mockSessionRepository
		users   *mockUserDirectory
		svc     *session.Service
		ctx     context.Context
		current time.Time

		owner *user.User
	)

	advance := func(d time.Duration) {
		current = current.Add(d)
	}

	BeforeEach(func() {
		ctx = context.Background()
		current = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

		owner = &user.User{
			ID:             "user_owner",
			FirstName:      "Mara",
			LastName:       "Lindqvist",
			Email:          "mara@example.com",
			HashedPassword: "notleaked",
		}

		repo = newMockSessionRepository()
		users = &mockUserDirectory{users: map[string]*user.User{owner.ID: owner}}

		svc = session.NewService(repo, users, 12*time.Hour, 2*time.Hour, nil)
		svc.SetNowFunc(func() time.Time { return current })
	})

	Describe("Create", func() {
		It("opens an active session with a fresh validity window", func() {
			created, err := svc.Create(ctx, session.CreateParams{
				UserID:   owner.ID,
				UserName: owner.FullName(),
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).To(HavePrefix("sess_"))

			row := repo.sessions[created.ID]
			Expect(row).NotTo(BeNil())
			Expect(row.Active).To(BeTrue())
			Expect(row.ExpiresAt).To(Equal(current.Add(12 * time.Hour)))
		})

		It("snapshots the super-admin flag into session data", func() {
			created, err := svc.Create(ctx, session.CreateParams{
				UserID:     owner.ID,
				UserName:   owner.FullName(),
				SuperAdmin: true,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(created.Data.SuperAdmin).To(BeTrue())
		})

		It("converts repository failures into the session creation error", func() {
			repo.createError = gorm.ErrInvalidDB

			_, err := svc.Create(ctx, session.CreateParams{UserID: owner.ID})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Message).To(Equal("Error creating session"))
		})
	})

	Describe("Get", func() {
		var sessionID string

		BeforeEach(func() {
			created, err := svc.Create(ctx, session.CreateParams{
				UserID:   owner.ID,
				UserName: owner.FullName(),
			})
			Expect(err).NotTo(HaveOccurred())
			sessionID = created.ID
		})

		It("returns the view without refreshing while the snapshot is fresh", func() {
			advance(30 * time.Minute)

			view, refreshed, err := svc.Get(ctx, sessionID, false)

			Expect(err).NotTo(HaveOccurred())
			Expect(refreshed).To(BeFalse())
			Expect(repo.updateCalls).To(BeZero())
			Expect(view.UserName).To(Equal("Mara Lindqvist"))
			Expect(view.User.HashedPassword).To(BeEmpty())
		})

		It("refreshes when the snapshot is older than the staleness TTL", func() {
			advance(2*time.Hour + time.Minute)

			_, refreshed, err := svc.Get(ctx, sessionID, false)

			Expect(err).NotTo(HaveOccurred())
			Expect(refreshed).To(BeTrue())
			Expect(repo.updateCalls).To(Equal(1))
		})

		It("refreshes on demand even when fresh", func() {
			advance(time.Minute)

			_, refreshed, err := svc.Get(ctx, sessionID, true)

			Expect(err).NotTo(HaveOccurred())
			Expect(refreshed).To(BeTrue())
			Expect(repo.updateCalls).To(Equal(1))
		})

		It("picks up a super-admin grant on refresh", func() {
			owner.SuperAdmin = true
			advance(3 * time.Hour)

			view, refreshed, err := svc.Get(ctx, sessionID, false)

			Expect(err).NotTo(HaveOccurred())
			Expect(refreshed).To(BeTrue())
			Expect(view.Data.SuperAdmin).To(BeTrue())
		})

		It("rejects an expired session as not found", func() {
			advance(12*time.Hour + time.Second)

			_, _, err := svc.Get(ctx, sessionID, false)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Message).To(Equal("Session not found"))
		})

		It("rejects an unknown session id as not found", func() {
			_, _, err := svc.Get(ctx, "sess_missing", false)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Message).To(Equal("Session not found"))
		})

		It("treats a vanished owner as not found", func() {
			delete(users.users, owner.ID)

			_, _, err := svc.Get(ctx, sessionID, false)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Message).To(Equal("Session not found"))
		})

		It("surfaces a failed refresh as the update error", func() {
			repo.updateError = gorm.ErrInvalidDB

			_, _, err := svc.Get(ctx, sessionID, true)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Message).To(Equal("Error connecting to database"))
		})
	})

	Describe("UpdateSessionData", func() {
		It("reports the contract message when no row matches", func() {
			_, err := svc.UpdateSessionData(ctx, "sess_missing", owner)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Message).To(Equal("Error updating session data"))
		})
	})

	Describe("Logout", func() {
		It("deactivates only the presented session", func() {
			first, err := svc.Create(ctx, session.CreateParams{UserID: owner.ID})
			Expect(err).NotTo(HaveOccurred())
			second, err := svc.Create(ctx, session.CreateParams{UserID: owner.ID})
			Expect(err).NotTo(HaveOccurred())

			Expect(svc.Logout(ctx, owner.ID, first.ID)).To(Succeed())

			Expect(repo.sessions[first.ID].Active).To(BeFalse())
			Expect(repo.sessions[second.ID].Active).To(BeTrue())
		})

		It("reports session not found when nothing matched", func() {
			err := svc.Logout(ctx, owner.ID, "sess_missing")

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Message).To(Equal("Session not found"))
		})

		It("refuses to deactivate another user's session", func() {
			created, err := svc.Create(ctx, session.CreateParams{UserID: owner.ID})
			Expect(err).NotTo(HaveOccurred())

			err = svc.Logout(ctx, "user_other", created.ID)

			Expect(err).To(HaveOccurred())
			Expect(repo.sessions[created.ID].Active).To(BeTrue())
		})
	})

	Describe("DeleteAll", func() {
		It("wipes every session of the user", func() {
			_, err := svc.Create(ctx, session.CreateParams{UserID: owner.ID})
			Expect(err).NotTo(HaveOccurred())
			_, err = svc.Create(ctx, session.CreateParams{UserID: owner.ID})
			Expect(err).NotTo(HaveOccurred())

			svc.DeleteAll(ctx, owner.ID)

			Expect(repo.sessions).To(BeEmpty())
		})

		It("swallows wipe failures", func() {
			repo.deleteError = gorm.ErrInvalidDB

			Expect(func() { svc.DeleteAll(ctx, owner.ID) }).NotTo(Panic())
		})
	})
})
