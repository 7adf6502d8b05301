// Package seeder generates development fixtures. It must never run against
// production data; the routes exposing it are super-admin gated and say so.
package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/adminboard/internal"
	"github.com/adminboard/internal/user"
	"golang.org/x/crypto/bcrypt"
)

var (
	firstNames = []string{
		"Ava", "Noah", "Mia", "Liam", "Zoe", "Ethan", "Ivy", "Lucas",
		"Nora", "Mason", "Ruby", "Owen", "Elsa", "Felix", "Iris", "Hugo",
		"Lena", "Oscar", "Maya", "Jonas",
	}
	lastNames = []string{
		"Carter", "Nguyen", "Silva", "Haas", "Okafor", "Lindgren", "Moreau",
		"Tanaka", "Novak", "Petrov", "Keller", "Diaz", "Berg", "Costa",
		"Walsh", "Ibrahim", "Larsen", "Romano", "Fischer", "Adeyemi",
	}
	emailDomains = []string{"example.com", "example.org", "mailbox.dev", "post.test"}
	emailSymbols = []string{".", "_", "-"}
)

// Service produces randomized fixture values. It carries its own rand source
// so tests can seed it deterministically.
type Service struct {
	rng    *rand.Rand
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	return NewServiceWithSource(logger, rand.NewSource(time.Now().UnixNano()))
}

// NewServiceWithSource fixes the random source, for tests.
func NewServiceWithSource(logger *slog.Logger, src rand.Source) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{rng: rand.New(src), logger: logger}
}

// Boolean is true with the given probability.
func (s *Service) Boolean(chanceToBeTrue float64) bool {
	return s.rng.Float64() < chanceToBeTrue
}

func (s *Service) FirstName() string {
	return firstNames[s.rng.Intn(len(firstNames))]
}

func (s *Service) LastName() string {
	return lastNames[s.rng.Intn(len(lastNames))]
}

// Email composes first.last<nn>@domain, lowercased like every stored email.
func (s *Service) Email(firstName, lastName string) string {
	symbol := emailSymbols[s.rng.Intn(len(emailSymbols))]
	domain := emailDomains[s.rng.Intn(len(emailDomains))]
	n := s.rng.Intn(99) + 1
	return strings.ToLower(fmt.Sprintf("%s%s%s%d@%s", firstName, symbol, lastName, n, domain))
}

func (s *Service) Avatar() string {
	return fmt.Sprintf("avatars/%d.webp", s.rng.Intn(1000))
}

// HashedPassword hashes at the minimum cost: fixture rows do not need a
// production work factor and seeding hundreds of users at cost 10 is slow.
func (s *Service) HashedPassword(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return ""
	}
	return string(hash)
}

// ChooseFrom picks a random element, or "" from an empty slice.
func (s *Service) ChooseFrom(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return items[s.rng.Intn(len(items))]
}

// SeedUsers inserts amount randomized users. Audit references point at
// already-existing user ids; usually creator and updater are the same id.
func (s *Service) SeedUsers(ctx context.Context, repo user.RepositoryAPI, amount int) ([]*user.User, error) {
	existingIDs, err := repo.ListIDs(ctx)
	if err != nil {
		s.logger.Warn("could not load existing user ids, seeding without audit references", "error", err)
		existingIDs = nil
	}

	now := time.Now().UTC()
	seeded := make([]*user.User, 0, amount)
	for i := 0; i < amount; i++ {
		firstName := s.FirstName()
		lastName := s.LastName()
		email := s.Email(firstName, lastName)

		var createdBy, updatedBy *string
		if len(existingIDs) > 0 {
			if s.Boolean(0.8) {
				id := s.ChooseFrom(existingIDs)
				createdBy, updatedBy = &id, &id
			} else {
				c := s.ChooseFrom(existingIDs)
				u := s.ChooseFrom(existingIDs)
				createdBy, updatedBy = &c, &u
			}
		}

		seeded = append(seeded, &user.User{
			ID:             internal.NewID("user_"),
			Avatar:         s.Avatar(),
			FirstName:      firstName,
			LastName:       lastName,
			Email:          email,
			HashedPassword: s.HashedPassword(email),
			Tester:         s.Boolean(0.2),
			SuperAdmin:     s.Boolean(0.001),
			CreatedAt:      now,
			UpdatedAt:      now,
			CreatedByID:    createdBy,
			UpdatedByID:    updatedBy,
		})
	}

	if err := repo.CreateBatch(ctx, seeded); err != nil {
		return nil, internal.ErrDbConnection.WithCause(err)
	}

	s.logger.Info("seeded users", "amount", len(seeded))
	for _, u := range seeded {
		u.HashedPassword = ""
	}
	return seeded, nil
}
