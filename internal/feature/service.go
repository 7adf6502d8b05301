package feature

import (
	"context"
	"log/slog"

	"github.com/adminboard/internal"
)

type ServiceAPI interface {
	GetAll(ctx context.Context) ([]Feature, error)
	Ensure(ctx context.Context, name string, status Status) (*Feature, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

func (s *Service) GetAll(ctx context.Context) ([]Feature, error) {
	features, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list features", "error", err)
		return nil, internal.ErrDbConnection.WithCause(err)
	}
	return features, nil
}

// Ensure creates the flag when it does not exist yet; used by the seed
// command so re-running it stays idempotent.
func (s *Service) Ensure(ctx context.Context, name string, status Status) (*Feature, error) {
	existing, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return nil, internal.ErrDbConnection.WithCause(err)
	}
	if existing != nil {
		return existing, nil
	}

	f := &Feature{
		ID:     internal.NewID("feat_"),
		Name:   name,
		Status: status,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, internal.ErrDbConnection.WithCause(err)
	}
	s.logger.Info("feature flag created", "name", name, "status", status)
	return f, nil
}
