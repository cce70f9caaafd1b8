package hall

import (
	"context"
	"errors"
)

var ErrNotOwner = errors.New("caller does not own this hall")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateHall(ctx context.Context, ownerID, name, campus string) (*Hall, error) {
	if name == "" {
		return nil, errors.New("hall name is required")
	}

	h := &Hall{OwnerID: ownerID, Name: name, Campus: campus}
	id, err := s.repo.Create(ctx, h)
	if err != nil {
		return nil, err
	}
	h.ID = id
	h.Status = StatusPending
	return h, nil
}

func (s *Service) ListMine(ctx context.Context, ownerID string) ([]Hall, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// RequireOwner guards hall-scoped staff operations.
func (s *Service) RequireOwner(ctx context.Context, hallID int, userID string) error {
	owner, err := s.repo.IsOwner(ctx, hallID, userID)
	if err != nil {
		return err
	}
	if !owner {
		return ErrNotOwner
	}
	return nil
}

func (s *Service) Approve(ctx context.Context, hallID int) error {
	return s.repo.Approve(ctx, hallID)
}
