package hall

import "context"

type Repository interface {
	Create(ctx context.Context, hall *Hall) (int, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Hall, error)
	GetByID(ctx context.Context, id int) (*Hall, error)
	IsOwner(ctx context.Context, hallID int, userID string) (bool, error)
	Approve(ctx context.Context, hallID int) error
}
