package hall

import (
	"context"
	"errors"
	"sync"
)

type InMemoryRepository struct {
	mu     sync.RWMutex
	nextID int
	halls  map[int]*Hall
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1, halls: make(map[int]*Hall)}
}

func (r *InMemoryRepository) Create(_ context.Context, hall *Hall) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	hall.ID = r.nextID
	hall.Status = StatusPending
	r.nextID++
	cp := *hall
	r.halls[hall.ID] = &cp
	return hall.ID, nil
}

func (r *InMemoryRepository) ListByOwner(_ context.Context, ownerID string) ([]Hall, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Hall
	for id := 1; id < r.nextID; id++ {
		if h, ok := r.halls[id]; ok && h.OwnerID == ownerID {
			out = append(out, *h)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id int) (*Hall, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.halls[id]
	if !ok {
		return nil, errors.New("hall not found")
	}
	cp := *h
	return &cp, nil
}

func (r *InMemoryRepository) IsOwner(_ context.Context, hallID int, userID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.halls[hallID]
	return ok && h.OwnerID == userID, nil
}

func (r *InMemoryRepository) Approve(_ context.Context, hallID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.halls[hallID]
	if !ok {
		return errors.New("hall not found")
	}
	h.Status = StatusApproved
	return nil
}
