package menu

import (
	"context"
	"errors"
	"sync"
)

type memoryUpload struct {
	MenuUpload
	ObjectKey       string
	FailureReason   *string
	RejectionReason *string
	Approved        bool
	ApprovedBy      string
}

// MemoryRepository is an in-memory Repository used in tests.
type MemoryRepository struct {
	mu      sync.RWMutex
	uploads map[int]*memoryUpload // keyed by hall id
	nextID  int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		uploads: make(map[int]*memoryUpload),
		nextID:  1,
	}
}

func (r *MemoryRepository) UpsertUpload(ctx context.Context, hallID int, objectKey, filename string) (int, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.uploads[hallID]; ok {
		if u.Approved {
			return u.ID, u.Status, ErrMenuLocked
		}
		u.ObjectKey = objectKey
		u.Filename = filename
		u.Status = StatusUploaded
		u.ParsedData = nil
		u.FailureReason = nil
		u.RejectionReason = nil
		return u.ID, u.Status, nil
	}

	u := &memoryUpload{
		MenuUpload: MenuUpload{
			ID:       r.nextID,
			HallID:   hallID,
			Filename: filename,
			Status:   StatusUploaded,
		},
		ObjectKey: objectKey,
	}
	r.nextID++
	r.uploads[hallID] = u
	return u.ID, u.Status, nil
}

func (r *MemoryRepository) GetStatus(ctx context.Context, hallID int) (*UploadStatus, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.uploads[hallID]
	if !ok {
		return nil, ErrNoUpload
	}

	st := &UploadStatus{Status: u.Status}
	if u.FailureReason != nil {
		st.Reason = u.FailureReason
	} else if u.RejectionReason != nil {
		st.Reason = u.RejectionReason
	}
	return st, nil
}

func (r *MemoryRepository) RetryFailed(ctx context.Context, hallID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.uploads[hallID]
	if !ok || u.Status != StatusFailed {
		return errors.New("no failed upload to retry")
	}
	u.Status = StatusUploaded
	u.FailureReason = nil
	return nil
}

func (r *MemoryRepository) SaveParsed(ctx context.Context, hallID int, doc *WeeklyMenu) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.uploads[hallID]
	if !ok {
		return ErrNoUpload
	}
	u.ParsedData = doc
	u.Status = StatusParsed
	u.FailureReason = nil
	return nil
}

func (r *MemoryRepository) MarkFailed(ctx context.Context, hallID int, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.uploads[hallID]
	if !ok {
		return ErrNoUpload
	}
	u.Status = StatusFailed
	u.FailureReason = &reason
	return nil
}

func (r *MemoryRepository) GetWeekly(ctx context.Context, hallID int) (*WeeklyMenu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.uploads[hallID]
	if !ok || u.ParsedData == nil {
		return nil, ErrNotParsed
	}
	return u.ParsedData, nil
}

func (r *MemoryRepository) ReplaceWeekly(ctx context.Context, hallID int, doc *WeeklyMenu) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.uploads[hallID]
	if !ok || u.Status != StatusParsed {
		return ErrNotParsed
	}
	u.ParsedData = doc
	return nil
}

func (r *MemoryRepository) ListPending(ctx context.Context) ([]MenuUpload, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var uploads []MenuUpload
	for _, u := range r.uploads {
		if u.Status == StatusParsed && !u.Approved {
			uploads = append(uploads, u.MenuUpload)
		}
	}
	return uploads, nil
}

func (r *MemoryRepository) Approve(ctx context.Context, hallID int, adminID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.uploads[hallID]
	if !ok || u.Status != StatusParsed || u.Approved {
		return errors.New("no parsed menu awaiting approval")
	}
	u.Approved = true
	u.ApprovedBy = adminID
	return nil
}

func (r *MemoryRepository) Reject(ctx context.Context, hallID int, adminID, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.uploads[hallID]
	if !ok {
		return ErrNoUpload
	}
	u.Status = StatusRejected
	u.ApprovedBy = adminID
	u.RejectionReason = &reason
	return nil
}
