package menu

import "context"

// Repository defines the menu upload and weekly menu persistence
// operations. One active upload per hall.
type Repository interface {
	// UpsertUpload creates or replaces the hall's upload row. An approved
	// menu is locked and cannot be replaced.
	UpsertUpload(ctx context.Context, hallID int, objectKey, filename string) (uploadID int, status string, err error)

	GetStatus(ctx context.Context, hallID int) (*UploadStatus, error)
	RetryFailed(ctx context.Context, hallID int) error

	// SaveParsed atomically stores the parsed weekly menu and marks the
	// row PARSED.
	SaveParsed(ctx context.Context, hallID int, doc *WeeklyMenu) error
	MarkFailed(ctx context.Context, hallID int, reason string) error

	GetWeekly(ctx context.Context, hallID int) (*WeeklyMenu, error)
	// ReplaceWeekly overwrites the stored menu with a review edit.
	ReplaceWeekly(ctx context.Context, hallID int, doc *WeeklyMenu) error

	ListPending(ctx context.Context) ([]MenuUpload, error)
	Approve(ctx context.Context, hallID int, adminID string) error
	Reject(ctx context.Context, hallID int, adminID, reason string) error
}
