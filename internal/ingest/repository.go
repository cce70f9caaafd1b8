package ingest

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mealboard/internal/menu"
)

// ExtractJob is an uploaded file waiting for text extraction.
type ExtractJob struct {
	ID        int
	HallID    int
	ObjectKey string
	Filename  string
}

// ParseJob is extracted text waiting for a menu parser.
type ParseJob struct {
	ID      int
	HallID  int
	RawText string
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// FetchPendingExtract claims the next uploaded file and marks it
// EXTRACTING. Returns (nil, nil) when no jobs are available — that is
// NOT an error. SKIP LOCKED keeps concurrent workers off the same row.
func (r *Repository) FetchPendingExtract(ctx context.Context) (*ExtractJob, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var job ExtractJob
	err = tx.QueryRow(ctx, `
		SELECT id, hall_id, object_key, original_filename
		FROM menu_uploads
		WHERE status = $1
		ORDER BY updated_at
		LIMIT 1
		FOR UPDATE SKIP LOCKED
	`, menu.StatusUploaded).Scan(&job.ID, &job.HallID, &job.ObjectKey, &job.Filename)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	// claim atomically before releasing the lock
	_, err = tx.Exec(ctx, `
		UPDATE menu_uploads
		SET status = $1, updated_at = now()
		WHERE id = $2
	`, menu.StatusExtracting, job.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &job, nil
}

// SaveRawText stores the extracted text and hands the row to the parse
// worker.
func (r *Repository) SaveRawText(ctx context.Context, id int, text string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE menu_uploads
		SET raw_text = $1,
		    status = $2,
		    updated_at = now()
		WHERE id = $3
	`, text, menu.StatusTextReady, id)
	return err
}

// FetchPendingParse claims the next row with extracted text and marks
// it PARSING. Returns (nil, nil) when there is nothing to do.
func (r *Repository) FetchPendingParse(ctx context.Context) (*ParseJob, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var job ParseJob
	err = tx.QueryRow(ctx, `
		SELECT id, hall_id, raw_text
		FROM menu_uploads
		WHERE status = $1
		ORDER BY updated_at
		LIMIT 1
		FOR UPDATE SKIP LOCKED
	`, menu.StatusTextReady).Scan(&job.ID, &job.HallID, &job.RawText)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE menu_uploads
		SET status = $1, updated_at = now()
		WHERE id = $2
	`, menu.StatusParsing, job.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &job, nil
}

// MarkFailed records a pipeline failure so staff can see the reason and
// retry.
func (r *Repository) MarkFailed(ctx context.Context, id int, reason string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE menu_uploads
		SET status = $1,
		    failure_reason = $2,
		    updated_at = now()
		WHERE id = $3
	`, menu.StatusFailed, reason, id)
	return err
}
