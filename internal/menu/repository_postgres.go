package menu

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNoUpload   = errors.New("no menu uploaded for this hall")
	ErrMenuLocked = errors.New("menu already approved and locked")
	ErrNotParsed  = errors.New("no parsed menu for this hall")
)

// Querier is the subset of pgxpool.Pool the repository touches; tests
// substitute a pgxmock pool.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type PostgresRepository struct {
	db Querier
}

func NewPostgresRepository(db Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) UpsertUpload(
	ctx context.Context,
	hallID int,
	objectKey string,
	filename string,
) (int, string, error) {

	var (
		uploadID int
		status   string
		approved bool
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, status, approved_at IS NOT NULL
		FROM menu_uploads
		WHERE hall_id = $1
	`, hallID).Scan(&uploadID, &status, &approved)

	if err == nil {
		if approved {
			return uploadID, status, ErrMenuLocked
		}

		// replace the existing upload, restarting the pipeline
		_, err = r.db.Exec(ctx, `
			UPDATE menu_uploads
			SET object_key = $1,
			    original_filename = $2,
			    status = $3,
			    raw_text = NULL,
			    parsed_data = NULL,
			    failure_reason = NULL,
			    rejection_reason = NULL,
			    updated_at = now()
			WHERE hall_id = $4
		`, objectKey, filename, StatusUploaded, hallID)
		return uploadID, StatusUploaded, err
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, "", err
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO menu_uploads (hall_id, object_key, original_filename, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, hallID, objectKey, filename, StatusUploaded).Scan(&uploadID)
	return uploadID, StatusUploaded, err
}

func (r *PostgresRepository) GetStatus(ctx context.Context, hallID int) (*UploadStatus, error) {
	var st UploadStatus
	var failure, rejection *string

	err := r.db.QueryRow(ctx, `
		SELECT status, failure_reason, rejection_reason
		FROM menu_uploads
		WHERE hall_id = $1
	`, hallID).Scan(&st.Status, &failure, &rejection)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoUpload
	}
	if err != nil {
		return nil, err
	}

	if failure != nil {
		st.Reason = failure
	} else if rejection != nil {
		st.Reason = rejection
	}
	return &st, nil
}

func (r *PostgresRepository) RetryFailed(ctx context.Context, hallID int) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE menu_uploads
		SET status = $1,
		    failure_reason = NULL,
		    updated_at = now()
		WHERE hall_id = $2
		  AND status = $3
	`, StatusUploaded, hallID, StatusFailed)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return errors.New("no failed upload to retry")
	}
	return nil
}

func (r *PostgresRepository) SaveParsed(ctx context.Context, hallID int, doc *WeeklyMenu) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	cmd, err := r.db.Exec(ctx, `
		UPDATE menu_uploads
		SET parsed_data = $1,
		    status = $2,
		    failure_reason = NULL,
		    updated_at = now()
		WHERE hall_id = $3
	`, data, StatusParsed, hallID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNoUpload
	}
	return nil
}

func (r *PostgresRepository) MarkFailed(ctx context.Context, hallID int, reason string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE menu_uploads
		SET status = $1,
		    failure_reason = $2,
		    updated_at = now()
		WHERE hall_id = $3
	`, StatusFailed, reason, hallID)
	return err
}

func (r *PostgresRepository) GetWeekly(ctx context.Context, hallID int) (*WeeklyMenu, error) {
	var data []byte
	err := r.db.QueryRow(ctx, `
		SELECT parsed_data
		FROM menu_uploads
		WHERE hall_id = $1
		  AND parsed_data IS NOT NULL
	`, hallID).Scan(&data)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotParsed
	}
	if err != nil {
		return nil, err
	}

	var w WeeklyMenu
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *PostgresRepository) ReplaceWeekly(ctx context.Context, hallID int, doc *WeeklyMenu) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	cmd, err := r.db.Exec(ctx, `
		UPDATE menu_uploads
		SET parsed_data = $1,
		    updated_at = now()
		WHERE hall_id = $2
		  AND status = $3
	`, data, hallID, StatusParsed)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotParsed
	}
	return nil
}

func (r *PostgresRepository) ListPending(ctx context.Context) ([]MenuUpload, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, hall_id, original_filename, status, parsed_data
		FROM menu_uploads
		WHERE status = $1
		  AND approved_at IS NULL
		ORDER BY updated_at ASC
	`, StatusParsed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var uploads []MenuUpload
	for rows.Next() {
		var (
			m    MenuUpload
			data []byte
		)
		if err := rows.Scan(&m.ID, &m.HallID, &m.Filename, &m.Status, &data); err != nil {
			return nil, err
		}
		if len(data) > 0 {
			var w WeeklyMenu
			if err := json.Unmarshal(data, &w); err != nil {
				return nil, err
			}
			m.ParsedData = &w
		}
		uploads = append(uploads, m)
	}
	return uploads, rows.Err()
}

func (r *PostgresRepository) Approve(ctx context.Context, hallID int, adminID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `
		UPDATE menu_uploads
		SET approved_at = now(),
		    approved_by = $2
		WHERE hall_id = $1
		  AND status = $3
		  AND approved_at IS NULL
	`, hallID, adminID, StatusParsed)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return errors.New("no parsed menu awaiting approval")
	}

	// approving a menu publishes its hall
	_, err = tx.Exec(ctx, `
		UPDATE halls SET status = 'APPROVED' WHERE id = $1
	`, hallID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) Reject(ctx context.Context, hallID int, adminID, reason string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE menu_uploads
		SET status = $1,
		    approved_by = $2,
		    rejection_reason = $3,
		    updated_at = now()
		WHERE hall_id = $4
	`, StatusRejected, adminID, reason, hallID)
	return err
}
