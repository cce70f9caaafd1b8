package hall

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, hall *Hall) (int, error) {
	var id int
	err := r.db.QueryRow(ctx, `
		INSERT INTO halls (owner_id, name, campus, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, hall.OwnerID, hall.Name, hall.Campus, StatusPending).Scan(&id)
	return id, err
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]Hall, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, owner_id, name, campus, status
		FROM halls
		WHERE owner_id = $1
		ORDER BY id
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var halls []Hall
	for rows.Next() {
		var h Hall
		if err := rows.Scan(&h.ID, &h.OwnerID, &h.Name, &h.Campus, &h.Status); err != nil {
			return nil, err
		}
		halls = append(halls, h)
	}
	return halls, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (*Hall, error) {
	var h Hall
	err := r.db.QueryRow(ctx, `
		SELECT id, owner_id, name, campus, status
		FROM halls
		WHERE id = $1
	`, id).Scan(&h.ID, &h.OwnerID, &h.Name, &h.Campus, &h.Status)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errors.New("hall not found")
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *PostgresRepository) IsOwner(ctx context.Context, hallID int, userID string) (bool, error) {
	var owner bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM halls WHERE id = $1 AND owner_id = $2)
	`, hallID, userID).Scan(&owner)
	return owner, err
}

func (r *PostgresRepository) Approve(ctx context.Context, hallID int) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE halls SET status = $1 WHERE id = $2
	`, StatusApproved, hallID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return errors.New("hall not found")
	}
	return nil
}
