package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/flowdeck/flowdeck-server/internal/database"
	"github.com/flowdeck/flowdeck-server/internal/models"
)

type RoutineRepository struct {
	db *database.DB
}

func NewRoutineRepository(db *database.DB) *RoutineRepository {
	return &RoutineRepository{db: db}
}

func (r *RoutineRepository) Create(ctx context.Context, record *models.RoutineRecord) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO routines (user_id, name, steps, active)
		 VALUES ($1, $2, $3, $4)
		 RETURNING routine_id, created_at`,
		record.UserID, record.Name, record.Steps, record.Active,
	).Scan(&record.RoutineID, &record.CreatedAt)
}

func (r *RoutineRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.RoutineRecord, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT routine_id, user_id, name, steps, active, created_at
		 FROM routines WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.RoutineRecord
	for rows.Next() {
		record := &models.RoutineRecord{}
		if err := rows.Scan(&record.RoutineID, &record.UserID, &record.Name,
			&record.Steps, &record.Active, &record.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// SetActive marks one routine active and deactivates the user's others.
func (r *RoutineRepository) SetActive(ctx context.Context, routineID, userID uuid.UUID) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE routines SET active = FALSE WHERE user_id = $1`, userID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx,
		`UPDATE routines SET active = TRUE WHERE routine_id = $1 AND user_id = $2`,
		routineID, userID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *RoutineRepository) Delete(ctx context.Context, routineID, userID uuid.UUID) error {
	_, err := r.db.Pool.Exec(ctx,
		`DELETE FROM routines WHERE routine_id = $1 AND user_id = $2`,
		routineID, userID,
	)
	return err
}
