package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/flowdeck/flowdeck-server/internal/database"
	"github.com/flowdeck/flowdeck-server/internal/models"
)

type LogRepository struct {
	db *database.DB
}

func NewLogRepository(db *database.DB) *LogRepository {
	return &LogRepository{db: db}
}

// Create writes one assistant interaction record. Callers treat failures as
// non-fatal; they log and move on.
func (r *LogRepository) Create(ctx context.Context, entry *models.AssistantLog) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO assistant_logs (user_id, message, log_type, context)
		 VALUES ($1, $2, $3, $4)
		 RETURNING log_id, created_at`,
		entry.UserID, entry.Message, entry.LogType, entry.Context,
	).Scan(&entry.LogID, &entry.CreatedAt)
}

func (r *LogRepository) GetRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*models.AssistantLog, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT log_id, user_id, message, log_type, context, created_at
		 FROM assistant_logs WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.AssistantLog
	for rows.Next() {
		entry := &models.AssistantLog{}
		if err := rows.Scan(&entry.LogID, &entry.UserID, &entry.Message,
			&entry.LogType, &entry.Context, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
