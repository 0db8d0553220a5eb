package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/flowdeck/flowdeck-server/internal/database"
	"github.com/flowdeck/flowdeck-server/internal/models"
)

type EventRepository struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) *EventRepository {
	return &EventRepository{db: db}
}

const insertEventSQL = `
	INSERT INTO events (user_id, title, start_time, end_time, category, color, location, rule_id, rule_date)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (rule_id, rule_date) WHERE rule_id IS NOT NULL DO NOTHING`

func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO events (user_id, title, start_time, end_time, category, color, location, rule_id, rule_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING event_id, created_at`,
		event.UserID, event.Title, event.Start, event.End, event.Category,
		event.Color, event.Location, event.RuleID, event.RuleDate,
	).Scan(&event.EventID, &event.CreatedAt)
}

// CreateMany inserts all events in one transaction using a pgx batch. Events
// carrying a (rule_id, rule_date) pair that already exists are silently
// skipped, which makes rule expansion idempotent per day. Returns the number
// of rows actually inserted; on any error the whole batch rolls back.
func (r *EventRepository) CreateMany(ctx context.Context, events []*models.Event) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, event := range events {
		batch.Queue(insertEventSQL,
			event.UserID, event.Title, event.Start, event.End, event.Category,
			event.Color, event.Location, event.RuleID, event.RuleDate,
		)
	}

	results := tx.SendBatch(ctx, batch)
	inserted := 0
	for range events {
		tag, err := results.Exec()
		if err != nil {
			results.Close()
			return 0, err
		}
		inserted += int(tag.RowsAffected())
	}
	if err := results.Close(); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return inserted, nil
}

// InsertGenerated inserts rule-generated events one batch statement at a
// time and reports which of them were actually inserted, so callers can tell
// fresh events apart from ones deduplicated by the (rule_id, rule_date) key.
func (r *EventRepository) InsertGenerated(ctx context.Context, events []*models.Event) ([]*models.Event, error) {
	if len(events) == 0 {
		return nil, nil
	}

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, event := range events {
		batch.Queue(insertEventSQL,
			event.UserID, event.Title, event.Start, event.End, event.Category,
			event.Color, event.Location, event.RuleID, event.RuleDate,
		)
	}

	results := tx.SendBatch(ctx, batch)
	var inserted []*models.Event
	for _, event := range events {
		tag, err := results.Exec()
		if err != nil {
			results.Close()
			return nil, err
		}
		if tag.RowsAffected() > 0 {
			inserted = append(inserted, event)
		}
	}
	if err := results.Close(); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return inserted, nil
}

func (r *EventRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Event, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT event_id, user_id, title, start_time, end_time, category, color, location, rule_id, rule_date, created_at
		 FROM events WHERE user_id = $1
		 ORDER BY start_time ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (r *EventRepository) GetByID(ctx context.Context, eventID, userID uuid.UUID) (*models.Event, error) {
	event := &models.Event{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT event_id, user_id, title, start_time, end_time, category, color, location, rule_id, rule_date, created_at
		 FROM events WHERE event_id = $1 AND user_id = $2`,
		eventID, userID,
	).Scan(&event.EventID, &event.UserID, &event.Title, &event.Start,
		&event.End, &event.Category, &event.Color, &event.Location,
		&event.RuleID, &event.RuleDate, &event.CreatedAt)
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (r *EventRepository) GetByDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*models.Event, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT event_id, user_id, title, start_time, end_time, category, color, location, rule_id, rule_date, created_at
		 FROM events WHERE user_id = $1 AND start_time >= $2 AND start_time <= $3
		 ORDER BY start_time ASC`,
		userID, start, end,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// Update moves or retitles an event (drag/resize from the calendar UI).
func (r *EventRepository) Update(ctx context.Context, eventID, userID uuid.UUID, title string, start, end time.Time) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE events SET title = $1, start_time = $2, end_time = $3
		 WHERE event_id = $4 AND user_id = $5`,
		title, start, end, eventID, userID,
	)
	return err
}

func (r *EventRepository) Delete(ctx context.Context, eventID, userID uuid.UUID) error {
	_, err := r.db.Pool.Exec(ctx,
		`DELETE FROM events WHERE event_id = $1 AND user_id = $2`,
		eventID, userID,
	)
	return err
}

func scanEvents(rows pgx.Rows) ([]*models.Event, error) {
	var events []*models.Event
	for rows.Next() {
		event := &models.Event{}
		if err := rows.Scan(&event.EventID, &event.UserID, &event.Title, &event.Start,
			&event.End, &event.Category, &event.Color, &event.Location,
			&event.RuleID, &event.RuleDate, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
