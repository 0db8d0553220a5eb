package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/flowdeck/flowdeck-server/internal/database"
	"github.com/flowdeck/flowdeck-server/internal/models"
)

type TaskRepository struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO tasks (user_id, title, subtasks, priority, duration_minutes, delegable)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING task_id, created_at`,
		task.UserID, task.Title, task.Subtasks, task.Priority,
		task.DurationMinutes, task.Delegable,
	).Scan(&task.TaskID, &task.CreatedAt)
}

func (r *TaskRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Task, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT task_id, user_id, title, subtasks, priority, duration_minutes, delegable, done, created_at
		 FROM tasks WHERE user_id = $1
		 ORDER BY done ASC, created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task := &models.Task{}
		if err := rows.Scan(&task.TaskID, &task.UserID, &task.Title, &task.Subtasks,
			&task.Priority, &task.DurationMinutes, &task.Delegable,
			&task.Done, &task.CreatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) SetDone(ctx context.Context, taskID, userID uuid.UUID, done bool) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE tasks SET done = $1 WHERE task_id = $2 AND user_id = $3`,
		done, taskID, userID,
	)
	return err
}

func (r *TaskRepository) Delete(ctx context.Context, taskID, userID uuid.UUID) error {
	_, err := r.db.Pool.Exec(ctx,
		`DELETE FROM tasks WHERE task_id = $1 AND user_id = $2`,
		taskID, userID,
	)
	return err
}
