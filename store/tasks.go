package store

import (
	"context"
	"donow/models"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const taskColumns = "id, title, description, completed, owner_id"

func (q *queries) ListTasks(ctx context.Context, ownerID int64) ([]models.Task, error) {
	stmt := "SELECT " + taskColumns + " FROM tasks WHERE owner_id = $1 ORDER BY id"
	rows, err := q.db.Query(ctx, stmt, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error querying tasks: %w", err)
	}
	tasks, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Task])
	if err != nil {
		return nil, fmt.Errorf("error processing tasks: %w", err)
	}
	return tasks, nil
}

func (q *queries) InsertTask(ctx context.Context, ownerID int64, in models.TaskInput) (models.Task, error) {
	stmt := "INSERT INTO tasks (title, description, completed, owner_id) VALUES ($1, $2, $3, $4) RETURNING " + taskColumns
	task, found, err := q.oneTask(ctx, stmt, in.Title, in.Description, in.Completed, ownerID)
	if isForeignKeyViolation(err) {
		return models.Task{}, ErrUnknownOwner
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to save task: %w", err)
	}
	if !found {
		return models.Task{}, errors.New("failed to save task: no row returned")
	}
	return task, nil
}

func (q *queries) FindTask(ctx context.Context, ownerID, taskID int64) (models.Task, bool, error) {
	stmt := "SELECT " + taskColumns + " FROM tasks WHERE id = $1 AND owner_id = $2"
	return q.oneTask(ctx, stmt, taskID, ownerID)
}

func (q *queries) UpdateTask(ctx context.Context, ownerID, taskID int64, in models.TaskInput) (models.Task, bool, error) {
	stmt := "UPDATE tasks SET title = $1, description = $2, completed = $3 WHERE id = $4 AND owner_id = $5 RETURNING " + taskColumns
	return q.oneTask(ctx, stmt, in.Title, in.Description, in.Completed, taskID, ownerID)
}

func (q *queries) DeleteTask(ctx context.Context, ownerID, taskID int64) (models.Task, bool, error) {
	stmt := "DELETE FROM tasks WHERE id = $1 AND owner_id = $2 RETURNING " + taskColumns
	return q.oneTask(ctx, stmt, taskID, ownerID)
}

func (q *queries) oneTask(ctx context.Context, stmt string, args ...any) (models.Task, bool, error) {
	rows, err := q.db.Query(ctx, stmt, args...)
	if err != nil {
		return models.Task{}, false, fmt.Errorf("error querying task: %w", err)
	}
	task, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Task])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Task{}, false, nil
		}
		return models.Task{}, false, fmt.Errorf("error scanning task: %w", err)
	}
	return task, true, nil
}
