package service

import (
	"context"
	"donow/models"
	"donow/store"
	"donow/utils"
	"fmt"
)

// TaskService performs task CRUD for a single owner. A task owned by
// someone else is reported exactly like a missing one.
type TaskService struct {
	db store.Transactor
}

func NewTaskService(db store.Transactor) *TaskService {
	return &TaskService{db: db}
}

func (s *TaskService) List(ctx context.Context, ownerID int64) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.InTx(ctx, func(r store.Repository) error {
		var err error
		tasks, err = r.ListTasks(ctx, ownerID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

func (s *TaskService) Create(ctx context.Context, ownerID int64, in models.TaskInput) (models.Task, error) {
	if err := utils.ValidateTaskInput(in.Title, in.Description); err != nil {
		return models.Task{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var task models.Task
	err := s.db.InTx(ctx, func(r store.Repository) error {
		var err error
		task, err = r.InsertTask(ctx, ownerID, in)
		return err
	})
	if err != nil {
		return models.Task{}, fmt.Errorf("error creating task: %w", err)
	}
	return task, nil
}

func (s *TaskService) Get(ctx context.Context, ownerID, taskID int64) (models.Task, error) {
	return s.one(ctx, func(r store.Repository) (models.Task, bool, error) {
		return r.FindTask(ctx, ownerID, taskID)
	})
}

// Update replaces title, description and completed of the task.
func (s *TaskService) Update(ctx context.Context, ownerID, taskID int64, in models.TaskInput) (models.Task, error) {
	if err := utils.ValidateTaskInput(in.Title, in.Description); err != nil {
		return models.Task{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.one(ctx, func(r store.Repository) (models.Task, bool, error) {
		return r.UpdateTask(ctx, ownerID, taskID, in)
	})
}

// Delete removes the task and returns its last state.
func (s *TaskService) Delete(ctx context.Context, ownerID, taskID int64) (models.Task, error) {
	return s.one(ctx, func(r store.Repository) (models.Task, bool, error) {
		return r.DeleteTask(ctx, ownerID, taskID)
	})
}

func (s *TaskService) one(ctx context.Context, query func(store.Repository) (models.Task, bool, error)) (models.Task, error) {
	var (
		task  models.Task
		found bool
	)
	err := s.db.InTx(ctx, func(r store.Repository) error {
		var err error
		task, found, err = query(r)
		return err
	})
	if err != nil {
		return models.Task{}, fmt.Errorf("error accessing task: %w", err)
	}
	if !found {
		return models.Task{}, ErrNotFound
	}
	return task, nil
}
