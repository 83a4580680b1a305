// Package memstore keeps users and tasks in process memory. It backs the
// API in local development when no database is configured, and the tests.
package memstore

import (
	"context"
	"donow/models"
	"donow/store"
	"slices"
	"sync"
)

type state struct {
	users      []models.User
	tasks      []models.Task
	nextUserID int64
	nextTaskID int64
}

func (s state) clone() state {
	c := s
	c.users = slices.Clone(s.users)
	c.tasks = make([]models.Task, len(s.tasks))
	for i, t := range s.tasks {
		c.tasks[i] = copyTask(t)
	}
	return c
}

// Store serializes transactions. Each transaction works on a copy of the
// data that replaces the committed state only if the callback succeeds.
type Store struct {
	mu    sync.Mutex
	state state
}

var _ store.Transactor = (*Store)(nil)

func New() *Store {
	return &Store{state: state{nextUserID: 1, nextTaskID: 1}}
}

func (s *Store) InTx(ctx context.Context, fn func(store.Repository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &repo{state: s.state.clone()}
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.state = tx.state
	return nil
}

type repo struct {
	state state
}

func (r *repo) FindUserByUsername(_ context.Context, username string) (models.User, bool, error) {
	for _, u := range r.state.users {
		if u.Username == username {
			return u, true, nil
		}
	}
	return models.User{}, false, nil
}

func (r *repo) InsertUser(ctx context.Context, username, hashedPassword string) (models.User, error) {
	if _, found, _ := r.FindUserByUsername(ctx, username); found {
		return models.User{}, store.ErrDuplicateUsername
	}
	user := models.User{ID: r.state.nextUserID, Username: username, HashedPassword: hashedPassword}
	r.state.nextUserID++
	r.state.users = append(r.state.users, user)
	return user, nil
}

func (r *repo) ListTasks(_ context.Context, ownerID int64) ([]models.Task, error) {
	tasks := []models.Task{}
	for _, t := range r.state.tasks {
		if t.OwnerID == ownerID {
			tasks = append(tasks, copyTask(t))
		}
	}
	return tasks, nil
}

func (r *repo) InsertTask(_ context.Context, ownerID int64, in models.TaskInput) (models.Task, error) {
	if !slices.ContainsFunc(r.state.users, func(u models.User) bool { return u.ID == ownerID }) {
		return models.Task{}, store.ErrUnknownOwner
	}
	task := models.Task{
		ID:          r.state.nextTaskID,
		Title:       in.Title,
		Description: copyString(in.Description),
		Completed:   in.Completed,
		OwnerID:     ownerID,
	}
	r.state.nextTaskID++
	r.state.tasks = append(r.state.tasks, task)
	return copyTask(task), nil
}

func (r *repo) FindTask(_ context.Context, ownerID, taskID int64) (models.Task, bool, error) {
	i := r.indexOf(ownerID, taskID)
	if i < 0 {
		return models.Task{}, false, nil
	}
	return copyTask(r.state.tasks[i]), true, nil
}

func (r *repo) UpdateTask(_ context.Context, ownerID, taskID int64, in models.TaskInput) (models.Task, bool, error) {
	i := r.indexOf(ownerID, taskID)
	if i < 0 {
		return models.Task{}, false, nil
	}
	t := &r.state.tasks[i]
	t.Title = in.Title
	t.Description = copyString(in.Description)
	t.Completed = in.Completed
	return copyTask(*t), true, nil
}

func (r *repo) DeleteTask(_ context.Context, ownerID, taskID int64) (models.Task, bool, error) {
	i := r.indexOf(ownerID, taskID)
	if i < 0 {
		return models.Task{}, false, nil
	}
	deleted := r.state.tasks[i]
	r.state.tasks = slices.Delete(r.state.tasks, i, i+1)
	return deleted, true, nil
}

func (r *repo) indexOf(ownerID, taskID int64) int {
	return slices.IndexFunc(r.state.tasks, func(t models.Task) bool {
		return t.ID == taskID && t.OwnerID == ownerID
	})
}

func copyTask(t models.Task) models.Task {
	t.Description = copyString(t.Description)
	return t
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
