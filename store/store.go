// Package store is the persistence layer for users and tasks.
package store

import (
	"context"
	"donow/models"
	"errors"
)

var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrUnknownOwner      = errors.New("task owner does not exist")
)

// Repository is the set of queries available inside a transaction. Lookups
// report absence through the found flag instead of an error.
type Repository interface {
	FindUserByUsername(ctx context.Context, username string) (models.User, bool, error)
	InsertUser(ctx context.Context, username, hashedPassword string) (models.User, error)

	ListTasks(ctx context.Context, ownerID int64) ([]models.Task, error)
	InsertTask(ctx context.Context, ownerID int64, in models.TaskInput) (models.Task, error)
	FindTask(ctx context.Context, ownerID, taskID int64) (models.Task, bool, error)
	UpdateTask(ctx context.Context, ownerID, taskID int64, in models.TaskInput) (models.Task, bool, error)
	DeleteTask(ctx context.Context, ownerID, taskID int64) (models.Task, bool, error)
}

// Transactor runs fn inside a single transaction. The transaction commits
// when fn returns nil and rolls back otherwise.
type Transactor interface {
	InTx(ctx context.Context, fn func(Repository) error) error
}
