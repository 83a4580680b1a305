package store

import (
	"context"
	"donow/models"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

func (q *queries) FindUserByUsername(ctx context.Context, username string) (models.User, bool, error) {
	stmt := "SELECT id, username, hashed_password FROM users WHERE username = $1"
	rows, err := q.db.Query(ctx, stmt, username)
	if err != nil {
		return models.User{}, false, fmt.Errorf("error querying user: %w", err)
	}
	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, false, nil
		}
		return models.User{}, false, fmt.Errorf("error scanning user: %w", err)
	}
	return user, true, nil
}

func (q *queries) InsertUser(ctx context.Context, username, hashedPassword string) (models.User, error) {
	stmt := "INSERT INTO users (username, hashed_password) VALUES ($1, $2) RETURNING id, username, hashed_password"
	rows, err := q.db.Query(ctx, stmt, username, hashedPassword)
	if err == nil {
		var user models.User
		user, err = pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.User])
		if err == nil {
			return user, nil
		}
	}
	if isUniqueViolation(err) {
		return models.User{}, ErrDuplicateUsername
	}
	return models.User{}, fmt.Errorf("error adding user: %w", err)
}

func isUniqueViolation(err error) bool {
	return hasCode(err, uniqueViolation)
}

func isForeignKeyViolation(err error) bool {
	return hasCode(err, foreignKeyViolation)
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
