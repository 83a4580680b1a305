package store_test

import (
	"context"
	"donow/models"
	"donow/store"
	"errors"
	"os"
	"testing"
)

// openTestStore connects to TEST_DATABASE_URL and starts from empty tables.
func openTestStore(t *testing.T) *store.Store {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := store.OpenDB(ctx, dsn)
	if err != nil {
		t.Fatalf("OpenDB() error = %v", err)
	}
	t.Cleanup(pool.Close)

	s := store.New(pool)
	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if _, err := pool.Exec(ctx, "TRUNCATE tasks, users RESTART IDENTITY CASCADE"); err != nil {
		t.Fatalf("truncate error = %v", err)
	}
	return s
}

func insertUser(t *testing.T, s *store.Store, username string) models.User {
	t.Helper()
	ctx := context.Background()

	var user models.User
	err := s.InTx(ctx, func(r store.Repository) error {
		var err error
		user, err = r.InsertUser(ctx, username, "hash-"+username)
		return err
	})
	if err != nil {
		t.Fatalf("InsertUser(%q) error = %v", username, err)
	}
	return user
}

func TestUsers(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	alice := insertUser(t, s, "alice")
	if alice.ID == 0 || alice.Username != "alice" || alice.HashedPassword != "hash-alice" {
		t.Fatalf("InsertUser() = %+v", alice)
	}

	err := s.InTx(ctx, func(r store.Repository) error {
		_, err := r.InsertUser(ctx, "alice", "other")
		return err
	})
	if !errors.Is(err, store.ErrDuplicateUsername) {
		t.Fatalf("duplicate InsertUser() error = %v, want %v", err, store.ErrDuplicateUsername)
	}

	err = s.InTx(ctx, func(r store.Repository) error {
		got, found, err := r.FindUserByUsername(ctx, "alice")
		if err != nil {
			return err
		}
		if !found || got != alice {
			t.Errorf("FindUserByUsername() = %+v, %v; want %+v", got, found, alice)
		}
		_, found, err = r.FindUserByUsername(ctx, "bob")
		if found {
			t.Error("FindUserByUsername() found unknown user")
		}
		return err
	})
	if err != nil {
		t.Fatalf("InTx() error = %v", err)
	}
}

func TestTasks(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	alice := insertUser(t, s, "alice")
	bob := insertUser(t, s, "bob")
	desc := "two litres"

	var task models.Task
	err := s.InTx(ctx, func(r store.Repository) error {
		var err error
		task, err = r.InsertTask(ctx, alice.ID, models.TaskInput{Title: "buy milk", Description: &desc})
		return err
	})
	if err != nil {
		t.Fatalf("InsertTask() error = %v", err)
	}
	if task.OwnerID != alice.ID || task.Completed || task.Description == nil || *task.Description != desc {
		t.Fatalf("InsertTask() = %+v", task)
	}

	err = s.InTx(ctx, func(r store.Repository) error {
		_, err := r.InsertTask(ctx, bob.ID+1000, models.TaskInput{Title: "orphan"})
		return err
	})
	if !errors.Is(err, store.ErrUnknownOwner) {
		t.Fatalf("InsertTask() for unknown owner error = %v, want %v", err, store.ErrUnknownOwner)
	}

	err = s.InTx(ctx, func(r store.Repository) error {
		if _, found, err := r.UpdateTask(ctx, bob.ID, task.ID, models.TaskInput{Title: "stolen"}); err != nil || found {
			t.Errorf("UpdateTask() by other owner found = %v, err = %v", found, err)
		}
		if _, found, err := r.DeleteTask(ctx, bob.ID, task.ID); err != nil || found {
			t.Errorf("DeleteTask() by other owner found = %v, err = %v", found, err)
		}

		updated, found, err := r.UpdateTask(ctx, alice.ID, task.ID, models.TaskInput{Title: "buy oat milk", Completed: true})
		if err != nil || !found {
			t.Fatalf("UpdateTask() found = %v, err = %v", found, err)
		}
		if updated.Title != "buy oat milk" || !updated.Completed || updated.Description != nil {
			t.Errorf("UpdateTask() = %+v, want full replace", updated)
		}

		tasks, err := r.ListTasks(ctx, alice.ID)
		if err != nil || len(tasks) != 1 {
			t.Errorf("ListTasks() = %v, %v", tasks, err)
		}

		deleted, found, err := r.DeleteTask(ctx, alice.ID, task.ID)
		if err != nil || !found || deleted.ID != task.ID {
			t.Errorf("DeleteTask() = %+v, %v, %v", deleted, found, err)
		}
		tasks, err = r.ListTasks(ctx, alice.ID)
		if err != nil || len(tasks) != 0 {
			t.Errorf("ListTasks() after delete = %v, %v", tasks, err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("InTx() error = %v", err)
	}
}

func TestInTxRollsBack(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	alice := insertUser(t, s, "alice")
	boom := errors.New("boom")

	err := s.InTx(ctx, func(r store.Repository) error {
		if _, err := r.InsertTask(ctx, alice.ID, models.TaskInput{Title: "half written"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("InTx() error = %v, want %v", err, boom)
	}

	_ = s.InTx(ctx, func(r store.Repository) error {
		tasks, err := r.ListTasks(ctx, alice.ID)
		if err != nil || len(tasks) != 0 {
			t.Errorf("ListTasks() = %v, %v; want no tasks after rollback", tasks, err)
		}
		return nil
	})
}
