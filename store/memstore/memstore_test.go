package memstore_test

import (
	"context"
	"donow/models"
	"donow/store"
	"donow/store/memstore"
	"errors"
	"testing"
)

func insertUser(t *testing.T, s *memstore.Store, username string) models.User {
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

func TestInTxRollsBackOnError(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.InTx(ctx, func(r store.Repository) error {
		if _, err := r.InsertUser(ctx, "alice", "hash"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("InTx() error = %v, want %v", err, boom)
	}

	err = s.InTx(ctx, func(r store.Repository) error {
		_, found, err := r.FindUserByUsername(ctx, "alice")
		if err != nil {
			return err
		}
		if found {
			t.Error("user from rolled back transaction is visible")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("InTx() error = %v", err)
	}
}

func TestInsertUserDuplicate(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	err := s.InTx(ctx, func(r store.Repository) error {
		_, err := r.InsertUser(ctx, "alice", "hash")
		return err
	})
	if err != nil {
		t.Fatalf("first InsertUser() error = %v", err)
	}

	err = s.InTx(ctx, func(r store.Repository) error {
		_, err := r.InsertUser(ctx, "alice", "other")
		return err
	})
	if !errors.Is(err, store.ErrDuplicateUsername) {
		t.Fatalf("second InsertUser() error = %v, want %v", err, store.ErrDuplicateUsername)
	}
}

func TestTaskQueriesAreOwnerScoped(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()
	alice := insertUser(t, s, "alice")
	bob := insertUser(t, s, "bob")

	var task models.Task
	err := s.InTx(ctx, func(r store.Repository) error {
		var err error
		task, err = r.InsertTask(ctx, alice.ID, models.TaskInput{Title: "buy milk"})
		return err
	})
	if err != nil {
		t.Fatalf("InsertTask() error = %v", err)
	}

	err = s.InTx(ctx, func(r store.Repository) error {
		if _, found, _ := r.FindTask(ctx, bob.ID, task.ID); found {
			t.Error("FindTask() found a task owned by someone else")
		}
		if _, found, _ := r.UpdateTask(ctx, bob.ID, task.ID, models.TaskInput{Title: "x"}); found {
			t.Error("UpdateTask() updated a task owned by someone else")
		}
		if _, found, _ := r.DeleteTask(ctx, bob.ID, task.ID); found {
			t.Error("DeleteTask() deleted a task owned by someone else")
		}
		tasks, _ := r.ListTasks(ctx, bob.ID)
		if len(tasks) != 0 {
			t.Errorf("ListTasks() for other owner = %v, want empty", tasks)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("InTx() error = %v", err)
	}
}

func TestReturnedTasksDoNotAliasState(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()
	alice := insertUser(t, s, "alice")
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
	*task.Description = "changed"
	desc = "changed too"

	_ = s.InTx(ctx, func(r store.Repository) error {
		got, found, _ := r.FindTask(ctx, alice.ID, task.ID)
		if !found {
			t.Fatal("FindTask() did not find task")
		}
		if got.Description == nil || *got.Description != "two litres" {
			t.Errorf("Description = %v, want %q", got.Description, "two litres")
		}
		return nil
	})
}

func TestInsertTaskRejectsUnknownOwner(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	err := s.InTx(ctx, func(r store.Repository) error {
		_, err := r.InsertTask(ctx, 999, models.TaskInput{Title: "orphan"})
		return err
	})
	if !errors.Is(err, store.ErrUnknownOwner) {
		t.Fatalf("InsertTask() error = %v, want %v", err, store.ErrUnknownOwner)
	}

	// a user inserted in the same transaction can own tasks right away
	err = s.InTx(ctx, func(r store.Repository) error {
		user, err := r.InsertUser(ctx, "alice", "hash")
		if err != nil {
			return err
		}
		_, err = r.InsertTask(ctx, user.ID, models.TaskInput{Title: "buy milk"})
		return err
	})
	if err != nil {
		t.Fatalf("InsertTask() for new user error = %v", err)
	}
}

func TestInTxHonoursCancelledContext(t *testing.T) {
	s := memstore.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.InTx(ctx, func(r store.Repository) error {
		called = true
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("InTx() error = %v, want %v", err, context.Canceled)
	}
	if called {
		t.Error("callback ran for a cancelled context")
	}
}
