package models

type Task struct {
	ID          int64   `db:"id" json:"id"`
	Title       string  `db:"title" json:"title"`
	Description *string `db:"description" json:"description"`
	Completed   bool    `db:"completed" json:"completed"`
	OwnerID     int64   `db:"owner_id" json:"owner_id"`
}

// TaskInput carries the caller-editable fields of a task. Updates replace
// all of them.
type TaskInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
}
