package handlers

import (
	"donow/models"
	"donow/service"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.List(r.Context(), currentUser(r).ID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, tasks)
}

func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	var in models.TaskInput
	if !decodeJSON(w, r, &in) {
		return
	}

	task, err := h.tasks.Create(r.Context(), currentUser(r).ID, in)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, task)
}

func (h *Handlers) GetTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := taskIDFromPath(w, r)
	if !ok {
		return
	}

	task, err := h.tasks.Get(r.Context(), currentUser(r).ID, taskID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, task)
}

// UpdateTask replaces the task with the request body. An omitted
// description or completed flag resets that field.
func (h *Handlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := taskIDFromPath(w, r)
	if !ok {
		return
	}
	var in models.TaskInput
	if !decodeJSON(w, r, &in) {
		return
	}

	task, err := h.tasks.Update(r.Context(), currentUser(r).ID, taskID, in)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, task)
}

func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := taskIDFromPath(w, r)
	if !ok {
		return
	}

	task, err := h.tasks.Delete(r.Context(), currentUser(r).ID, taskID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, task)
}

// taskIDFromPath reads {id}. Ids that cannot name a task are not found.
func taskIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	taskID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || taskID <= 0 {
		respondServiceError(w, r, service.ErrNotFound)
		return 0, false
	}
	return taskID, true
}
