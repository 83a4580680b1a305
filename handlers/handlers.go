// Package handlers exposes the task API over HTTP.
package handlers

import (
	"donow/service"
	"donow/utils"
	"net/http"
)

// Handlers holds the dependencies shared by all request handlers.
type Handlers struct {
	auth     *service.AuthService
	tasks    *service.TaskService
	activity *utils.ActivityTracker
	notifier utils.SignupNotifier
}

func New(auth *service.AuthService, tasks *service.TaskService, activity *utils.ActivityTracker, notifier utils.SignupNotifier) *Handlers {
	if notifier == nil {
		notifier = utils.NopNotifier{}
	}
	return &Handlers{
		auth:     auth,
		tasks:    tasks,
		activity: activity,
		notifier: notifier,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
