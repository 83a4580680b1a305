package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Routes builds the API router.
func (h *Handlers) Routes() http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	router.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	router.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	router.HandleFunc("/token", h.Token).Methods(http.MethodPost)

	protected := router.NewRoute().Subrouter()
	protected.Use(h.RequireUser)
	protected.HandleFunc("/tasks", h.ListTasks).Methods(http.MethodGet)
	protected.HandleFunc("/tasks", h.CreateTask).Methods(http.MethodPost)
	protected.HandleFunc("/tasks/{id}", h.GetTask).Methods(http.MethodGet)
	protected.HandleFunc("/tasks/{id}", h.UpdateTask).Methods(http.MethodPut)
	protected.HandleFunc("/tasks/{id}", h.DeleteTask).Methods(http.MethodDelete)
	protected.HandleFunc("/users/me", h.Me).Methods(http.MethodGet)

	return LogRequests(router)
}
