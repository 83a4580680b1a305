package handlers

import (
	"context"
	"donow/models"
	"log"
	"net/http"
	"time"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type meResponse struct {
	models.User
	LastActivity *models.Activity `json:"last_activity,omitempty"`
}

// Register creates an account from a JSON username and password.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.auth.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		log.Println("register failed for user:", req.Username, "|error:", err)
		respondServiceError(w, r, err)
		return
	}
	log.Println("registered user:", user.Username)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if err := h.notifier.NotifySignup(ctx, user); err != nil {
		log.Println("error sending signup notification:", err)
	}

	respondWithJSON(w, http.StatusOK, user)
}

// Token exchanges form-encoded credentials for a bearer token.
func (h *Handlers) Token(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		respondError(w, http.StatusBadRequest, "missing credentials")
		return
	}

	resp, err := h.auth.Login(r.Context(), username, password)
	if err != nil {
		log.Println("login failed:", err)
		respondServiceError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	respondWithJSON(w, http.StatusOK, resp)
}

// Me describes the authenticated user and their previous request.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	resp := meResponse{User: user}

	activity, found, err := h.activity.LastActivity(r.Context(), user.ID)
	if err != nil {
		log.Println("error reading last activity:", err)
	} else if found {
		resp.LastActivity = &activity
	}

	respondWithJSON(w, http.StatusOK, resp)
}
