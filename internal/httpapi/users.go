package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"usersdata/backend/internal/auth"
	"usersdata/backend/internal/model"
	"usersdata/backend/internal/store"
)

type listUsersResponse struct {
	Count int          `json:"count"`
	Data  []model.User `json:"data"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type patchRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listUsers(w, r)
	case http.MethodPost:
		s.createUser(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "GET or POST only")
	}
}

func (s *Server) handleUserByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	switch r.Method {
	case http.MethodPut:
		s.replaceUser(w, r, id)
	case http.MethodPatch:
		s.patchUser(w, r, id)
	case http.MethodDelete:
		s.deleteUser(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "PUT, PATCH or DELETE only")
	}
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list users")
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
		return
	}
	if users == nil {
		users = []model.User{}
	}
	writeJSON(w, http.StatusOK, listUsersResponse{Count: len(users), Data: users})
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON")
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	if code, msg := validateCredentials(req.Name, req.Email, req.Password); code != "" {
		writeError(w, http.StatusBadRequest, code, msg)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_password", "invalid password")
		return
	}

	created, err := s.store.CreateUser(r.Context(), model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if err != nil {
		s.writeCreateError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{Message: "User added successfully", ID: created.ID})
}

func (s *Server) replaceUser(w http.ResponseWriter, r *http.Request, id string) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON")
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	if code, msg := validateCredentials(req.Name, req.Email, req.Password); code != "" {
		writeError(w, http.StatusBadRequest, code, msg)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_password", "invalid password")
		return
	}

	err = s.store.ReplaceUser(r.Context(), id, model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if err != nil {
		s.writeUpdateError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "User updated"})
}

func (s *Server) patchUser(w http.ResponseWriter, r *http.Request, id string) {
	var req patchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON")
		return
	}

	if req.Name == nil && req.Email == nil && req.Password == nil {
		writeError(w, http.StatusBadRequest, "empty_patch", "no fields to update")
		return
	}

	patch := model.UserPatch{Name: req.Name}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if !emailRegex.MatchString(email) {
			writeError(w, http.StatusBadRequest, "invalid_email", "a valid email is required")
			return
		}
		patch.Email = &email
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_password", "invalid password")
			return
		}
		patch.PasswordHash = &hash
	}

	if err := s.store.PatchUser(r.Context(), id, patch); err != nil {
		s.writeUpdateError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "User patched"})
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.store.DeleteUser(r.Context(), id); err != nil {
		s.writeUpdateError(w, err)
		return
	}

	if actor, ok := currentUser(r.Context()); ok {
		s.log.Info().Str("actor", actor.ID).Str("deleted", id).Msg("user deleted")
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "User deleted"})
}

func (s *Server) writeUpdateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "user not found")
	case errors.Is(err, store.ErrConflict):
		writeError(w, http.StatusBadRequest, "email_in_use", "email already registered")
	default:
		s.log.Error().Err(err).Msg("failed to update user")
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}
