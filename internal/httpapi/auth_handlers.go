package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"usersdata/backend/internal/auth"
	"usersdata/backend/internal/model"
	"usersdata/backend/internal/store"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func validateCredentials(name, email, password string) (code, msg string) {
	if strings.TrimSpace(name) == "" {
		return "invalid_name", "name is required"
	}
	if !emailRegex.MatchString(email) {
		return "invalid_email", "a valid email is required"
	}
	if password == "" {
		return "invalid_password", "password is required"
	}
	return "", ""
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST only")
		return
	}

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

	writeJSON(w, http.StatusCreated, registerResponse{Message: "User registered", ID: created.ID})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST only")
		return
	}

	email, password, ok := readLogin(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	// One message for a missing account and a wrong password, so login
	// failures do not reveal which emails are registered.
	user, err := s.store.GetUserByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "invalid_credentials", "incorrect email or password")
			return
		}
		s.log.Error().Err(err).Msg("login lookup failed")
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
		return
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		writeError(w, http.StatusBadRequest, "invalid_credentials", "incorrect email or password")
		return
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to sign token")
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// readLogin accepts either a JSON body or an OAuth2-style password form
// (username=<email>&password=...).
func readLogin(r *http.Request) (email, password string, ok bool) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			return "", "", false
		}
		email = strings.TrimSpace(r.PostFormValue("username"))
		if email == "" {
			email = strings.TrimSpace(r.PostFormValue("email"))
		}
		password = r.PostFormValue("password")
	} else {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return "", "", false
		}
		email = strings.TrimSpace(req.Email)
		password = req.Password
	}

	if email == "" || password == "" {
		return "", "", false
	}
	return email, password, true
}

// writeCreateError translates an insert failure. The unique index on email
// is the only duplicate check; a racing insert loses with ErrConflict rather
// than producing a second row.
func (s *Server) writeCreateError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrConflict) {
		writeError(w, http.StatusBadRequest, "email_in_use", "email already registered")
		return
	}
	s.log.Error().Err(err).Msg("failed to create user")
	writeError(w, http.StatusInternalServerError, "internal", "internal server error")
}
