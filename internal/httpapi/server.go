package httpapi

import (
	"net/http"

	"github.com/rs/zerolog"

	"usersdata/backend/internal/auth"
	"usersdata/backend/internal/config"
	"usersdata/backend/internal/store"
)

type Server struct {
	cfg    config.Config
	store  store.Store
	tokens auth.Issuer
	log    zerolog.Logger
	mux    *http.ServeMux
}

func NewServer(cfg config.Config, st store.Store, tokens auth.Issuer, log zerolog.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		store:  st,
		tokens: tokens,
		log:    log,
		mux:    http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	var h http.Handler = s.mux
	h = recoverMiddleware(s.log, h)
	h = requestIDMiddleware(h)
	h = loggingMiddleware(s.log, h)
	return h
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/{$}", s.handleRoot)
	s.mux.HandleFunc("/health", s.handleHealth)

	s.mux.HandleFunc("/register", s.handleRegister)
	s.mux.HandleFunc("/login", s.handleLogin)

	s.mux.HandleFunc("/users", s.requireAuth(s.handleUsers))
	s.mux.HandleFunc("/users/{id}", s.requireAuth(s.handleUserByID))
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "API is running",
		"env":     s.cfg.Env,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
