package mockapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"ledgerdesk/internal/domain"
)

// Default credentials accepted by a Server created with New.
const (
	DefaultUsername = "admin"
	DefaultPassword = "admin"
)

// Server serves a Book over HTTP.
type Server struct {
	book     *Book
	username string
	password string
	tokenTTL time.Duration
	now      func() time.Time

	mu     sync.Mutex
	tokens map[string]time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithCredentials sets the only username and password login accepts.
func WithCredentials(username, password string) Option {
	return func(s *Server) {
		s.username = username
		s.password = password
	}
}

// WithTokenTTL sets how long issued tokens stay valid.
func WithTokenTTL(d time.Duration) Option {
	return func(s *Server) { s.tokenTTL = d }
}

// WithClock replaces time.Now for token expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates a Server for book.
func New(book *Book, opts ...Option) *Server {
	s := &Server{
		book:     book,
		username: DefaultUsername,
		password: DefaultPassword,
		tokenTTL: 8 * time.Hour,
		now:      time.Now,
		tokens:   make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Book returns the served book.
func (s *Server) Book() *Book {
	return s.book
}

// Router builds the HTTP routes. Everything except login requires a bearer
// token issued by this server.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(logRequests)
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/login", s.handleLogin).Methods("POST")

	authed := api.NewRoute().Subrouter()
	authed.Use(s.requireToken)
	authed.HandleFunc("/groups", s.handleGroups).Methods("GET")
	authed.HandleFunc("/ledgers", s.handleLedgers).Methods("GET")
	authed.HandleFunc("/ledgers", s.handleCreateLedger).Methods("POST")
	authed.HandleFunc("/ledgers/{id}/statement", s.handleStatement).Methods("GET")
	authed.HandleFunc("/vouchers", s.handleVouchers).Methods("GET")
	authed.HandleFunc("/reports/trial-balance", s.handleTrialBalance).Methods("GET")
	return r
}

// Revoke invalidates a previously issued token.
func (s *Server) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("mockapi request", "method", r.Method, "path", r.URL.Path,
			"request_id", r.Header.Get("X-Request-ID"), "elapsed", time.Since(start))
	})
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		s.mu.Lock()
		exp, known := s.tokens[token]
		s.mu.Unlock()
		if !known || !s.now().Before(exp) {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username != s.username || req.Password != s.password {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	exp := s.now().Add(s.tokenTTL)
	token := IssueToken(req.Username, exp)
	s.mu.Lock()
	s.tokens[token] = exp
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleGroups(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.book.Groups())
}

func (s *Server) handleLedgers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.book.Ledgers())
}

func (s *Server) handleCreateLedger(w http.ResponseWriter, r *http.Request) {
	var nl domain.NewLedger
	if err := json.NewDecoder(r.Body).Decode(&nl); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	l, err := s.book.CreateLedger(nl)
	switch {
	case errors.Is(err, errDuplicateLedger):
		writeError(w, http.StatusConflict, err.Error())
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeJSON(w, http.StatusCreated, l)
	}
}

func (s *Server) handleStatement(w http.ResponseWriter, r *http.Request) {
	st, err := s.book.Statement(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleVouchers(w http.ResponseWriter, r *http.Request) {
	page, err := intParam(r, "page", 1)
	if err != nil || page < 1 {
		writeError(w, http.StatusBadRequest, "page must be a positive integer")
		return
	}
	size, err := intParam(r, "size", 20)
	if err != nil || size < 1 || size > 500 {
		writeError(w, http.StatusBadRequest, "size must be between 1 and 500")
		return
	}
	writeJSON(w, http.StatusOK, s.book.Vouchers(page, size))
}

func (s *Server) handleTrialBalance(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.book.TrialBalance())
}

func intParam(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("mockapi encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
