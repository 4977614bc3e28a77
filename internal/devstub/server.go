// Package devstub is a self-contained in-memory stand-in for the PantryPal
// backend, used for local development and integration tests. It implements
// the same REST surface the client gateway talks to: accounts with JWT
// sessions, a per-user pantry with computed stats, receipt uploads with a
// delayed OCR result, and a canned recipe assistant. All state lives in
// memory and is lost on restart.
package devstub

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/golang-jwt/jwt/v5"

	"github.com/pantrypal/pantrypal/internal/logging"
)

// Config tunes the stub. Zero values get sensible defaults from NewServer.
type Config struct {
	JWTSecret []byte
	TokenTTL  time.Duration

	// ReceiptReadyAfter is how many result polls return "processing" before
	// the extraction appears. Mimics the real OCR pipeline latency.
	ReceiptReadyAfter int
}

type user struct {
	ID       int64
	Email    string
	Username string
	Hash     []byte
}

type pantryItem struct {
	ID           int64   `json:"id"`
	ItemName     string  `json:"item_name"`
	Category     string  `json:"category"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	PurchaseDate string  `json:"purchase_date"`
	ExpiryDate   string  `json:"expiry_date"`
}

type receipt struct {
	ID     string
	UserID int64
	Polls  int
}

type chatMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type chatSession struct {
	ID       int64
	UserID   int64
	Title    string
	Messages []chatMessage
}

// Server holds the stub state. Safe for concurrent use.
type Server struct {
	cfg Config
	log logging.Logger
	now func() time.Time

	mu            sync.Mutex
	usersByEmail  map[string]*user
	usersByID     map[int64]*user
	nextUserID    int64
	pantry        map[int64][]pantryItem
	nextItemID    int64
	receipts      map[string]*receipt
	objects       map[string][]byte
	sessions      map[int64]*chatSession
	nextSessionID int64
}

type ServerOption func(*Server)

func WithServerLogger(l logging.Logger) ServerOption {
	return func(s *Server) { s.log = l }
}

// WithServerClock overrides the time source (tests).
func WithServerClock(now func() time.Time) ServerOption {
	return func(s *Server) { s.now = now }
}

func NewServer(cfg Config, opts ...ServerOption) *Server {
	if len(cfg.JWTSecret) == 0 {
		cfg.JWTSecret = []byte("devstub-secret")
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = time.Hour
	}
	if cfg.ReceiptReadyAfter == 0 {
		cfg.ReceiptReadyAfter = 2
	}

	s := &Server{
		cfg:          cfg,
		log:          logging.Discard(),
		now:          time.Now,
		usersByEmail: map[string]*user{},
		usersByID:    map[int64]*user{},
		pantry:       map[int64][]pantryItem{},
		receipts:     map[string]*receipt{},
		objects:      map[string][]byte{},
		sessions:     map[int64]*chatSession{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the full route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-Id"},
	}))

	r.Post("/account/register", s.handleRegister)
	r.Post("/account/login", s.handleLogin)

	// The presigned upload target carries its key in the path, not a token.
	r.Put("/receipt/object/{key}", s.handleReceiptObjectPut)

	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Put("/account/update", s.handleUpdateProfile)

		r.Get("/pantry/list", s.handlePantryList)
		r.Post("/pantry/add", s.handlePantryAdd)
		r.Patch("/pantry/update", s.handlePantryUpdate)
		r.Post("/pantry/delete", s.handlePantryDelete)
		r.Get("/pantry/stats", s.handlePantryStats)
		r.Get("/pantry/expiring", s.handlePantryExpiring)

		r.Post("/receipt/presigned-url", s.handleReceiptPresignedURL)
		r.Post("/receipt/upload", s.handleReceiptUpload)
		r.Get("/receipt/result/{id}", s.handleReceiptResult)

		r.Post("/chatbot/recommend", s.handleChatRecommend)
		r.Post("/chatbot/chat", s.handleChat)
		r.Get("/chatbot/sessions", s.handleChatSessions)
		r.Get("/chatbot/sessions/{id}", s.handleChatHistory)
		r.Delete("/chatbot/sessions/{id}", s.handleChatDelete)
		r.Get("/chatbot/title-suggestions", s.handleTitleSuggestions)
	})

	return r
}

type ctxKey int

const userIDKey ctxKey = 0

// authMiddleware validates the bearer token and stashes the authenticated
// user id in the request context.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			respondError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"})).
			ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) { return s.cfg.JWTSecret, nil })
		if err != nil || !token.Valid {
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		sub, err := claims.GetSubject()
		if err != nil {
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		userID, err := strconv.ParseInt(sub, 10, 64)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	})
}

// queryUserID resolves the user id every user-scoped endpoint is addressed
// by. It must match the token's subject.
func (s *Server) queryUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	tokenUser, _ := r.Context().Value(userIDKey).(int64)

	raw := r.URL.Query().Get("user_id")
	if raw == "" {
		respondError(w, http.StatusBadRequest, "user_id is required")
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "user_id must be an integer")
		return 0, false
	}
	if id != tokenUser {
		respondError(w, http.StatusForbidden, "user_id does not match token")
		return 0, false
	}
	return id, true
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

func readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
