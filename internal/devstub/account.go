package devstub

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileUpdateRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !readJSON(w, r, &req) {
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "hashing password")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usersByEmail[req.Email]; exists {
		respondError(w, http.StatusConflict, "email already registered")
		return
	}

	s.nextUserID++
	u := &user{ID: s.nextUserID, Email: req.Email, Username: req.Username, Hash: hash}
	s.usersByEmail[u.Email] = u
	s.usersByID[u.ID] = u

	s.log.Info(r.Context(), "user registered", "user_id", u.ID)
	respondJSON(w, http.StatusCreated, map[string]int64{"user_id": u.ID})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !readJSON(w, r, &req) {
		return
	}

	s.mu.Lock()
	u, ok := s.usersByEmail[strings.ToLower(strings.TrimSpace(req.Email))]
	s.mu.Unlock()

	if !ok || bcrypt.CompareHashAndPassword(u.Hash, []byte(req.Password)) != nil {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := s.issueToken(u.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "signing token")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"token":   token,
		"user_id": u.ID,
	})
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.queryUserID(w, r)
	if !ok {
		return
	}
	var req profileUpdateRequest
	if !readJSON(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.usersByID[userID]
	if !ok {
		respondError(w, http.StatusNotFound, "unknown user")
		return
	}

	if req.Username != nil {
		u.Username = *req.Username
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if other, exists := s.usersByEmail[email]; exists && other.ID != u.ID {
			respondError(w, http.StatusConflict, "email already registered")
			return
		}
		delete(s.usersByEmail, u.Email)
		u.Email = email
		s.usersByEmail[email] = u
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "hashing password")
			return
		}
		u.Hash = hash
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// issueToken signs an HS256 JWT whose subject is the user id.
func (s *Server) issueToken(userID int64) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.JWTSecret)
}
