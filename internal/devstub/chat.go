package devstub

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

type chatRequest struct {
	UserID    int64  `json:"user_id"`
	SessionID *int64 `json:"session_id"`
	Content   string `json:"content"`
}

var titleSuggestions = []string{
	"Quick dinner from expiring items",
	"Use up my dairy before the weekend",
	"One-pan meal under 30 minutes",
	"Breakfast from what's in the pantry",
}

func (s *Server) handleChatRecommend(w http.ResponseWriter, r *http.Request) {
	s.chatReply(w, r, "recommend")
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	s.chatReply(w, r, "chat")
}

// chatReply appends the user message to a session (creating one when needed)
// and answers with a canned reply.
func (s *Server) chatReply(w http.ResponseWriter, r *http.Request, kind string) {
	var req chatRequest
	if !readJSON(w, r, &req) {
		return
	}
	tokenUser, _ := r.Context().Value(userIDKey).(int64)
	if req.UserID != tokenUser {
		respondError(w, http.StatusForbidden, "user_id does not match token")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var session *chatSession
	if req.SessionID != nil {
		session = s.sessions[*req.SessionID]
		if session == nil || session.UserID != req.UserID {
			respondError(w, http.StatusNotFound, "unknown session")
			return
		}
	} else {
		s.nextSessionID++
		title := req.Content
		if len(title) > 40 {
			title = title[:40]
		}
		session = &chatSession{ID: s.nextSessionID, UserID: req.UserID, Title: title}
		s.sessions[session.ID] = session
	}

	now := s.now().Format(time.RFC3339)
	reply := fmt.Sprintf("Here is a %s idea based on: %s", kind, req.Content)

	session.Messages = append(session.Messages,
		chatMessage{Role: "user", Content: req.Content, Timestamp: now},
		chatMessage{Role: "assistant", Content: reply, Timestamp: now},
	)

	respondJSON(w, http.StatusOK, map[string]any{
		"reply":      reply,
		"session_id": session.ID,
	})
}

func (s *Server) handleChatSessions(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.queryUserID(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	out := make([]map[string]any, 0)
	for _, session := range s.sessions {
		if session.UserID != userID {
			continue
		}
		out = append(out, map[string]any{
			"id":                    session.ID,
			"title":                 session.Title,
			"instructions":          []string{},
			"ingredients":           []string{},
			"available_ingredients": 0,
			"total_ingredients":     0,
		})
	}
	s.mu.Unlock()

	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid session id")
		return
	}
	tokenUser, _ := r.Context().Value(userIDKey).(int64)

	s.mu.Lock()
	session := s.sessions[id]
	valid := session != nil && session.UserID == tokenUser
	msgs := []chatMessage{}
	if valid {
		msgs = append(msgs, session.Messages...)
	}
	s.mu.Unlock()

	if !valid {
		respondError(w, http.StatusNotFound, "unknown session")
		return
	}
	respondJSON(w, http.StatusOK, msgs)
}

func (s *Server) handleChatDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid session id")
		return
	}
	tokenUser, _ := r.Context().Value(userIDKey).(int64)

	s.mu.Lock()
	session := s.sessions[id]
	if session != nil && session.UserID == tokenUser {
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	if session == nil || session.UserID != tokenUser {
		respondError(w, http.StatusNotFound, "unknown session")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleTitleSuggestions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string][]string{"suggestions": titleSuggestions})
}
