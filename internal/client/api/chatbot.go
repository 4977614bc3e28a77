package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pantrypal/pantrypal/internal/client/models"
)

// RecommendRecipe asks the assistant for a recipe based on the message
// (typically referencing expiring pantry items).
func (c *Client) RecommendRecipe(ctx context.Context, msg models.ChatMessage) (models.ChatReply, error) {
	var reply models.ChatReply
	err := c.call(ctx, http.MethodPost, "/chatbot/recommend", nil, msg, &reply, "chatbot request failed")
	return reply, err
}

// Chat continues (or starts, when msg.SessionID is nil) a stored
// conversation with the assistant.
func (c *Client) Chat(ctx context.Context, msg models.ChatMessage) (models.ChatReply, error) {
	var reply models.ChatReply
	err := c.call(ctx, http.MethodPost, "/chatbot/chat", nil, msg, &reply, "chatbot request failed")
	return reply, err
}

// ChatSessions lists the user's stored conversations.
func (c *Client) ChatSessions(ctx context.Context, userID int64) ([]models.ChatSession, error) {
	var sessions []models.ChatSession
	err := c.call(ctx, http.MethodGet, "/chatbot/sessions", userQuery(userID), nil, &sessions, "failed to list chat sessions")
	return sessions, err
}

// ChatSessionHistory fetches the messages of one conversation.
func (c *Client) ChatSessionHistory(ctx context.Context, sessionID int64) ([]models.ChatMessage, error) {
	var msgs []models.ChatMessage
	err := c.call(ctx, http.MethodGet, "/chatbot/sessions/"+itoa(sessionID), nil, nil, &msgs, "failed to fetch chat history")
	return msgs, err
}

// DeleteChatSession removes a stored conversation.
func (c *Client) DeleteChatSession(ctx context.Context, sessionID int64) error {
	return c.call(ctx, http.MethodDelete, "/chatbot/sessions/"+itoa(sessionID), nil, nil, nil, "failed to delete chat session")
}

// TitleSuggestions fetches recipe title prompts for the chat UI. The
// endpoint returns either a bare array or {"suggestions": [...]}; both
// decode to the same slice.
func (c *Client) TitleSuggestions(ctx context.Context) ([]string, error) {
	var raw json.RawMessage
	err := c.call(ctx, http.MethodGet, "/chatbot/title-suggestions", nil, nil, &raw, "failed to fetch recipe title suggestions")
	if err != nil {
		return nil, err
	}

	var titles []string
	if err := json.Unmarshal(raw, &titles); err == nil {
		return titles, nil
	}
	var wrapped struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		return wrapped.Suggestions, nil
	}
	return nil, nil
}
