package models

import "encoding/json"

// ChatMessage is one turn in a recipe-assistant conversation. SessionID is
// nil on the first message of a new conversation; the backend assigns one in
// the reply.
type ChatMessage struct {
	UserID    int64  `json:"user_id"`
	SessionID *int64 `json:"session_id,omitempty"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

// ChatReply is the assistant's answer plus the session the exchange belongs to.
type ChatReply struct {
	Reply     string `json:"reply"`
	SessionID int64  `json:"session_id"`
}

// AvailableIngredients handles a backend field that arrives either as a
// plain count or as the list of ingredient names, depending on backend
// version. Count() normalizes both forms.
type AvailableIngredients struct {
	count int
	names []string
}

func (a *AvailableIngredients) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		a.count = n
		a.names = nil
		return nil
	}
	var names []string
	if err := json.Unmarshal(data, &names); err == nil {
		a.count = len(names)
		a.names = names
		return nil
	}
	// Unknown shape decodes as zero rather than failing the whole session
	// list.
	a.count = 0
	a.names = nil
	return nil
}

func (a AvailableIngredients) MarshalJSON() ([]byte, error) {
	if a.names != nil {
		return json.Marshal(a.names)
	}
	return json.Marshal(a.count)
}

// Count returns the number of available ingredients regardless of wire form.
func (a AvailableIngredients) Count() int { return a.count }

// Names returns the ingredient names when the backend sent them, else nil.
func (a AvailableIngredients) Names() []string { return a.names }

// ChatSession is a stored recipe conversation with its extracted recipe.
type ChatSession struct {
	ID                   int64                `json:"id"`
	Title                string               `json:"title"`
	Summary              string               `json:"summary,omitempty"`
	PrepTime             int                  `json:"prep_time,omitempty"`
	Instructions         []string             `json:"instructions"`
	Ingredients          []string             `json:"ingredients"`
	AvailableIngredients AvailableIngredients `json:"available_ingredients"`
	TotalIngredients     int                  `json:"total_ingredients"`
}
