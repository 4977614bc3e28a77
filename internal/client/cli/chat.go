package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pantrypal/pantrypal/internal/client/models"
)

// Recommend asks the assistant for a recipe built around the pantry items
// closest to expiry.
func (a *App) Recommend(ctx context.Context) error {
	userID, err := a.requireUser()
	if err != nil {
		return err
	}

	items, err := a.gateway.ExpiringPantryItems(ctx, userID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("Nothing is expiring soon; ask with 'chat' instead.")
		return nil
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}

	reply, err := a.gateway.RecommendRecipe(ctx, models.ChatMessage{
		UserID:  userID,
		Role:    "user",
		Content: "Suggest a recipe using: " + strings.Join(names, ", "),
	})
	if err != nil {
		return err
	}
	fmt.Println(reply.Reply)
	return nil
}

// Chat runs an interactive conversation with the recipe assistant. The first
// exchange opens a new stored session; an empty message ends the loop.
func (a *App) Chat(ctx context.Context) error {
	userID, err := a.requireUser()
	if err != nil {
		return err
	}

	var sessionID *int64
	for {
		content, err := getSimpleText(a.reader, "You (empty line to finish)", os.Stdout)
		if err != nil {
			return err
		}
		if content == "" {
			return nil
		}

		reply, err := a.gateway.Chat(ctx, models.ChatMessage{
			UserID:    userID,
			SessionID: sessionID,
			Role:      "user",
			Content:   content,
		})
		if err != nil {
			return err
		}
		sessionID = &reply.SessionID
		fmt.Println(reply.Reply)
	}
}

// Sessions lists the stored recipe conversations.
func (a *App) Sessions(ctx context.Context) error {
	userID, err := a.requireUser()
	if err != nil {
		return err
	}
	sessions, err := a.gateway.ChatSessions(ctx, userID)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("(no saved conversations)")
		return nil
	}
	for _, s := range sessions {
		fmt.Printf("%4d  %-32s %d/%d ingredients on hand\n",
			s.ID, s.Title, s.AvailableIngredients.Count(), s.TotalIngredients)
	}
	return nil
}

// History prints the messages of one stored conversation.
func (a *App) History(ctx context.Context) error {
	if _, err := a.requireUser(); err != nil {
		return err
	}
	id, err := GetInt(a.reader, "Session id", os.Stdout)
	if err != nil {
		return err
	}
	msgs, err := a.gateway.ChatSessionHistory(ctx, int64(id))
	if err != nil {
		return err
	}
	for _, msg := range msgs {
		fmt.Printf("[%s] %s\n", msg.Role, msg.Content)
	}
	return nil
}

// DeleteSession removes a stored conversation.
func (a *App) DeleteSession(ctx context.Context) error {
	if _, err := a.requireUser(); err != nil {
		return err
	}
	id, err := GetInt(a.reader, "Session id to delete", os.Stdout)
	if err != nil {
		return err
	}
	if err := a.gateway.DeleteChatSession(ctx, int64(id)); err != nil {
		return err
	}
	fmt.Println("Deleted")
	return nil
}

// Suggest prints recipe title prompts for starting a conversation.
func (a *App) Suggest(ctx context.Context) error {
	titles, err := a.gateway.TitleSuggestions(ctx)
	if err != nil {
		return err
	}
	for _, title := range titles {
		fmt.Println("-", title)
	}
	return nil
}
