// Package cli is the interactive PantryPal terminal client: a REPL over the
// session and cart stores and the REST gateway.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pantrypal/pantrypal/internal/client/api"
	"github.com/pantrypal/pantrypal/internal/client/config"
	"github.com/pantrypal/pantrypal/internal/client/deals"
	"github.com/pantrypal/pantrypal/internal/client/models"
	"github.com/pantrypal/pantrypal/internal/client/storage"
	"github.com/pantrypal/pantrypal/internal/client/stores"
	"github.com/pantrypal/pantrypal/internal/common"
	"github.com/pantrypal/pantrypal/internal/logging"
)

// gatewayAPI is the slice of the REST gateway the CLI commands use.
// *api.Client satisfies it; tests substitute a fake.
type gatewayAPI interface {
	ListPantryItems(ctx context.Context, userID int64) ([]models.PantryItem, error)
	AddPantryItems(ctx context.Context, userID int64, items []api.AddPantryItemPayload) ([]models.PantryItem, error)
	UpdatePantryItem(ctx context.Context, userID int64, item api.UpdatePantryItemPayload) (models.PantryItem, error)
	DeletePantryItems(ctx context.Context, userID int64, itemIDs []int64) error
	PantryStats(ctx context.Context, userID int64) (models.PantryStats, error)
	ExpiringPantryItems(ctx context.Context, userID int64) ([]models.PantryItem, error)

	ReceiptPresignedURL(ctx context.Context, userID int64) (string, error)
	PutPresigned(ctx context.Context, presignedURL string, data []byte, contentType string) error
	UploadReceipt(ctx context.Context, userID int64, imageBase64 string) (string, error)
	ReceiptResult(ctx context.Context, receiptID string) (*api.ReceiptResult, error)

	RecommendRecipe(ctx context.Context, msg models.ChatMessage) (models.ChatReply, error)
	Chat(ctx context.Context, msg models.ChatMessage) (models.ChatReply, error)
	ChatSessions(ctx context.Context, userID int64) ([]models.ChatSession, error)
	ChatSessionHistory(ctx context.Context, sessionID int64) ([]models.ChatMessage, error)
	DeleteChatSession(ctx context.Context, sessionID int64) error
	TitleSuggestions(ctx context.Context) ([]string, error)
}

// App wires the stores and gateway together and carries the REPL state.
type App struct {
	config  *config.Config
	db      *sql.DB
	gateway gatewayAPI
	session *stores.SessionStore
	cart    *stores.CartStore
	catalog []models.ExpiringDeal
	reader  *bufio.Reader
	log     logging.Logger
}

// NewApp opens local storage, restores any persisted session and cart, and
// returns a ready-to-run App.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := storage.Open(ctx, cfg.StoragePath)
	if err != nil {
		return nil, err
	}

	// Warnings and errors go to stderr; everything user-facing is printed by
	// the commands themselves.
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr,
		&slog.HandlerOptions{Level: slog.LevelWarn})))

	tokens := &api.TokenHolder{}
	gateway := api.New(cfg.APIBaseURL,
		api.WithTokenSource(tokens),
		api.WithLogger(logger),
	)

	session := stores.NewSessionStore(gateway, db, tokens, stores.WithSessionLogger(logger))
	cart := stores.NewCartStore(db, stores.WithCartLogger(logger))

	if err := session.Restore(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := cart.Restore(ctx); err != nil {
		session.Close()
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:  cfg,
		db:      db,
		gateway: gateway,
		session: session,
		cart:    cart,
		catalog: deals.Catalog(time.Now()),
		reader:  bufio.NewReader(os.Stdin),
		log:     logger,
	}, nil
}

// Run starts the REPL and blocks until the user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	fmt.Println("PantryPal CLI (type 'help' for commands)")
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

// Close releases the watchdog timer and the database handle.
func (a *App) Close() {
	a.session.Close()
	_ = a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// status renders the prompt suffix: the user id when known, a generic marker
// for authenticated sessions without one.
func (a *App) status() string {
	if id, ok := a.session.UserID(); ok {
		return fmt.Sprintf("(user %d)", id)
	}
	if a.session.IsAuthenticated() {
		return "(signed in)"
	}
	return ""
}

// requireUser returns the id needed to address user-scoped endpoints.
// Sessions authenticated without a user id can browse deals and the cart but
// not the backend pantry.
func (a *App) requireUser() (int64, error) {
	if !a.session.IsAuthenticated() {
		return 0, common.ErrNotAuthenticated
	}
	id, ok := a.session.UserID()
	if !ok {
		return 0, fmt.Errorf("this session has no user id; log in again")
	}
	return id, nil
}
