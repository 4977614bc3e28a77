package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pantrypal/pantrypal/internal/client/api"
	"github.com/pantrypal/pantrypal/internal/client/deals"
	"github.com/pantrypal/pantrypal/internal/client/models"
	"github.com/pantrypal/pantrypal/internal/client/storage"
	"github.com/pantrypal/pantrypal/internal/client/stores"
	"github.com/pantrypal/pantrypal/internal/common"
	"github.com/pantrypal/pantrypal/internal/logging"
)

type fakeAccount struct{}

func (f *fakeAccount) Login(ctx context.Context, email, password string) (api.LoginResult, error) {
	id := int64(7)
	return api.LoginResult{Token: "opaque-token", UserID: &id}, nil
}
func (f *fakeAccount) Register(ctx context.Context, email, password, username string) error {
	return nil
}
func (f *fakeAccount) UpdateProfile(ctx context.Context, userID int64, update api.ProfileUpdate) error {
	return nil
}

// fakeGateway satisfies gatewayAPI; fields configure returns and record calls.
type fakeGateway struct {
	pantryItems   []models.PantryItem
	expiringItems []models.PantryItem
	stats         models.PantryStats
	addedPayloads []api.AddPantryItemPayload

	presignedURL string
	putURL       string
	putData      []byte
	uploadID     string
	uploadBase64 string
	result       *api.ReceiptResult
	polls        int

	lastChatMsg models.ChatMessage
	reply       models.ChatReply
	sessions    []models.ChatSession
	history     []models.ChatMessage
	deletedID   int64
	titles      []string
}

func (f *fakeGateway) ListPantryItems(ctx context.Context, userID int64) ([]models.PantryItem, error) {
	return f.pantryItems, nil
}
func (f *fakeGateway) AddPantryItems(ctx context.Context, userID int64, items []api.AddPantryItemPayload) ([]models.PantryItem, error) {
	f.addedPayloads = append(f.addedPayloads, items...)
	return nil, nil
}
func (f *fakeGateway) UpdatePantryItem(ctx context.Context, userID int64, item api.UpdatePantryItemPayload) (models.PantryItem, error) {
	return models.PantryItem{}, nil
}
func (f *fakeGateway) DeletePantryItems(ctx context.Context, userID int64, itemIDs []int64) error {
	return nil
}
func (f *fakeGateway) PantryStats(ctx context.Context, userID int64) (models.PantryStats, error) {
	return f.stats, nil
}
func (f *fakeGateway) ExpiringPantryItems(ctx context.Context, userID int64) ([]models.PantryItem, error) {
	return f.expiringItems, nil
}

func (f *fakeGateway) ReceiptPresignedURL(ctx context.Context, userID int64) (string, error) {
	return f.presignedURL, nil
}
func (f *fakeGateway) PutPresigned(ctx context.Context, presignedURL string, data []byte, contentType string) error {
	f.putURL = presignedURL
	f.putData = data
	return nil
}
func (f *fakeGateway) UploadReceipt(ctx context.Context, userID int64, imageBase64 string) (string, error) {
	f.uploadBase64 = imageBase64
	return f.uploadID, nil
}
func (f *fakeGateway) ReceiptResult(ctx context.Context, receiptID string) (*api.ReceiptResult, error) {
	f.polls++
	return f.result, nil
}

func (f *fakeGateway) RecommendRecipe(ctx context.Context, msg models.ChatMessage) (models.ChatReply, error) {
	f.lastChatMsg = msg
	return f.reply, nil
}
func (f *fakeGateway) Chat(ctx context.Context, msg models.ChatMessage) (models.ChatReply, error) {
	f.lastChatMsg = msg
	return f.reply, nil
}
func (f *fakeGateway) ChatSessions(ctx context.Context, userID int64) ([]models.ChatSession, error) {
	return f.sessions, nil
}
func (f *fakeGateway) ChatSessionHistory(ctx context.Context, sessionID int64) ([]models.ChatMessage, error) {
	return f.history, nil
}
func (f *fakeGateway) DeleteChatSession(ctx context.Context, sessionID int64) error {
	f.deletedID = sessionID
	return nil
}
func (f *fakeGateway) TitleSuggestions(ctx context.Context) ([]string, error) {
	return f.titles, nil
}

func newTestApp(t *testing.T, gw gatewayAPI) *App {
	t.Helper()

	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	session := stores.NewSessionStore(&fakeAccount{}, db, nil)
	t.Cleanup(session.Close)

	return &App{
		gateway: gw,
		db:      db,
		session: session,
		cart:    stores.NewCartStore(db),
		catalog: deals.Catalog(time.Now()),
		reader:  bufio.NewReader(strings.NewReader("")),
		log:     logging.Discard(),
	}
}

// queueInput replaces the interactive text prompt with canned answers.
func queueInput(t *testing.T, answers ...string) {
	t.Helper()
	orig := getSimpleText
	i := 0
	getSimpleText = func(r *bufio.Reader, prompt string, w io.Writer) (string, error) {
		if i >= len(answers) {
			return "", io.EOF
		}
		a := answers[i]
		i++
		return a, nil
	}
	t.Cleanup(func() { getSimpleText = orig })
}

func login(t *testing.T, a *App) {
	t.Helper()
	require.NoError(t, a.session.Login(context.Background(), "u@example.com", "pw"))
}

func TestApp_ListPantryRequiresLogin(t *testing.T) {
	a := newTestApp(t, &fakeGateway{})
	err := a.ListPantry(context.Background())
	require.ErrorIs(t, err, common.ErrNotAuthenticated)
}

func TestApp_CartAddClampsToStock(t *testing.T) {
	a := newTestApp(t, &fakeGateway{})
	login(t, a)

	queueInput(t, "1") // deal id
	a.reader = bufio.NewReader(strings.NewReader("99\n"))

	require.NoError(t, a.CartAdd(context.Background()))

	items := a.cart.Items()
	require.Len(t, items, 1)
	require.Equal(t, 7, items[0].Quantity, "milk deal has 7 left")
}

func TestApp_CartAddRejectsSoldOut(t *testing.T) {
	a := newTestApp(t, &fakeGateway{})
	login(t, a)

	queueInput(t, "4") // yogurt, zero stock
	err := a.CartAdd(context.Background())
	require.ErrorContains(t, err, "sold out")
	require.Empty(t, a.cart.Items())
}

func TestApp_CheckoutOnEmptyCartIsNoop(t *testing.T) {
	a := newTestApp(t, &fakeGateway{})
	require.NoError(t, a.Checkout(context.Background()))
}

func TestApp_ScanReceiptPresignedFlow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "receipt.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg-bytes"), 0o600))

	gw := &fakeGateway{
		presignedURL: "https://uploads.example/receipts/abc",
		uploadID:     "r-1",
		result: &api.ReceiptResult{
			ReceiptID: "r-1",
			Store:     "FreshMart",
			Items: []api.ReceiptItem{
				{ItemName: "Milk", Quantity: 1, Unit: models.UnitLiters},
				{ItemName: "Bread", Quantity: 2, Unit: models.UnitLoaf},
			},
		},
	}
	a := newTestApp(t, gw)
	login(t, a)

	queueInput(t, path, "y")
	require.NoError(t, a.ScanReceipt(context.Background()))

	require.Equal(t, "https://uploads.example/receipts/abc", gw.putURL)
	require.Equal(t, []byte("jpeg-bytes"), gw.putData)
	require.Empty(t, gw.uploadBase64, "bytes went through the presigned URL")
	require.Equal(t, 1, gw.polls)
	require.Len(t, gw.addedPayloads, 2)
	require.Equal(t, "Milk", gw.addedPayloads[0].ItemName)
}

func TestApp_ScanReceiptBase64Fallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "receipt.png")
	require.NoError(t, os.WriteFile(path, []byte("png"), 0o600))

	gw := &fakeGateway{
		uploadID: "r-2",
		result:   &api.ReceiptResult{ReceiptID: "r-2"},
	}
	a := newTestApp(t, gw)
	login(t, a)

	queueInput(t, path)
	require.NoError(t, a.ScanReceipt(context.Background()))

	require.Empty(t, gw.putURL)
	require.NotEmpty(t, gw.uploadBase64, "no presigned URL, image travels base64-encoded")
}

func TestApp_RecommendMentionsExpiringItems(t *testing.T) {
	gw := &fakeGateway{
		expiringItems: []models.PantryItem{
			{Name: "Spinach"}, {Name: "Eggs"},
		},
		reply: models.ChatReply{Reply: "Make a frittata", SessionID: 1},
	}
	a := newTestApp(t, gw)
	login(t, a)

	require.NoError(t, a.Recommend(context.Background()))
	require.Contains(t, gw.lastChatMsg.Content, "Spinach")
	require.Contains(t, gw.lastChatMsg.Content, "Eggs")
	require.Equal(t, int64(7), gw.lastChatMsg.UserID)
}

func TestApp_ChatKeepsSessionAcrossTurns(t *testing.T) {
	gw := &fakeGateway{reply: models.ChatReply{Reply: "ok", SessionID: 42}}
	a := newTestApp(t, gw)
	login(t, a)

	queueInput(t, "first message", "second message", "")
	require.NoError(t, a.Chat(context.Background()))

	require.NotNil(t, gw.lastChatMsg.SessionID)
	require.Equal(t, int64(42), *gw.lastChatMsg.SessionID)
}

func TestApp_StatusShowsUser(t *testing.T) {
	a := newTestApp(t, &fakeGateway{})
	require.Equal(t, "", a.status())

	login(t, a)
	require.Equal(t, "(user 7)", a.status())
}
