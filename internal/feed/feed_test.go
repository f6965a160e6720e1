package feed_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/mesa-pos/terminal/internal/enum"
	"github.com/mesa-pos/terminal/internal/feed"
	"github.com/mesa-pos/terminal/internal/localstore"
	"github.com/mesa-pos/terminal/internal/notify"
	"github.com/stretchr/testify/assert"
)

var upgrader = websocket.Upgrader{}

type rawEvent struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// eventServer serves /ws/events once and pushes the given events.
func eventServer(t *testing.T, gotToken *string, events []rawEvent) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Get("/ws/events", func(w http.ResponseWriter, req *http.Request) {
		*gotToken = req.URL.Query().Get("token")
		conn, err := upgrader.Upgrade(w, req, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for _, ev := range events {
			b, _ := json.Marshal(ev)
			if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
				return
			}
		}
		// Hold the connection open so the consumer doesn't reconnect and
		// replay during the test window.
		time.Sleep(2 * time.Second)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestConsumer_TurnsEventsIntoNotifications(t *testing.T) {
	var gotToken string
	srv := eventServer(t, &gotToken, []rawEvent{
		{Type: "low_stock", Payload: map[string]any{"ingredientId": 7, "name": "Rice", "currentStock": 2.0, "unit": "kg"}},
		{Type: "out_of_stock", Payload: map[string]any{"ingredientId": 8, "name": "Eggs"}},
		{Type: "order_created", Payload: map[string]any{"orderNumber": "ORD-010", "tableNumber": "Table 04"}},
	})

	inbox := notify.NewInbox(localstore.NewMemory())
	consumer := feed.NewConsumer(wsURL(srv), func() string { return "tok-1" }, inbox)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go consumer.Run(ctx)

	waitFor(t, func() bool { return inbox.UnreadCount() == 3 })
	assert.Equal(t, "tok-1", gotToken)

	all := inbox.All()
	// Newest first: the order event arrived last.
	assert.Equal(t, enum.NotificationOrder, all[0].Type)
	assert.Equal(t, "Order ORD-010", all[0].Title)
	assert.Equal(t, enum.NotificationOutOfStock, all[1].Type)
	assert.Equal(t, enum.NotificationLowStock, all[2].Type)
	assert.Equal(t, "7", all[2].Data["ingredientId"])
}

func TestConsumer_DeduplicatesStockAlertsInSession(t *testing.T) {
	var gotToken string
	srv := eventServer(t, &gotToken, []rawEvent{
		{Type: "low_stock", Payload: map[string]any{"ingredientId": 7, "name": "Rice", "currentStock": 2.0, "unit": "kg"}},
		{Type: "low_stock", Payload: map[string]any{"ingredientId": 7, "name": "Rice", "currentStock": 1.5, "unit": "kg"}},
		{Type: "order_created", Payload: map[string]any{"orderNumber": "ORD-011", "tableNumber": "Table 01"}},
	})

	inbox := notify.NewInbox(localstore.NewMemory())
	consumer := feed.NewConsumer(wsURL(srv), func() string { return "tok" }, inbox)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go consumer.Run(ctx)

	// The order event is the fence: once it arrives, both low_stock events
	// were already handled.
	waitFor(t, func() bool {
		for _, n := range inbox.All() {
			if n.Type == enum.NotificationOrder {
				return true
			}
		}
		return false
	})

	lowCount := 0
	for _, n := range inbox.All() {
		if n.Type == enum.NotificationLowStock {
			lowCount++
		}
	}
	assert.Equal(t, 1, lowCount, "repeat low-stock for one ingredient must not re-notify")
}

func TestConsumer_ReplenishmentResetsDedup(t *testing.T) {
	var gotToken string
	srv := eventServer(t, &gotToken, []rawEvent{
		{Type: "low_stock", Payload: map[string]any{"ingredientId": 7, "name": "Rice", "currentStock": 2.0, "unit": "kg"}},
		{Type: "stock_replenished", Payload: map[string]any{"ingredientId": 7}},
		{Type: "low_stock", Payload: map[string]any{"ingredientId": 7, "name": "Rice", "currentStock": 2.0, "unit": "kg"}},
	})

	inbox := notify.NewInbox(localstore.NewMemory())
	consumer := feed.NewConsumer(wsURL(srv), func() string { return "tok" }, inbox)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go consumer.Run(ctx)

	waitFor(t, func() bool { return inbox.UnreadCount() == 2 })
}

func TestConsumer_DisabledInboxSuppressesStockAlerts(t *testing.T) {
	var gotToken string
	srv := eventServer(t, &gotToken, []rawEvent{
		{Type: "low_stock", Payload: map[string]any{"ingredientId": 7, "name": "Rice", "currentStock": 2.0, "unit": "kg"}},
		{Type: "order_created", Payload: map[string]any{"orderNumber": "ORD-012", "tableNumber": "Table 02"}},
	})

	inbox := notify.NewInbox(localstore.NewMemory())
	inbox.SetEnabled(false)
	consumer := feed.NewConsumer(wsURL(srv), func() string { return "tok" }, inbox)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go consumer.Run(ctx)

	// Order notifications bypass the stock helpers and still land.
	waitFor(t, func() bool { return len(inbox.All()) == 1 })
	assert.Equal(t, enum.NotificationOrder, inbox.All()[0].Type)
}
