// Package feed consumes the backend's websocket event stream and turns
// stock and order events into inbox notifications.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mesa-pos/terminal/internal/enum"
	"github.com/mesa-pos/terminal/internal/notify"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next message before the connection is
	// considered dead (the server pings inside this window)
	pongWait = 60 * time.Second

	// Maximum delay between reconnect attempts
	maxBackoff = 30 * time.Second
)

// Event is a message from the backend event stream.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type stockPayload struct {
	IngredientID int64   `json:"ingredientId"`
	Name         string  `json:"name"`
	CurrentStock float64 `json:"currentStock"`
	Unit         string  `json:"unit"`
}

type orderPayload struct {
	OrderNumber string `json:"orderNumber"`
	TableNumber string `json:"tableNumber"`
}

// Consumer maintains the websocket connection and feeds the inbox.
type Consumer struct {
	url   string
	token func() string
	inbox *notify.Inbox

	// seen tracks which ingredients were already announced this session,
	// per alert type, so a refetched low-stock list does not re-notify.
	seen map[string]bool
}

// NewConsumer creates a Consumer. token is called before each dial so a
// refreshed credential is picked up on reconnect.
func NewConsumer(wsBaseURL string, token func() string, inbox *notify.Inbox) *Consumer {
	return &Consumer{
		url:   wsBaseURL + "/ws/events",
		token: token,
		inbox: inbox,
		seen:  make(map[string]bool),
	}
}

// Run connects and consumes events until the context ends, reconnecting
// with a capped backoff on failure.
func (c *Consumer) Run(ctx context.Context) {
	backoff := time.Second
	for {
		if err := c.consume(ctx); err != nil {
			log.Printf("event feed: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		if backoff < maxBackoff {
			backoff *= 2
		}
	}
}

func (c *Consumer) consume(ctx context.Context) error {
	token := c.token()
	if token == "" {
		return fmt.Errorf("no credential, waiting")
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url+"?token="+token, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.url, err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPingHandler(func(appData string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteMessage(websocket.PongMessage, []byte(appData))
	})

	// Close the connection when the context ends so ReadMessage unblocks.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}
		conn.SetReadDeadline(time.Now().Add(pongWait))

		var ev Event
		if err := json.Unmarshal(message, &ev); err != nil {
			log.Printf("event feed: skipping malformed event: %v", err)
			continue
		}
		c.handle(ev)
	}
}

func (c *Consumer) handle(ev Event) {
	switch ev.Type {
	case "low_stock":
		var p stockPayload
		if err := json.Unmarshal(ev.Payload, &p); err != nil {
			return
		}
		key := fmt.Sprintf("low:%d", p.IngredientID)
		if c.seen[key] {
			return
		}
		c.seen[key] = true
		c.inbox.NotifyLowStock(p.Name, p.CurrentStock, p.Unit, p.IngredientID)

	case "out_of_stock":
		var p stockPayload
		if err := json.Unmarshal(ev.Payload, &p); err != nil {
			return
		}
		key := fmt.Sprintf("out:%d", p.IngredientID)
		if c.seen[key] {
			return
		}
		c.seen[key] = true
		c.inbox.NotifyOutOfStock(p.Name, p.IngredientID)

	case "stock_replenished":
		// An ingredient coming back clears its dedup marks so the next
		// shortage notifies again.
		var p stockPayload
		if err := json.Unmarshal(ev.Payload, &p); err != nil {
			return
		}
		delete(c.seen, fmt.Sprintf("low:%d", p.IngredientID))
		delete(c.seen, fmt.Sprintf("out:%d", p.IngredientID))

	case "order_created":
		var p orderPayload
		if err := json.Unmarshal(ev.Payload, &p); err != nil {
			return
		}
		c.inbox.Add(
			enum.NotificationOrder,
			"Order "+p.OrderNumber,
			"New order for table "+p.TableNumber,
			map[string]string{"orderNumber": p.OrderNumber},
		)
	}
}
