package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mesa-pos/terminal/internal/api"
	"github.com/mesa-pos/terminal/internal/cache"
	"github.com/mesa-pos/terminal/internal/cart"
	"github.com/mesa-pos/terminal/internal/catalog"
	"github.com/mesa-pos/terminal/internal/config"
	"github.com/mesa-pos/terminal/internal/feed"
	"github.com/mesa-pos/terminal/internal/localstore"
	"github.com/mesa-pos/terminal/internal/notify"
	"github.com/mesa-pos/terminal/internal/session"
	"github.com/shopspring/decimal"
)

func main() {
	cfg := config.Load()

	taxRate, err := decimal.NewFromString(cfg.TaxRate)
	if err != nil {
		log.Fatalf("invalid MESA_TAX_RATE %q: %v", cfg.TaxRate, err)
	}

	storage, err := localstore.Open(cfg.StateDir)
	if err != nil {
		log.Fatalf("open state dir: %v", err)
	}

	// All state containers are owned here and passed down explicitly.
	client := api.New(cfg.APIBaseURL)
	sessions := session.NewStore(client, storage)
	posCart := cart.New(storage)
	inbox := notify.NewInbox(storage)
	menu := catalog.NewService(cache.New(), client.Orders(), client.Ingredients())

	sessions.OnExpired(func() {
		log.Println("session expired, sign in again")
	})

	// Restore must finish before anything protected runs.
	sess, err := sessions.Restore()
	if err != nil {
		log.Printf("session restore: %v", err)
	}
	if sess != nil {
		log.Printf("restored session for %s (%s)", sess.Username, sess.Role)
	} else {
		log.Println("no session, sign in required")
	}

	if sess != nil {
		warmCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if products, err := menu.Products(warmCtx); err != nil {
			log.Printf("catalog warm-up: %v", err)
		} else {
			log.Printf("catalog loaded: %d product(s)", len(products))
		}
		cancel()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := feed.NewConsumer(cfg.WSBaseURL, client.Token, inbox)
	go consumer.Run(ctx)

	log.Printf("terminal ready: %d item(s) in cart, total %s, %d unread notification(s)",
		posCart.ItemCount(),
		posCart.Total(taxRate).StringFixed(2),
		inbox.UnreadCount(),
	)

	<-ctx.Done()
	log.Println("shutting down")
}
