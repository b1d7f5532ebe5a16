// Command kitchenboard draws the live kitchen feed in the terminal. It reads
// the same config and session storage as the server, so sign in there first.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"

	"petiscaria/internal/apiclient"
	"petiscaria/internal/config"
	"petiscaria/internal/domain"
	"petiscaria/internal/feed"
	"petiscaria/internal/infrastructure/logger"
	"petiscaria/internal/push"
	"petiscaria/internal/session"
	"petiscaria/internal/storage"
)

const clearScreen = "\033[H\033[2J"

func main() {
	configPath := flag.String("config", "internal/config/config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	// the board owns the terminal, so only warnings reach stderr
	zapLogger, err := logger.New("warn", "console")
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// same driver as the server, so the board reads the server's session
	store, closeStore, err := storage.Open(ctx, cfg.Storage, cfg.Database, true)
	if err != nil {
		zapLogger.Fatal("opening session storage", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer closeStore()

	decision, err := session.NewGuard(store, zapLogger).Check(ctx)
	if err != nil {
		zapLogger.Fatal("checking session", zap.Error(err))
	}
	if !decision.Allowed {
		fmt.Fprintf(os.Stderr, "no valid session (%s); sign in through the server first\n", decision.Reason)
		os.Exit(1)
	}

	tokens := session.NewTokens(store)
	api, err := apiclient.New(cfg.API, tokens, zapLogger)
	if err != nil {
		zapLogger.Fatal("creating api client", zap.Error(err))
	}

	var source push.Source
	switch cfg.Push.Transport {
	case "websocket":
		source = push.NewWebSocketSource(cfg.Push.URL, tokens, zapLogger)
	case "amqp":
		source = push.NewAMQPSource(cfg.Push.AMQP.URL, cfg.Push.AMQP.Exchange, zapLogger)
	}

	kitchen := feed.NewKitchen(api, api, source, feed.Options{
		Strategy:       feed.Strategy(cfg.Feed.Strategy),
		PollInterval:   cfg.Feed.PollInterval,
		ClearOnError:   cfg.Feed.ClearOnError,
		ReconnectDelay: cfg.Feed.ReconnectDelay,
	}, zapLogger)

	updates, unsubscribe := kitchen.Subscribe()
	defer unsubscribe()

	if err := kitchen.Start(ctx); err != nil {
		zapLogger.Fatal("starting kitchen feed", zap.Error(err))
	}
	defer kitchen.Stop()

	// the recent-item highlight fades without any feed change
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	orders := kitchen.Orders()
	for {
		if err := draw(os.Stdout, orders, time.Now()); err != nil {
			zapLogger.Warn("drawing board", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case orders = <-updates:
		case <-ticker.C:
		}
	}
}

func draw(out io.Writer, orders []domain.Order, now time.Time) error {
	var buf bytes.Buffer
	buf.WriteString(clearScreen)
	fmt.Fprintf(&buf, "Kitchen  %s  %d order(s)\n", now.Format("15:04:05"), len(orders))
	if err := render(&buf, orders, now); err != nil {
		return err
	}
	_, err := out.Write(buf.Bytes())
	return err
}

func render(out io.Writer, orders []domain.Order, now time.Time) error {
	table := tablewriter.NewWriter(out)
	table.Header("Order", "Table", "Customer", "Status", "Items", "Waiting")

	for _, o := range orders {
		row := []string{
			fmt.Sprintf("#%d", o.ID),
			tableLabel(o.Table),
			o.CustomerName,
			string(o.Status),
			itemsLabel(o.LineItems, now),
			waitingLabel(o.CreatedAt, now),
		}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("adding order %d: %w", o.ID, err)
		}
	}
	return table.Render()
}

func tableLabel(t domain.TableRef) string {
	if t == "" {
		return "takeout"
	}
	return string(t)
}

// itemsLabel lists each line as "2x Pastel (sem cebola)", starring the ones
// added within the recent window.
func itemsLabel(items []domain.LineItem, now time.Time) string {
	parts := make([]string, 0, len(items))
	for _, li := range items {
		s := fmt.Sprintf("%dx %s", li.Quantity, li.Product.Name)
		if li.Notes != "" {
			s += " (" + li.Notes + ")"
		}
		if li.IsRecent(now) {
			s = "* " + s
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "\n")
}

func waitingLabel(created, now time.Time) string {
	if created.IsZero() {
		return "-"
	}
	return now.Sub(created).Truncate(time.Minute).String()
}
