package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/sherpa-concierge-poc/server/internal/booking"
	"github.com/sherpa-concierge-poc/server/internal/core"
	"github.com/sherpa-concierge-poc/server/internal/dialog"
	"github.com/sherpa-concierge-poc/server/internal/dialog/model"
	"github.com/sherpa-concierge-poc/server/internal/dialog/presenter"
	"github.com/sherpa-concierge-poc/server/internal/dialog/repo"
	"github.com/sherpa-concierge-poc/server/internal/inventory"
	"github.com/sherpa-concierge-poc/server/pkg/assets"
	logx "github.com/sherpa-concierge-poc/server/pkg/logger"
	pkgmysql "github.com/sherpa-concierge-poc/server/pkg/mysql"
	pkgredis "github.com/sherpa-concierge-poc/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the conversation core,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	// Infrastructure
	Redis pkgredis.Config
	DB    pkgmysql.Config

	// Static car images
	Assets assets.Config

	// Session store
	Session model.SessionConfig
}

func main() {
	fmt.Println("Sherpa concierge conversation core...")
	ctx := context.Background()

	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load structured config from env
	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(envCfg.Environment)})

	rdb, err := envCfg.Redis.New()
	if err != nil {
		log.Fatalf("Failed to initialise Redis client: %v", err)
	}
	defer rdb.Close()

	db := envCfg.DB.MustNew()

	fmt.Println("Connected to Redis and MySQL successfully")

	ttl, err := time.ParseDuration(envCfg.Session.TTL)
	if err != nil {
		log.Fatalf("Invalid SESSION_TTL '%s': %v", envCfg.Session.TTL, err)
	}

	sessions := repo.NewRedisSessionRepository(rdb, ttl)
	engine := dialog.NewEngine(
		inventory.NewService(db),
		booking.NewGormRepository(db),
		presenter.New(assets.New(envCfg.Assets)),
	)

	// Scripted end-to-end conversation: browse by budget/type/brand, page
	// through results, select a car and book a test drive.
	script := []struct {
		description string
		message     string
	}{
		{"Opening message", "Hi"},
		{"Budget selection", "₹5-10 Lakhs"},
		{"Type selection", "SUV"},
		{"Brand selection", "all Brand"},
		{"Next page of results", "Browse More Cars"},
		{"Select the visible car", "SELECT"},
		{"Start the booking", "Book Test Drive"},
		{"Date preference", "Tomorrow"},
		{"Time slot", "11:30 AM"},
		{"Name", "Asha Rao"},
		{"Phone", "+91-9812345678"},
		{"Driving license", "Yes"},
		{"Pickup location", "Showroom pickup"},
		{"Confirm the booking", "Confirm"},
		{"Wrap up", "End Conversation"},
	}

	userID := "demo-user-1"

	for i, turn := range script {
		fmt.Printf("\n🚗 Turn %d: %s\n", i+1, turn.description)
		fmt.Printf("User: %q\n", turn.message)

		session, err := sessions.Get(ctx, userID)
		if err != nil {
			log.Fatalf("Failed to load session for turn %d: %v", i+1, err)
		}

		session, resp := engine.Handle(ctx, session, turn.message)

		if err := sessions.Put(ctx, userID, session); err != nil {
			log.Fatalf("Failed to store session for turn %d: %v", i+1, err)
		}

		if resp == nil {
			fmt.Println("Bot: (conversation ended, nothing to deliver)")
			continue
		}
		fmt.Printf("Bot: %s\n", resp.Message)
		if len(resp.Options) > 0 {
			fmt.Printf("Options: %v\n", resp.Options)
		}
		for _, m := range resp.Messages {
			switch m.Type {
			case model.MessageTypeImage:
				fmt.Printf("  [image] %s\n", m.Image.Link)
			case model.MessageTypeText:
				fmt.Printf("  [card] %s\n", m.Text.Body)
			case model.MessageTypeInteractive:
				fmt.Printf("  [button] %s (%s)\n", m.Interactive.ButtonTitle, m.Interactive.ButtonID)
			}
		}
		fmt.Println("─────────────────────────────────────────────")

		// slight delay between turns for readability
		time.Sleep(200 * time.Millisecond)
	}

	fmt.Println("🎉 Conversation script completed")
}
