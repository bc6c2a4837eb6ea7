// Seeds the database with sample event data. The seeder clears
// existing events and orders, then inserts ten events with randomized
// names, future dates and ticket counts between 50 and 200, with all
// tickets initially available.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/joho/godotenv"

	"github.com/evenio/ticketing/internal/config"
	"github.com/evenio/ticketing/internal/database"
	"github.com/evenio/ticketing/internal/model"
	"github.com/evenio/ticketing/internal/repository"
)

const seedEventCount = 10

var seedNames = []string{
	"Synergy Summit",
	"Open Air Sessions",
	"Riverside Jazz Night",
	"Indie Showcase",
	"Symphony Under the Stars",
	"Comedy Marathon",
	"Electronic Horizons",
	"Acoustic Evenings",
	"Festival of Lights",
	"New Year Gala",
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database open: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("database migrate: %v", err)
	}

	// Orders reference events, so clear them first.
	if _, err := db.ExecContext(ctx, `DELETE FROM orders`); err != nil {
		log.Fatalf("clear orders: %v", err)
	}
	if _, err := db.ExecContext(ctx, `DELETE FROM events`); err != nil {
		log.Fatalf("clear events: %v", err)
	}

	events := repository.NewEventRepo(db)
	for i := 0; i < seedEventCount; i++ {
		total := uint32(50 + rand.Intn(151)) // 50..200
		e := model.Event{
			Name:             fmt.Sprintf("%s %d", seedNames[i%len(seedNames)], time.Now().Year()),
			Date:             time.Now().UTC().AddDate(0, 0, 7+rand.Intn(180)),
			TotalTickets:     total,
			AvailableTickets: total,
		}
		if err := events.Create(ctx, &e); err != nil {
			log.Fatalf("seed event %q: %v", e.Name, err)
		}
	}

	log.Printf("seeded %d events", seedEventCount)
}
