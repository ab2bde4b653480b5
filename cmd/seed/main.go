// Command seed resets the schema and loads a small fixture catalog with a
// few cards, for local development and demos.
package main

import (
	"flag"
	"log"

	"github.com/ycyaw66/library-backoffice/internal/config"
	"github.com/ycyaw66/library-backoffice/internal/database"
	"github.com/ycyaw66/library-backoffice/internal/database/books"
	"github.com/ycyaw66/library-backoffice/internal/database/cards"
	"github.com/ycyaw66/library-backoffice/internal/entities"
)

var fixtureBooks = []*entities.Book{
	{Category: "Fiction", Title: "The Dispossessed", Press: "Harper & Row", PublishYear: 1974, Author: "Ursula K. Le Guin", Price: 12.50, Stock: 3},
	{Category: "Fiction", Title: "Snow Country", Press: "Knopf", PublishYear: 1956, Author: "Yasunari Kawabata", Price: 10.00, Stock: 2},
	{Category: "CS", Title: "The Go Programming Language", Press: "Addison-Wesley", PublishYear: 2015, Author: "Alan A. A. Donovan", Price: 39.99, Stock: 5},
	{Category: "CS", Title: "Database System Concepts", Press: "McGraw-Hill", PublishYear: 2019, Author: "Abraham Silberschatz", Price: 89.00, Stock: 4},
	{Category: "History", Title: "SPQR", Press: "Profile Books", PublishYear: 2015, Author: "Mary Beard", Price: 16.25, Stock: 2},
}

var fixtureCards = []*entities.Card{
	{Name: "Alice Zhang", Department: "Computer Science", Type: entities.CardTypeStudent},
	{Name: "Bob Ota", Department: "History", Type: entities.CardTypeStudent},
	{Name: "Carol Wei", Department: "Computer Science", Type: entities.CardTypeTeacher},
}

func main() {
	dbPath := flag.String("db", "", "database path (defaults to DATABASE_PATH)")
	flag.Parse()

	cfg := config.NewConfig()
	path := *dbPath
	if path == "" {
		path = cfg.Database.Path
	}

	db, err := database.NewDatabase(path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Reset(); err != nil {
		log.Fatalf("Failed to reset schema: %v", err)
	}

	bookRepo := books.NewRepository(db.DB)
	if err := bookRepo.StoreBatch(fixtureBooks); err != nil {
		log.Fatalf("Failed to seed books: %v", err)
	}

	cardRepo := cards.NewRepository(db.DB)
	for _, card := range fixtureCards {
		if err := cardRepo.Register(card); err != nil {
			log.Fatalf("Failed to seed card %s: %v", card.Name, err)
		}
	}

	log.Printf("Seeded %d books and %d cards into %s", len(fixtureBooks), len(fixtureCards), path)
}
