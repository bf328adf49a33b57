package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"

	"booksapi/internal/book"
	"booksapi/internal/config"
	"booksapi/internal/platform/logging"
	"booksapi/internal/server"

	"go.uber.org/zap"
)

var (
	authors    = []string{"Ada Byron", "Chris Test", "Grace Hopper", "Ken Thompson", "Rob Pike", "Barbara Liskov"}
	languages  = []string{"english", "spanish", "french", "german", "italian", "portuguese"}
	publishers = []string{"Penguin", "HarperCollins", "Oxford", "Cambridge", "MIT Press", "Reading Rainbow"}
	words      = []string{"Systems", "Patterns", "Journey", "Secrets", "Practice", "Craft", "Origins", "Notes"}
)

func main() {
	count := flag.Int("count", 100, "Number of books to insert")
	flag.Parse()
	if err := checkCount(*count); err != nil {
		log.Fatal(err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger, err := logging.New(cfg.IsDevelopment(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	st, err := server.OpenStore(ctx, cfg.DB, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer st.Close()

	inserted, skipped, err := seed(ctx, st.Repo, sampleBooks(*count))
	if err != nil {
		logger.Fatal("seeding failed", zap.Error(err))
	}
	logger.Info("seeding done", zap.Int("inserted", inserted), zap.Int("skipped", skipped))
}

func checkCount(n int) error {
	if n < 0 {
		return fmt.Errorf("-count must not be negative, got %d", n)
	}
	return nil
}

// sampleBooks is deterministic so repeated runs hit the same ISBNs.
func sampleBooks(n int) []book.Book {
	rng := rand.New(rand.NewPCG(1985, 2023))
	books := make([]book.Book, 0, n)
	for i := range n {
		books = append(books, book.Book{
			ISBN:      fmt.Sprintf("978%010d", i+1),
			AmazonURL: fmt.Sprintf("http://a.co/seed%d", i+1),
			Author:    authors[rng.IntN(len(authors))],
			Language:  languages[rng.IntN(len(languages))],
			Pages:     100 + rng.IntN(800),
			Publisher: publishers[rng.IntN(len(publishers))],
			Title:     fmt.Sprintf("%s %s %d", words[rng.IntN(len(words))], words[rng.IntN(len(words))], i+1),
			Year:      1950 + rng.IntN(75),
		})
	}
	return books
}

// seed inserts books, counting the ones that already exist as skipped.
func seed(ctx context.Context, repo book.Repository, books []book.Book) (inserted, skipped int, err error) {
	for _, b := range books {
		if _, err := repo.Create(ctx, b); err != nil {
			if errors.Is(err, book.ErrConflict) {
				skipped++
				continue
			}
			return inserted, skipped, fmt.Errorf("insert %s: %w", b.ISBN, err)
		}
		inserted++
	}
	return inserted, skipped, nil
}
