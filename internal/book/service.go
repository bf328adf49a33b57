package book

import (
	"context"
)

// Service provides book-related business logic.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every book.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

// GetByISBN returns a book by its ISBN.
func (s *Service) GetByISBN(ctx context.Context, isbn string) (Book, error) {
	return s.repo.GetByISBN(ctx, isbn)
}

// Create validates payload as a complete book and stores it.
func (s *Service) Create(ctx context.Context, payload map[string]any) (Book, error) {
	b, _, err := Validate(payload, ModeCreate)
	if err != nil {
		return Book{}, err
	}
	return s.repo.Create(ctx, b)
}

// Update validates payload as a partial book and applies it to the book
// identified by isbn.
func (s *Service) Update(ctx context.Context, isbn string, payload map[string]any) (Book, error) {
	_, p, err := Validate(payload, ModeUpdate)
	if err != nil {
		return Book{}, err
	}
	return s.repo.Update(ctx, isbn, p)
}

// Delete removes the book identified by isbn.
func (s *Service) Delete(ctx context.Context, isbn string) error {
	return s.repo.Delete(ctx, isbn)
}
