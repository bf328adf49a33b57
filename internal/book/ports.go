package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository_test.go -package=book

// Repository defines the contract for book data storage.
type Repository interface {
	List(ctx context.Context) ([]Book, error)
	GetByISBN(ctx context.Context, isbn string) (Book, error)
	Create(ctx context.Context, b Book) (Book, error)
	Update(ctx context.Context, isbn string, p Patch) (Book, error)
	Delete(ctx context.Context, isbn string) error
}
