package book

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when no book has the requested ISBN.
	ErrNotFound = errors.New("book not found")
	// ErrConflict is returned when a book with the same ISBN already exists.
	ErrConflict = errors.New("book already exists")
)

// Book represents a book record.
type Book struct {
	ISBN      string `json:"isbn"`
	AmazonURL string `json:"amazon_url"`
	Author    string `json:"author"`
	Language  string `json:"language"`
	Pages     int    `json:"pages"`
	Publisher string `json:"publisher"`
	Title     string `json:"title"`
	Year      int    `json:"year"`
}

// Patch holds the fields of an update. Nil fields are left untouched.
type Patch struct {
	AmazonURL *string
	Author    *string
	Language  *string
	Pages     *int
	Publisher *string
	Title     *string
	Year      *int
}

// Apply returns b with every non-nil field of p written over it.
func (p Patch) Apply(b Book) Book {
	if p.AmazonURL != nil {
		b.AmazonURL = *p.AmazonURL
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.Language != nil {
		b.Language = *p.Language
	}
	if p.Pages != nil {
		b.Pages = *p.Pages
	}
	if p.Publisher != nil {
		b.Publisher = *p.Publisher
	}
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Year != nil {
		b.Year = *p.Year
	}
	return b
}

// assignments lists the columns set by p, in table order, with their values.
func (p Patch) assignments() ([]string, []any) {
	var cols []string
	var args []any
	add := func(col string, set bool, v any) {
		if set {
			cols = append(cols, col)
			args = append(args, v)
		}
	}
	add("amazon_url", p.AmazonURL != nil, deref(p.AmazonURL))
	add("author", p.Author != nil, deref(p.Author))
	add("language", p.Language != nil, deref(p.Language))
	add("pages", p.Pages != nil, deref(p.Pages))
	add("publisher", p.Publisher != nil, deref(p.Publisher))
	add("title", p.Title != nil, deref(p.Title))
	add("year", p.Year != nil, deref(p.Year))
	return cols, args
}

// Empty reports whether p changes nothing.
func (p Patch) Empty() bool {
	cols, _ := p.assignments()
	return len(cols) == 0
}

func deref[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}

// ValidationError lists every problem found in a book payload.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid book payload: " + strings.Join(e.Problems, "; ")
}

const bookColumns = "isbn, amazon_url, author, language, pages, publisher, title, year"

type scanner interface {
	Scan(dest ...any) error
}

func scanBook(row scanner) (Book, error) {
	var b Book
	err := row.Scan(&b.ISBN, &b.AmazonURL, &b.Author, &b.Language, &b.Pages, &b.Publisher, &b.Title, &b.Year)
	return b, err
}
