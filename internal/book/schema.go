package book

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Mode selects which schema rules apply to a payload.
type Mode int

const (
	// ModeCreate requires every field.
	ModeCreate Mode = iota
	// ModeUpdate accepts any subset of the mutable fields.
	ModeUpdate
)

type fieldKind int

const (
	kindString fieldKind = iota
	kindInteger
)

// field describes one property of the book payload. Rules are validator tags
// applied once the primitive type is known to be right.
type field struct {
	Name  string
	Kind  fieldKind
	Rules string
}

var bookSchema = []field{
	{Name: "isbn", Kind: kindString, Rules: "required"},
	{Name: "amazon_url", Kind: kindString, Rules: "url"},
	{Name: "author", Kind: kindString},
	{Name: "language", Kind: kindString},
	{Name: "pages", Kind: kindInteger, Rules: "gt=0"},
	{Name: "publisher", Kind: kindString},
	{Name: "title", Kind: kindString},
	{Name: "year", Kind: kindInteger},
}

var validate = validator.New()

// Validate checks payload against the book schema. It returns the typed fields
// when the payload is acceptable, or a *ValidationError listing every problem.
// In ModeCreate the returned Book is complete; in ModeUpdate only the Patch is
// meaningful.
func Validate(payload map[string]any, mode Mode) (Book, Patch, error) {
	var (
		problems []string
		b        Book
		p        Patch
	)

	known := make(map[string]bool, len(bookSchema))
	for _, f := range bookSchema {
		known[f.Name] = true

		raw, present := payload[f.Name]
		if !present {
			if mode == ModeCreate {
				problems = append(problems, fmt.Sprintf("%s is required", f.Name))
			}
			continue
		}
		if mode == ModeUpdate && f.Name == "isbn" {
			problems = append(problems, "isbn cannot be changed")
			continue
		}

		value, problem := coerce(f, raw)
		if problem == "" {
			problem = checkRules(f, value)
		}
		if problem != "" {
			problems = append(problems, problem)
			continue
		}
		assign(&b, &p, f.Name, value)
	}

	var unknown []string
	for name := range payload {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		problems = append(problems, fmt.Sprintf("unknown field %q", name))
	}

	if mode == ModeUpdate && len(payload) == 0 {
		problems = append(problems, "at least one field is required")
	}

	if len(problems) > 0 {
		return Book{}, Patch{}, &ValidationError{Problems: problems}
	}
	return b, p, nil
}

func coerce(f field, raw any) (any, string) {
	switch f.Kind {
	case kindString:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Sprintf("%s must be a string", f.Name)
		}
		return s, ""
	case kindInteger:
		n, ok := raw.(json.Number)
		if !ok {
			return nil, fmt.Sprintf("%s must be an integer", f.Name)
		}
		v, err := strconv.ParseInt(n.String(), 10, 32)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return nil, fmt.Sprintf("%s is out of range", f.Name)
			}
			// integral values spelled 555.0 or 1e3
			fv, ferr := n.Float64()
			if ferr != nil || fv != math.Trunc(fv) {
				return nil, fmt.Sprintf("%s must be an integer", f.Name)
			}
			if fv > math.MaxInt32 || fv < math.MinInt32 {
				return nil, fmt.Sprintf("%s is out of range", f.Name)
			}
			return int(fv), ""
		}
		return int(v), ""
	}
	return nil, fmt.Sprintf("%s is invalid", f.Name)
}

func checkRules(f field, value any) string {
	if f.Rules == "" {
		return ""
	}
	err := validate.Var(value, f.Rules)
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Sprintf("%s is invalid", f.Name)
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s must not be empty", f.Name)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", f.Name)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", f.Name, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", f.Name)
	}
}

func assign(b *Book, p *Patch, name string, value any) {
	switch name {
	case "isbn":
		b.ISBN = value.(string)
	case "amazon_url":
		s := value.(string)
		b.AmazonURL, p.AmazonURL = s, &s
	case "author":
		s := value.(string)
		b.Author, p.Author = s, &s
	case "language":
		s := value.(string)
		b.Language, p.Language = s, &s
	case "pages":
		n := value.(int)
		b.Pages, p.Pages = n, &n
	case "publisher":
		s := value.(string)
		b.Publisher, p.Publisher = s, &s
	case "title":
		s := value.(string)
		b.Title, p.Title = s, &s
	case "year":
		n := value.(int)
		b.Year, p.Year = n, &n
	}
}
