package storefront

import (
	"fmt"
	"strings"

	"bookstores/internal/jsonapi"
)

// Kind enumerates the included resource types the index understands.
type Kind int

const (
	KindUnknown Kind = iota
	KindCountry
	KindBook
	KindAuthor
)

func (k Kind) String() string {
	switch k {
	case KindCountry:
		return "country"
	case KindBook:
		return "book"
	case KindAuthor:
		return "author"
	default:
		return "unknown"
	}
}

// ParseKind maps a JSON:API type string, singular or plural, to a Kind.
func ParseKind(typ string) Kind {
	switch strings.ToLower(typ) {
	case "countries", "country":
		return KindCountry
	case "books", "book":
		return KindBook
	case "authors", "author":
		return KindAuthor
	default:
		return KindUnknown
	}
}

// KindPolicy decides what happens to included resources of an unknown kind.
type KindPolicy int

const (
	SkipUnsupported KindPolicy = iota
	RejectUnsupported
)

// ParseKindPolicy accepts "skip" (or empty) and "reject".
func ParseKindPolicy(s string) (KindPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "skip":
		return SkipUnsupported, nil
	case "reject":
		return RejectUnsupported, nil
	default:
		return SkipUnsupported, fmt.Errorf("unknown unsupported-kind policy: %q", s)
	}
}

func (p KindPolicy) String() string {
	if p == RejectUnsupported {
		return "reject"
	}
	return "skip"
}

type countryAttributes struct {
	Code string `json:"code"`
}

type authorAttributes struct {
	FullName string `json:"fullName"`
}

type bookAttributes struct {
	Name       string `json:"name"`
	ISBN       string `json:"isbn"`
	CopiesSold int64  `json:"copiesSold"`
}

// Index holds one lookup table per kind, keyed by resource id. Book entries
// already carry their resolved author.
type Index struct {
	Countries map[string]Country
	Authors   map[string]Author
	Books     map[string]Book
	// Skipped lists included resources dropped under SkipUnsupported.
	Skipped []jsonapi.Identifier
	// Unresolved lists author ids referenced by books but not included.
	Unresolved []UnresolvedReference
}

// Len returns the number of entries indexed for kind.
func (idx *Index) Len(kind Kind) int {
	switch kind {
	case KindCountry:
		return len(idx.Countries)
	case KindBook:
		return len(idx.Books)
	case KindAuthor:
		return len(idx.Authors)
	default:
		return 0
	}
}

// BuildIndex indexes the side-loaded resources of a document.
func BuildIndex(included []jsonapi.Resource, policy KindPolicy) (*Index, error) {
	idx := &Index{
		Countries: make(map[string]Country),
		Authors:   make(map[string]Author),
		Books:     make(map[string]Book),
	}
	authorOf := make(map[string]string)

	for _, res := range included {
		switch ParseKind(res.Type) {
		case KindCountry:
			var attrs countryAttributes
			if err := res.DecodeAttributes(&attrs); err != nil {
				return nil, err
			}
			idx.Countries[res.ID] = Country{ID: res.ID, Code: attrs.Code}
		case KindAuthor:
			var attrs authorAttributes
			if err := res.DecodeAttributes(&attrs); err != nil {
				return nil, err
			}
			idx.Authors[res.ID] = Author{ID: res.ID, FullName: attrs.FullName}
		case KindBook:
			var attrs bookAttributes
			if err := res.DecodeAttributes(&attrs); err != nil {
				return nil, err
			}
			idx.Books[res.ID] = Book{ID: res.ID, Name: attrs.Name, ISBN: attrs.ISBN, CopiesSold: attrs.CopiesSold}
			authorOf[res.ID] = ""
			if rel, ok := res.Relationship("author", "authors"); ok {
				if id, ok := rel.ToOneID(); ok {
					authorOf[res.ID] = id
				}
			}
		default:
			if policy == RejectUnsupported {
				return nil, &UnsupportedKindError{Type: res.Type, ID: res.ID}
			}
			idx.Skipped = append(idx.Skipped, jsonapi.Identifier{Type: res.Type, ID: res.ID})
		}
	}

	// Authors may be included after the books that reference them.
	for bookID, book := range idx.Books {
		authorID := authorOf[bookID]
		author, ok := idx.Authors[authorID]
		if !ok {
			author = Author{ID: authorID}
			if authorID != "" {
				idx.Unresolved = append(idx.Unresolved, UnresolvedReference{Kind: KindAuthor, ID: authorID, From: "book " + bookID})
			}
		}
		book.Author = author
		idx.Books[bookID] = book
	}

	return idx, nil
}
