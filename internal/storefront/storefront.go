package storefront

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrMissingRelationship is returned when a store has no country relationship.
	ErrMissingRelationship = errors.New("missing required relationship")
	// ErrUnresolvedReference marks a relationship id with no included resource.
	// It is never returned from Refresh; see UnresolvedReference.
	ErrUnresolvedReference = errors.New("unresolved reference")
	// ErrUnsupportedKind is returned for included resources of an unknown type.
	ErrUnsupportedKind = errors.New("unsupported resource kind")
	// ErrUpstreamFetch wraps failures of either upstream call.
	ErrUpstreamFetch = errors.New("upstream fetch failed")
)

// Country is a resolved country. FlagURL stays nil until a flag is merged in.
type Country struct {
	ID      string  `json:"id"`
	Code    string  `json:"code,omitempty"`
	FlagURL *string `json:"flagUrl,omitempty"`
}

type Author struct {
	ID       string `json:"id,omitempty"`
	FullName string `json:"fullName,omitempty"`
}

type Book struct {
	ID         string `json:"id"`
	Name       string `json:"name,omitempty"`
	ISBN       string `json:"isbn,omitempty"`
	CopiesSold int64  `json:"copiesSold,omitempty"`
	Author     Author `json:"author"`
}

// Store is a fully denormalized store with its country and ranked books.
type Store struct {
	ID                string  `json:"id"`
	Name              string  `json:"name,omitempty"`
	Rating            float64 `json:"rating"`
	EstablishmentDate string  `json:"establishmentDate,omitempty"`
	Website           string  `json:"website,omitempty"`
	StoreImage        string  `json:"storeImage,omitempty"`
	Country           Country `json:"country"`
	Books             []Book  `json:"books"`
}

// BestSellers returns at most n of the store's top ranked books.
func (s Store) BestSellers(n int) []Book {
	if n > len(s.Books) {
		n = len(s.Books)
	}
	if n < 0 {
		n = 0
	}
	return s.Books[:n]
}

// EstablishedAt parses EstablishmentDate, which travels as RFC 3339 without fractions.
func (s Store) EstablishedAt() (time.Time, error) {
	return time.Parse(time.RFC3339, s.EstablishmentDate)
}

// Flag is one entry of the countries lookup: a country code and its flag image.
type Flag struct {
	Code     string
	ImageURL string
}

// UnsupportedKindError reports an included resource whose type is not indexed.
type UnsupportedKindError struct {
	Type string
	ID   string
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("%s: type %q (id %q)", ErrUnsupportedKind, e.Type, e.ID)
}

func (e *UnsupportedKindError) Unwrap() error { return ErrUnsupportedKind }

// UnresolvedReference is a relationship id with no entry in the index. Resolution
// degrades to an object carrying only the id.
type UnresolvedReference struct {
	Kind Kind
	ID   string
	From string
}

func (u UnresolvedReference) Error() string {
	return fmt.Sprintf("%s: %s %q referenced by %s", ErrUnresolvedReference, u.Kind, u.ID, u.From)
}

func (u UnresolvedReference) Unwrap() error { return ErrUnresolvedReference }
