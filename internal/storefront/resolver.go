package storefront

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"bookstores/internal/jsonapi"
)

type storeAttributes struct {
	Name              string  `json:"name"`
	Rating            float64 `json:"rating"`
	EstablishmentDate string  `json:"establishmentDate"`
	Website           string  `json:"website"`
	StoreImage        string  `json:"storeImage"`
}

// Resolution is the output of Resolve: stores in input order plus the references
// that could not be resolved against the index.
type Resolution struct {
	Stores     []Store
	Unresolved []UnresolvedReference
}

// Resolve denormalizes each primary resource against idx. Stores are resolved
// concurrently, at most parallelism at a time (unbounded when parallelism <= 0),
// and returned in the order of data.
func Resolve(ctx context.Context, data []jsonapi.Resource, idx *Index, parallelism int) (Resolution, error) {
	stores := make([]Store, len(data))
	unresolved := make([][]UnresolvedReference, len(data))

	g, ctx := errgroup.WithContext(ctx)
	if parallelism > 0 {
		g.SetLimit(parallelism)
	}
	for i := range data {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			store, refs, err := resolveStore(data[i], idx)
			if err != nil {
				return err
			}
			stores[i] = store
			unresolved[i] = refs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Resolution{}, err
	}

	res := Resolution{Stores: stores}
	for _, refs := range unresolved {
		res.Unresolved = append(res.Unresolved, refs...)
	}
	return res, nil
}

func resolveStore(res jsonapi.Resource, idx *Index) (Store, []UnresolvedReference, error) {
	var attrs storeAttributes
	if err := res.DecodeAttributes(&attrs); err != nil {
		return Store{}, nil, err
	}
	store := Store{
		ID:                res.ID,
		Name:              attrs.Name,
		Rating:            attrs.Rating,
		EstablishmentDate: attrs.EstablishmentDate,
		Website:           attrs.Website,
		StoreImage:        attrs.StoreImage,
	}
	from := "store " + res.ID
	var refs []UnresolvedReference

	rel, ok := res.Relationship("countries", "country")
	if !ok {
		return Store{}, nil, fmt.Errorf("%s: country: %w", from, ErrMissingRelationship)
	}
	countryID, ok := rel.ToOneID()
	if !ok {
		return Store{}, nil, fmt.Errorf("%s: country: %w", from, ErrMissingRelationship)
	}
	country, ok := idx.Countries[countryID]
	if !ok {
		country = Country{ID: countryID}
		refs = append(refs, UnresolvedReference{Kind: KindCountry, ID: countryID, From: from})
	}
	store.Country = country

	var bookIDs []string
	if rel, ok := res.Relationship("books"); ok {
		bookIDs = rel.IDs()
	}
	books := make([]Book, 0, len(bookIDs))
	for _, id := range bookIDs {
		book, ok := idx.Books[id]
		if !ok {
			book = Book{ID: id}
			refs = append(refs, UnresolvedReference{Kind: KindBook, ID: id, From: from})
		}
		books = append(books, book)
	}
	store.Books = RankBooks(books)

	return store, refs, nil
}
