package storefront

import (
	"cmp"
	"slices"
)

// CompareBooks orders books by copies sold, highest first. It is negative when a
// sold more than b, positive when it sold fewer and zero on a tie.
func CompareBooks(a, b Book) int {
	return cmp.Compare(b.CopiesSold, a.CopiesSold)
}

// RankBooks returns a copy of books sorted with CompareBooks. Ties keep their input order.
func RankBooks(books []Book) []Book {
	ranked := slices.Clone(books)
	if ranked == nil {
		ranked = []Book{}
	}
	slices.SortStableFunc(ranked, CompareBooks)
	return ranked
}
