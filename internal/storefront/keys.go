package storefront

import "strings"

// CountryCodes returns the distinct non-empty country codes of stores in order
// of first appearance.
func CountryCodes(stores []Store) []string {
	seen := make(map[string]bool, len(stores))
	codes := make([]string, 0, len(stores))
	for _, s := range stores {
		code := s.Country.Code
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}
	return codes
}

// BatchKey joins CountryCodes with commas. skip is true when there is nothing to look up.
func BatchKey(stores []Store) (key string, skip bool) {
	key = strings.Join(CountryCodes(stores), ",")
	return key, key == ""
}
