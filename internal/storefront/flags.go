package storefront

// MergeFlags returns copies of stores with Country.FlagURL set from flags by
// country code. Stores whose code has no flag keep a nil FlagURL.
func MergeFlags(stores []Store, flags []Flag) []Store {
	byCode := make(map[string]string, len(flags))
	for _, f := range flags {
		if f.Code == "" || f.ImageURL == "" {
			continue
		}
		byCode[f.Code] = f.ImageURL
	}

	merged := make([]Store, len(stores))
	for i, s := range stores {
		if url, ok := byCode[s.Country.Code]; ok && s.Country.Code != "" {
			s.Country.FlagURL = &url
		}
		merged[i] = s
	}
	return merged
}

// FlagsMatched counts stores that carry a flag.
func FlagsMatched(stores []Store) int {
	n := 0
	for _, s := range stores {
		if s.Country.FlagURL != nil {
			n++
		}
	}
	return n
}
