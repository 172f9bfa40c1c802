package filter

import "slices"

// Vocabulary is an immutable keyword list used to classify tracks without
// relying on upstream metadata (for example a "Hindi" category).
//
// The zero value matches nothing.
type Vocabulary struct {
	keywords   []string
	normalizer Normalizer
}

// NewVocabulary normalizes and de-duplicates words, dropping blanks.
func NewVocabulary(words []string, n Normalizer) Vocabulary {
	keywords := make([]string, 0, len(words))
	for _, w := range words {
		w = n.Normalize(w)
		if w == "" || slices.Contains(keywords, w) {
			continue
		}
		keywords = append(keywords, w)
	}
	return Vocabulary{keywords: keywords, normalizer: n}
}

// Keywords returns a copy of the normalized keywords.
func (v Vocabulary) Keywords() []string {
	return slices.Clone(v.keywords)
}

// Len returns the number of keywords.
func (v Vocabulary) Len() int {
	return len(v.keywords)
}

// Matches reports whether any raw field contains at least one keyword.
func (v Vocabulary) Matches(fields []string) bool {
	if len(v.keywords) == 0 {
		return false
	}
	return ContainsAny(v.normalizer.NormalizeAll(fields), v.keywords)
}
