package filter

import (
	"strings"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/cases"
)

// Normalizer prepares text for case-insensitive substring matching.
type Normalizer struct {
	// Transliterate converts text to ASCII before folding.
	Transliterate bool
}

// Normalize folds s for comparison.
//
// A [cases.Caser] is stateful, so one is created per call.
func (n Normalizer) Normalize(s string) string {
	if s == "" {
		return s
	}
	if n.Transliterate {
		s = unidecode.Unidecode(s)
	}
	return strings.TrimSpace(cases.Fold().String(s))
}

// NormalizeAll normalizes every field, keeping positions.
func (n Normalizer) NormalizeAll(fields []string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = n.Normalize(f)
	}
	return out
}

// ContainsAny reports whether any field contains any needle.
//
// Fields and needles must already be normalized.
func ContainsAny(fields, needles []string) bool {
	for _, field := range fields {
		if field == "" {
			continue
		}
		for _, needle := range needles {
			if strings.Contains(field, needle) {
				return true
			}
		}
	}
	return false
}
