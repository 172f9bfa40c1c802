package filter

import (
	"fmt"

	"github.com/desertthunder/tunelyf/internal/shared"
)

// Presence decides how a gate treats a field missing from the upstream record.
type Presence int

const (
	ExcludeMissing Presence = iota // missing field fails the gate
	DefaultMissing                 // missing field takes its permissive default
)

// ParsePresence maps the config names "exclude" and "default" to a [Presence].
func ParsePresence(name string) (Presence, error) {
	switch name {
	case "exclude", "":
		return ExcludeMissing, nil
	case "default":
		return DefaultMissing, nil
	}
	return ExcludeMissing, fmt.Errorf("%w: unknown presence policy %q", shared.ErrInvalidConfig, name)
}

func (p Presence) String() string {
	if p == DefaultMissing {
		return "default"
	}
	return "exclude"
}

// MatchMode selects the text gate of a [Policy].
type MatchMode int

const (
	MatchNone       MatchMode = iota // no text gate
	MatchQuery                       // haystack must contain the query
	MatchVocabulary                  // haystack must contain a vocabulary keyword
)

// Policy names the gates an endpoint applies.
type Policy struct {
	Name         string
	DefaultLimit int

	Streamable  bool
	Duration    bool
	MinDuration int
	MaxDuration int
	Missing     Presence

	Match      MatchMode
	Normalizer Normalizer // used for MatchQuery
	Vocabulary Vocabulary // used for MatchVocabulary
}

// Policy names served by the proxy.
const (
	PolicySearch    = "search"
	PolicySearchNew = "search-new"
	PolicyHindi     = "hindi"
	PolicyTrending  = "trending"
)

// Policies is the set of named endpoint policies.
type Policies map[string]Policy

// Get returns the named policy.
func (p Policies) Get(name string) (Policy, error) {
	policy, ok := p[name]
	if !ok {
		return Policy{}, fmt.Errorf("%w: unknown filter policy %q", shared.ErrInvalidArgument, name)
	}
	return policy, nil
}

// Names lists the configured policies in a stable order.
func (p Policies) Names() []string {
	names := make([]string, 0, len(p))
	for _, n := range []string{PolicySearch, PolicySearchNew, PolicyHindi, PolicyTrending} {
		if _, ok := p[n]; ok {
			names = append(names, n)
		}
	}
	return names
}

// NewPolicies builds the endpoint policies from configuration.
//
//   - search: query relevance only, 10 per page
//   - search-new: streamability, duration, query relevance, 20 per page
//   - hindi: streamability, duration, vocabulary classifier, 20 per page
//   - trending: streamability only, 20 per page
func NewPolicies(cfg shared.FilterConfig) (Policies, error) {
	missing, err := ParsePresence(cfg.Missing)
	if err != nil {
		return nil, err
	}
	if cfg.MinDuration < 0 || cfg.MaxDuration < cfg.MinDuration {
		return nil, fmt.Errorf("%w: duration bounds [%d, %d]", shared.ErrInvalidConfig, cfg.MinDuration, cfg.MaxDuration)
	}

	query := Normalizer{}
	vocab := NewVocabulary(cfg.Vocabulary, Normalizer{Transliterate: cfg.Transliterate})

	gated := func(name string, limit int, match MatchMode) Policy {
		return Policy{
			Name:         name,
			DefaultLimit: limit,
			Streamable:   true,
			Duration:     true,
			MinDuration:  cfg.MinDuration,
			MaxDuration:  cfg.MaxDuration,
			Missing:      missing,
			Match:        match,
			Normalizer:   query,
			Vocabulary:   vocab,
		}
	}

	return Policies{
		PolicySearch: {
			Name:         PolicySearch,
			DefaultLimit: 10,
			Missing:      missing,
			Match:        MatchQuery,
			Normalizer:   query,
		},
		PolicySearchNew: gated(PolicySearchNew, 20, MatchQuery),
		PolicyHindi:     gated(PolicyHindi, 20, MatchVocabulary),
		PolicyTrending: {
			Name:         PolicyTrending,
			DefaultLimit: 20,
			Streamable:   true,
			Missing:      missing,
			Match:        MatchNone,
		},
	}, nil
}
