package filter

import "github.com/desertthunder/tunelyf/internal/models"

// gate reports whether a track passes. query is already normalized.
type gate func(track models.Track, query string) bool

// Transformer applies a [Policy] to upstream results. It holds no mutable state
// and is safe for concurrent use.
type Transformer struct {
	policy Policy
	gates  []gate
}

// New builds a Transformer whose gates follow the policy, in chain order.
func New(p Policy) *Transformer {
	t := &Transformer{policy: p}

	if p.Streamable {
		t.gates = append(t.gates, t.streamable)
	}
	if p.Duration {
		t.gates = append(t.gates, t.duration)
	}
	switch p.Match {
	case MatchQuery:
		t.gates = append(t.gates, t.relevant)
	case MatchVocabulary:
		t.gates = append(t.gates, t.classified)
	}

	return t
}

// Policy returns the policy the transformer was built from.
func (t *Transformer) Policy() Policy {
	return t.policy
}

// Keep reports whether a single track passes every gate.
func (t *Transformer) Keep(track models.Track, query string) bool {
	return t.keep(track, t.policy.Normalizer.Normalize(query))
}

func (t *Transformer) keep(track models.Track, query string) bool {
	for _, g := range t.gates {
		if !g(track, query) {
			return false
		}
	}
	return true
}

// Filter returns the tracks that pass, in their original order.
func (t *Transformer) Filter(tracks []models.Track, query string) []models.Track {
	q := t.policy.Normalizer.Normalize(query)
	kept := make([]models.Track, 0, len(tracks))
	for _, track := range tracks {
		if t.keep(track, q) {
			kept = append(kept, track)
		}
	}
	return kept
}

// Apply filters tracks and slices the result to the window.
func (t *Transformer) Apply(tracks []models.Track, query string, w Window) []models.Track {
	return Paginate(t.Filter(tracks, query), w)
}

func (t *Transformer) streamable(track models.Track, _ string) bool {
	streamable, deleted := track.Streamable, track.Deleted
	if t.policy.Missing == DefaultMissing {
		return (streamable == nil || *streamable) && (deleted == nil || !*deleted)
	}
	return streamable != nil && *streamable && deleted != nil && !*deleted
}

func (t *Transformer) duration(track models.Track, _ string) bool {
	if track.Duration == nil {
		return t.policy.Missing == DefaultMissing
	}
	d := *track.Duration
	return d >= t.policy.MinDuration && d <= t.policy.MaxDuration
}

func (t *Transformer) relevant(track models.Track, query string) bool {
	fields := t.policy.Normalizer.NormalizeAll(track.Haystack())
	return ContainsAny(fields, []string{query})
}

func (t *Transformer) classified(track models.Track, _ string) bool {
	return t.policy.Vocabulary.Matches(track.Haystack())
}
