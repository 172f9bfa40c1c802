// Package filter turns raw upstream track lists into the page a caller asked for.
//
// # Predicate Chain
//
// A [Transformer] applies the gates enabled by its [Policy], in order, stopping at
// the first gate a track fails:
//
//  1. Streamability: is_streamable must be true and is_delete must be false.
//  2. Duration: MinDuration <= duration <= MaxDuration, both bounds inclusive.
//  3. Match: either free-text relevance against the query, or classification
//     against a fixed [Vocabulary].
//
// Tracks that pass keep their original relative order, so the output is always a
// subsequence of the input.
//
// # Presence
//
// [Presence] names what happens when a gated field is missing from the upstream
// record. [ExcludeMissing] fails closed. [DefaultMissing] assumes a playable,
// non-deleted track and skips the duration gate.
//
// # Matching
//
// Matching is case-insensitive substring containment over each haystack field
// separately. A [Normalizer] case-folds text and can transliterate non-Latin
// scripts to ASCII first, so a romanized vocabulary also matches Devanagari titles.
//
// # Pagination
//
// [Paginate] slices the filtered list to a [Window]. [ParseWindow] never fails:
// unparseable offset or limit values fall back to defaults.
package filter
