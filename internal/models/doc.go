// Package models defines the track record exchanged with the Audius catalog.
//
// A [Track] is an opaque pass-through: it decodes only the fields the filters need
// (title, uploader, genre, description, tags, duration and playability flags) and
// keeps the original JSON object so responses carry upstream records unchanged.
//
// Optional upstream fields are pointers. A nil [Track.Duration], [Track.Streamable] or
// [Track.Deleted] means the key was absent, which the filter package treats according
// to its presence policy.
package models
