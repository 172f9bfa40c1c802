package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Track is a single catalog entry returned by the discovery provider.
type Track struct {
	ID          string
	Title       string
	Genre       string
	Description string
	Tags        Tags
	Uploader    string
	Duration    *int  // seconds
	Streamable  *bool // is_streamable
	Deleted     *bool // is_delete

	raw json.RawMessage
}

type trackUser struct {
	Name string `json:"name"`
}

type trackWire struct {
	ID          trackID    `json:"id"`
	Title       string     `json:"title,omitempty"`
	Genre       string     `json:"genre,omitempty"`
	Description string     `json:"description,omitempty"`
	Tags        Tags       `json:"tags,omitempty"`
	User        *trackUser `json:"user,omitempty"`
	Duration    *float64   `json:"duration,omitempty"`
	Streamable  *bool      `json:"is_streamable,omitempty"`
	Deleted     *bool      `json:"is_delete,omitempty"`
}

// UnmarshalJSON decodes the filterable fields and retains the raw object.
func (t *Track) UnmarshalJSON(data []byte) error {
	var w trackWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("failed to decode track: %w", err)
	}

	*t = Track{
		ID:          string(w.ID),
		Title:       w.Title,
		Genre:       w.Genre,
		Description: w.Description,
		Tags:        w.Tags,
		Streamable:  w.Streamable,
		Deleted:     w.Deleted,
		raw:         append(json.RawMessage(nil), bytes.TrimSpace(data)...),
	}
	if w.User != nil {
		t.Uploader = w.User.Name
	}
	if w.Duration != nil {
		seconds := int(math.Round(*w.Duration))
		t.Duration = &seconds
	}

	return nil
}

// MarshalJSON writes the upstream object untouched when the track was decoded from one.
func (t Track) MarshalJSON() ([]byte, error) {
	if len(t.raw) > 0 {
		return t.raw, nil
	}

	w := trackWire{
		ID:          trackID(t.ID),
		Title:       t.Title,
		Genre:       t.Genre,
		Description: t.Description,
		Tags:        t.Tags,
		Streamable:  t.Streamable,
		Deleted:     t.Deleted,
	}
	if t.Uploader != "" {
		w.User = &trackUser{Name: t.Uploader}
	}
	if t.Duration != nil {
		seconds := float64(*t.Duration)
		w.Duration = &seconds
	}

	return json.Marshal(w)
}

// Haystack returns the free-text fields searched by relevance and keyword filters.
//
// Fields are kept separate so a needle never matches across a field boundary.
// Tags are joined with commas into a single field.
func (t Track) Haystack() []string {
	return []string{t.Title, t.Uploader, t.Genre, t.Description, t.Tags.String()}
}

// trackID accepts a string or a numeric id.
type trackID string

func (id *trackID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*id = ""
		return nil
	}

	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*id = trackID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = trackID(n.String())
	return nil
}

// Tags is an ordered list of track tags.
//
// Upstream sends either a JSON array or a single comma-separated string.
type Tags []string

// UnmarshalJSON accepts null, an array of strings, or a comma-separated string.
func (tg *Tags) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*tg = nil
		return nil
	}

	if trimmed[0] == '"' {
		var joined string
		if err := json.Unmarshal(trimmed, &joined); err != nil {
			return err
		}
		*tg = SplitTags(joined)
		return nil
	}

	var list []string
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return fmt.Errorf("tags must be a string or list of strings: %w", err)
	}
	*tg = list
	return nil
}

// String joins tags with commas.
func (tg Tags) String() string {
	return strings.Join(tg, ",")
}

// SplitTags splits a comma-separated tag string, trimming blanks.
func SplitTags(joined string) Tags {
	var tags Tags
	for _, part := range strings.Split(joined, ",") {
		if part = strings.TrimSpace(part); part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}

// Bool returns a pointer to b, for building tracks by hand.
func Bool(b bool) *bool { return &b }

// Seconds returns a pointer to n, for building tracks by hand.
func Seconds(n int) *int { return &n }
