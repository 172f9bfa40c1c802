package filter

import (
	"strconv"
	"strings"

	"github.com/desertthunder/tunelyf/internal/models"
)

// Window is an offset/limit page request.
type Window struct {
	Offset int
	Limit  int
}

// End returns offset+limit, saturating instead of overflowing.
func (w Window) End() int {
	if w.Limit > maxInt-w.Offset {
		return maxInt
	}
	return w.Offset + w.Limit
}

const maxInt = int(^uint(0) >> 1)

// ParseWindow parses raw offset and limit parameters.
//
// Empty, non-numeric or negative values fall back to 0 and defaultLimit.
func ParseWindow(offset, limit string, defaultLimit int) Window {
	return Window{
		Offset: parseNonNegative(offset, 0),
		Limit:  parseNonNegative(limit, defaultLimit),
	}
}

func parseNonNegative(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

// Paginate returns tracks[offset:offset+limit], clamped to the slice.
//
// An out-of-range window yields an empty, non-nil slice.
func Paginate(tracks []models.Track, w Window) []models.Track {
	if w.Offset < 0 || w.Limit <= 0 || w.Offset >= len(tracks) {
		return []models.Track{}
	}
	end := w.End()
	if end > len(tracks) {
		end = len(tracks)
	}
	return tracks[w.Offset:end]
}

// FetchSize is how many records to request upstream so that filtering still leaves
// a full page. It is (offset+limit)*multiplier, capped at maxFetch and never below 1.
func FetchSize(w Window, multiplier, maxFetch int) int {
	if multiplier < 1 {
		multiplier = 1
	}
	end := w.End()
	size := end
	if end <= maxFetch/multiplier {
		size = end * multiplier
	}
	if maxFetch > 0 && size > maxFetch {
		size = maxFetch
	}
	if size < 1 {
		size = 1
	}
	return size
}
