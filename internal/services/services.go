// package services defines interface Catalog for interacting with music catalog APIs
package services

import (
	"context"

	"github.com/desertthunder/tunelyf/internal/models"
)

// Catalog defines the read-only operations the proxy forwards to a music catalog.
type Catalog interface {
	// Search returns up to limit tracks matching the query, in upstream order.
	Search(ctx context.Context, query string, limit int) ([]models.Track, error)

	// Trending returns up to limit currently trending tracks.
	Trending(ctx context.Context, limit int) ([]models.Track, error)

	// ResolveStream returns the URL the catalog redirects to for the track's audio.
	ResolveStream(ctx context.Context, trackID string) (string, error)

	// Name returns the name of the catalog (e.g., "Audius")
	Name() string
}
