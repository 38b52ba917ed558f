// internal/core/ports/metadata.go
package ports

import (
	"context"

	"movielinks/internal/core/domain"
)

// MetadataProvider looks up descriptive information about a title.
type MetadataProvider interface {
	// Lookup returns details for the best match of title.
	Lookup(ctx context.Context, title string) (*domain.MovieDetails, error)

	// Suggest returns candidate titles for a partial query.
	Suggest(ctx context.Context, query string) ([]string, error)
}
