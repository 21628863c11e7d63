// Package datasource carries the catalog handle through a request context.
// The GraphQL resolvers read it back with FromContext.
package datasource

import (
	"context"
	"errors"
	"net/http"

	"github.com/nucleus/catalog-api/internal/upstream"
)

// Catalog is the set of upstream operations the resolvers depend on.
// *upstream.Catalog implements it.
type Catalog interface {
	FetchAllTracks(ctx context.Context) ([]upstream.Track, error)
	FetchAuthor(ctx context.Context, authorID string) (*upstream.Author, error)
	FetchTrack(ctx context.Context, trackID string) (*upstream.Track, error)
	FetchTrackModules(ctx context.Context, trackID string) ([]upstream.Module, error)
	FetchModule(ctx context.Context, moduleID string) (*upstream.Module, error)
	IncrementTrackViews(ctx context.Context, trackID string) (*upstream.Track, error)
}

var _ Catalog = (*upstream.Catalog)(nil)

// ErrNoCatalog is returned by FromContext when no catalog was attached.
var ErrNoCatalog = errors.New("datasource: no catalog in context")

type contextKey string

const contextKeyCatalog contextKey = "catalogAPI"

// WithCatalog returns a copy of ctx carrying catalog.
func WithCatalog(ctx context.Context, catalog Catalog) context.Context {
	return context.WithValue(ctx, contextKeyCatalog, catalog)
}

// FromContext extracts the catalog handle from ctx.
func FromContext(ctx context.Context) (Catalog, error) {
	if catalog, ok := ctx.Value(contextKeyCatalog).(Catalog); ok && catalog != nil {
		return catalog, nil
	}
	return nil, ErrNoCatalog
}

// Middleware returns an HTTP middleware that attaches catalog to every request context.
func Middleware(catalog Catalog) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithCatalog(r.Context(), catalog)))
		})
	}
}
