package graph

import (
	"context"
	"fmt"
	"math"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/nucleus/catalog-api/internal/datasource"
	"github.com/nucleus/catalog-api/internal/upstream"
)

// TrackResolver resolves the fields of a Track. author and modules are
// fetched only when selected.
type TrackResolver struct {
	track upstream.Track
}

func newTrackResolver(track *upstream.Track) *TrackResolver {
	if track == nil {
		return nil
	}
	return &TrackResolver{track: *track}
}

func (t *TrackResolver) ID() graphql.ID { return graphql.ID(t.track.ID) }
func (t *TrackResolver) Title() string { return t.track.Title }
func (t *TrackResolver) Thumbnail() *string { return nullableString(t.track.Thumbnail) }
func (t *TrackResolver) Length() (*int32, error) { return nullableInt(t.track.Length) }

// DurationInSeconds projects the upstream length attribute.
func (t *TrackResolver) DurationInSeconds() (*int32, error) { return nullableInt(t.track.Length) }

func (t *TrackResolver) ModulesCount() (*int32, error) { return nullableInt(t.track.ModulesCount) }
func (t *TrackResolver) Description() *string { return nullableString(t.track.Description) }
func (t *TrackResolver) NumberOfViews() (*int32, error) { return nullableInt(t.track.NumberOfViews) }

// Author fetches the track's author by its authorId.
func (t *TrackResolver) Author(ctx context.Context) (*AuthorResolver, error) {
	catalog, err := datasource.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	author, err := catalog.FetchAuthor(ctx, t.track.AuthorID)
	if err != nil {
		return nil, err
	}
	return &AuthorResolver{author: *author}, nil
}

// Modules fetches the modules belonging to the track.
func (t *TrackResolver) Modules(ctx context.Context) ([]*ModuleResolver, error) {
	catalog, err := datasource.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	modules, err := catalog.FetchTrackModules(ctx, t.track.ID)
	if err != nil {
		return nil, err
	}

	result := make([]*ModuleResolver, len(modules))
	for i := range modules {
		result[i] = &ModuleResolver{module: modules[i]}
	}
	return result, nil
}

// AuthorResolver resolves the fields of an Author.
type AuthorResolver struct {
	author upstream.Author
}

func (a *AuthorResolver) ID() graphql.ID { return graphql.ID(a.author.ID) }
func (a *AuthorResolver) Name() string { return a.author.Name }
func (a *AuthorResolver) Photo() *string { return nullableString(a.author.Photo) }

// ModuleResolver resolves the fields of a Module.
type ModuleResolver struct {
	module upstream.Module
}

func (m *ModuleResolver) ID() graphql.ID { return graphql.ID(m.module.ID) }
func (m *ModuleResolver) Title() string { return m.module.Title }
func (m *ModuleResolver) Length() (*int32, error) { return nullableInt(m.module.Length) }
func (m *ModuleResolver) DurationInSeconds() (*int32, error) { return nullableInt(m.module.Length) }
func (m *ModuleResolver) Content() *string { return nullableString(m.module.Content) }
func (m *ModuleResolver) VideoURL() *string { return nullableString(m.module.VideoURL) }

// =============================================================================
// HELPERS
// =============================================================================

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// nullableInt narrows an upstream integer to GraphQL's 32-bit Int.
// Out of range values are an error, never a wrapped number.
func nullableInt(n *int) (*int32, error) {
	if n == nil {
		return nil, nil
	}
	if *n < math.MinInt32 || *n > math.MaxInt32 {
		return nil, fmt.Errorf("Int cannot represent non 32-bit signed integer value: %d", *n)
	}
	v := int32(*n)
	return &v, nil
}
