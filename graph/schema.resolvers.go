package graph

import (
	"context"
	"fmt"
	"net/http"

	graphql "github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"

	"github.com/nucleus/catalog-api/internal/datasource"
	"github.com/nucleus/catalog-api/internal/upstream"
)

// =============================================================================
// QUERY RESOLVERS
// =============================================================================

// TracksForHome returns the tracks for the home page grid.
func (r *Resolver) TracksForHome(ctx context.Context) ([]*TrackResolver, error) {
	catalog, err := datasource.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	tracks, err := catalog.FetchAllTracks(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*TrackResolver, len(tracks))
	for i := range tracks {
		result[i] = &TrackResolver{track: tracks[i]}
	}
	return result, nil
}

// Track returns a single track by ID.
func (r *Resolver) Track(ctx context.Context, args struct{ ID graphql.ID }) (*TrackResolver, error) {
	catalog, err := datasource.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	track, err := catalog.FetchTrack(ctx, string(args.ID))
	if err != nil {
		return nil, err
	}
	return newTrackResolver(track), nil
}

// Module returns a single module by ID.
func (r *Resolver) Module(ctx context.Context, args struct{ ID graphql.ID }) (*ModuleResolver, error) {
	catalog, err := datasource.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	module, err := catalog.FetchModule(ctx, string(args.ID))
	if err != nil {
		return nil, err
	}
	return &ModuleResolver{module: *module}, nil
}

// =============================================================================
// MUTATION RESOLVERS
// =============================================================================

// IncrementTrackViewsResponse is the payload of the incrementTrackViews mutation.
// Track is set only when Success is true.
type IncrementTrackViewsResponse struct {
	Code    int32
	Success bool
	Message string
	Track   *TrackResolver
}

// IncrementTrackViews bumps the view counter of a track. An upstream HTTP
// error is reported in the payload rather than as a field error; any other
// failure propagates.
func (r *Resolver) IncrementTrackViews(ctx context.Context, args struct{ ID graphql.ID }) (*IncrementTrackViewsResponse, error) {
	catalog, err := datasource.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	id := string(args.ID)
	track, err := catalog.IncrementTrackViews(ctx, id)
	if err != nil {
		httpErr, ok := upstream.AsHTTPError(err)
		if !ok {
			return nil, err
		}
		r.logger.Info("increment track views rejected",
			zap.String("track_id", id),
			zap.Int("status", httpErr.StatusCode))
		return &IncrementTrackViewsResponse{
			Code:    int32(httpErr.StatusCode),
			Success: false,
			Message: httpErr.Body,
		}, nil
	}

	return &IncrementTrackViewsResponse{
		Code:    http.StatusOK,
		Success: true,
		Message: fmt.Sprintf("Successfully incremented number of views for track %s", id),
		Track:   newTrackResolver(track),
	}, nil
}
