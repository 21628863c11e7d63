package upstream

import (
	"context"
	"fmt"
	"net/url"
)

// Operation names, used as the "operation" label in logs and metrics.
const (
	OpFetchAllTracks      = "fetchAllTracks"
	OpFetchAuthor         = "fetchAuthor"
	OpFetchTrack          = "fetchTrack"
	OpFetchTrackModules   = "fetchTrackModules"
	OpFetchModule         = "fetchModule"
	OpIncrementTrackViews = "incrementTrackViews"
)

// Catalog exposes the catalog REST endpoints the GraphQL schema needs.
// It holds no per-request state and is safe for concurrent use.
type Catalog struct {
	client *Client
}

// NewCatalog wraps client, whose base URL must point at the catalog API root.
func NewCatalog(client *Client) *Catalog {
	return &Catalog{client: client}
}

// FetchAllTracks returns the tracks shown on the home page (GET tracks).
func (c *Catalog) FetchAllTracks(ctx context.Context) ([]Track, error) {
	var tracks []Track
	if err := c.client.GetJSON(ctx, OpFetchAllTracks, "tracks", &tracks); err != nil {
		return nil, fmt.Errorf("fetch tracks: %w", err)
	}
	return tracks, nil
}

// FetchAuthor returns one author (GET author/{id}).
func (c *Catalog) FetchAuthor(ctx context.Context, authorID string) (*Author, error) {
	var author Author
	if err := c.client.GetJSON(ctx, OpFetchAuthor, "author/"+url.PathEscape(authorID), &author); err != nil {
		return nil, fmt.Errorf("fetch author %s: %w", authorID, err)
	}
	return &author, nil
}

// FetchTrack returns one track (GET track/{id}).
func (c *Catalog) FetchTrack(ctx context.Context, trackID string) (*Track, error) {
	var track Track
	if err := c.client.GetJSON(ctx, OpFetchTrack, "track/"+url.PathEscape(trackID), &track); err != nil {
		return nil, fmt.Errorf("fetch track %s: %w", trackID, err)
	}
	return &track, nil
}

// FetchTrackModules returns the modules of a track (GET track/{id}/modules).
func (c *Catalog) FetchTrackModules(ctx context.Context, trackID string) ([]Module, error) {
	var modules []Module
	path := "track/" + url.PathEscape(trackID) + "/modules"
	if err := c.client.GetJSON(ctx, OpFetchTrackModules, path, &modules); err != nil {
		return nil, fmt.Errorf("fetch modules of track %s: %w", trackID, err)
	}
	return modules, nil
}

// FetchModule returns one module (GET module/{id}).
func (c *Catalog) FetchModule(ctx context.Context, moduleID string) (*Module, error) {
	var module Module
	if err := c.client.GetJSON(ctx, OpFetchModule, "module/"+url.PathEscape(moduleID), &module); err != nil {
		return nil, fmt.Errorf("fetch module %s: %w", moduleID, err)
	}
	return &module, nil
}

// IncrementTrackViews bumps the view counter of a track and returns the
// updated track (PATCH track/{id}/numberOfViews, no body).
func (c *Catalog) IncrementTrackViews(ctx context.Context, trackID string) (*Track, error) {
	path := "track/" + url.PathEscape(trackID) + "/numberOfViews"
	resp, err := c.client.Patch(ctx, OpIncrementTrackViews, path)
	if err != nil {
		return nil, fmt.Errorf("increment views of track %s: %w", trackID, err)
	}
	var track Track
	if err := resp.JSON(&track); err != nil {
		return nil, fmt.Errorf("increment views of track %s: %w", trackID, err)
	}
	return &track, nil
}
