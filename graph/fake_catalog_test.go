package graph

import (
	"context"
	"sync"

	"github.com/nucleus/catalog-api/internal/upstream"
)

// fakeCatalog is an in-memory datasource.Catalog that records every call.
type fakeCatalog struct {
	mu    sync.Mutex
	calls []string

	tracks  map[string]upstream.Track
	authors map[string]upstream.Author
	modules map[string][]upstream.Module

	// err, when set, is returned by every call.
	err error
	// incrementErr, when set, is returned by IncrementTrackViews only.
	incrementErr error
}

func intPtr(n int) *int { return &n }

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		tracks: map[string]upstream.Track{
			"c_0": {ID: "c_0", Title: "Cat-stronaut", AuthorID: "cat-1", Length: intPtr(1210), ModulesCount: intPtr(2), NumberOfViews: intPtr(4), Thumbnail: "https://img/c_0.jpg"},
			"c_1": {ID: "c_1", Title: "Kitty space suits", AuthorID: "cat-2"},
		},
		authors: map[string]upstream.Author{
			"cat-1": {ID: "cat-1", Name: "Grumpy Cat", Photo: "https://img/grumpy.jpg"},
			"cat-2": {ID: "cat-2", Name: "Henri"},
		},
		modules: map[string][]upstream.Module{
			"c_0": {
				{ID: "l_0", Title: "Exploring Time and Space", Length: intPtr(257)},
				{ID: "l_1", Title: "Cat-ship", Length: intPtr(120), Content: "# Intro", VideoURL: "https://cdn/l_1.mp4"},
			},
		},
	}
}

func (f *fakeCatalog) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeCatalog) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeCatalog) FetchAllTracks(ctx context.Context) ([]upstream.Track, error) {
	f.record("fetchAllTracks")
	if f.err != nil {
		return nil, f.err
	}
	return []upstream.Track{f.tracks["c_0"], f.tracks["c_1"]}, nil
}

func (f *fakeCatalog) FetchAuthor(ctx context.Context, authorID string) (*upstream.Author, error) {
	f.record("fetchAuthor:" + authorID)
	if f.err != nil {
		return nil, f.err
	}
	author, ok := f.authors[authorID]
	if !ok {
		return nil, &upstream.HTTPError{Method: "GET", Path: "author/" + authorID, StatusCode: 404, Body: "Not found"}
	}
	return &author, nil
}

func (f *fakeCatalog) FetchTrack(ctx context.Context, trackID string) (*upstream.Track, error) {
	f.record("fetchTrack:" + trackID)
	if f.err != nil {
		return nil, f.err
	}
	track, ok := f.tracks[trackID]
	if !ok {
		return nil, &upstream.HTTPError{Method: "GET", Path: "track/" + trackID, StatusCode: 404, Body: "Not found"}
	}
	return &track, nil
}

func (f *fakeCatalog) FetchTrackModules(ctx context.Context, trackID string) ([]upstream.Module, error) {
	f.record("fetchTrackModules:" + trackID)
	if f.err != nil {
		return nil, f.err
	}
	return f.modules[trackID], nil
}

func (f *fakeCatalog) FetchModule(ctx context.Context, moduleID string) (*upstream.Module, error) {
	f.record("fetchModule:" + moduleID)
	if f.err != nil {
		return nil, f.err
	}
	for _, modules := range f.modules {
		for _, m := range modules {
			if m.ID == moduleID {
				m := m
				return &m, nil
			}
		}
	}
	return nil, &upstream.HTTPError{Method: "GET", Path: "module/" + moduleID, StatusCode: 404, Body: "Not found"}
}

func (f *fakeCatalog) IncrementTrackViews(ctx context.Context, trackID string) (*upstream.Track, error) {
	f.record("incrementTrackViews:" + trackID)
	if f.err != nil {
		return nil, f.err
	}
	if f.incrementErr != nil {
		return nil, f.incrementErr
	}
	track, ok := f.tracks[trackID]
	if !ok {
		return nil, &upstream.HTTPError{Method: "PATCH", Path: "track/" + trackID + "/numberOfViews", StatusCode: 404, Body: "Not found"}
	}
	views := 1
	if track.NumberOfViews != nil {
		views = *track.NumberOfViews + 1
	}
	track.NumberOfViews = &views
	return &track, nil
}
