package graph

import (
	"context"
	"errors"
	"math"
	"testing"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nucleus/catalog-api/internal/datasource"
	"github.com/nucleus/catalog-api/internal/upstream"
)

func withFake(f *fakeCatalog) context.Context {
	return datasource.WithCatalog(context.Background(), f)
}

func TestTrackRoundTripsID(t *testing.T) {
	fake := newFakeCatalog()
	r := NewResolver(nil)

	for _, id := range []string{"c_0", "c_1"} {
		track, err := r.Track(withFake(fake), struct{ ID graphql.ID }{ID: graphql.ID(id)})
		require.NoError(t, err)
		assert.Equal(t, graphql.ID(id), track.ID())
	}
	assert.Equal(t, []string{"fetchTrack:c_0", "fetchTrack:c_1"}, fake.Calls())
}

func TestDurationInSecondsIsLength(t *testing.T) {
	for _, length := range []*int{nil, intPtr(0), intPtr(120), intPtr(1210), intPtr(math.MaxInt32)} {
		track := &TrackResolver{track: upstream.Track{ID: "c_0", Length: length}}
		module := &ModuleResolver{module: upstream.Module{ID: "l_0", Length: length}}

		trackDuration, err := track.DurationInSeconds()
		require.NoError(t, err)
		trackLength, err := track.Length()
		require.NoError(t, err)
		moduleDuration, err := module.DurationInSeconds()
		require.NoError(t, err)

		if length == nil {
			assert.Nil(t, trackDuration)
			assert.Nil(t, moduleDuration)
			continue
		}
		require.NotNil(t, trackDuration)
		assert.EqualValues(t, *length, *trackDuration)
		assert.Equal(t, trackLength, trackDuration)
		require.NotNil(t, moduleDuration)
		assert.EqualValues(t, *length, *moduleDuration)
	}
}

func TestIntFieldsRejectValuesOutside32Bits(t *testing.T) {
	for _, n := range []int{math.MaxInt32 + 1, math.MinInt32 - 1, 3000000000} {
		track := &TrackResolver{track: upstream.Track{ID: "big", Length: intPtr(n), ModulesCount: intPtr(n), NumberOfViews: intPtr(n)}}
		module := &ModuleResolver{module: upstream.Module{ID: "big", Length: intPtr(n)}}

		for name, field := range map[string]func() (*int32, error){
			"Track.length":             track.Length,
			"Track.durationInSeconds":  track.DurationInSeconds,
			"Track.modulesCount":       track.ModulesCount,
			"Track.numberOfViews":      track.NumberOfViews,
			"Module.length":            module.Length,
			"Module.durationInSeconds": module.DurationInSeconds,
		} {
			v, err := field()
			require.Error(t, err, "%s(%d)", name, n)
			assert.Nil(t, v, "%s(%d)", name, n)
		}
	}
}

func TestTrackAuthorResolvesFromParent(t *testing.T) {
	fake := newFakeCatalog()
	fake.authors["author-1"] = upstream.Author{ID: "author-1", Name: "Ada", Photo: "https://img/ada.jpg"}

	parent := &TrackResolver{track: upstream.Track{ID: "t-1", AuthorID: "author-1"}}
	author, err := parent.Author(withFake(fake))
	require.NoError(t, err)

	assert.Equal(t, []string{"fetchAuthor:author-1"}, fake.Calls())
	assert.Equal(t, upstream.Author{ID: "author-1", Name: "Ada", Photo: "https://img/ada.jpg"}, author.author)
	assert.Equal(t, "Ada", author.Name())
	require.NotNil(t, author.Photo())
}

func TestTrackModules(t *testing.T) {
	fake := newFakeCatalog()
	parent := &TrackResolver{track: upstream.Track{ID: "c_0"}}

	modules, err := parent.Modules(withFake(fake))
	require.NoError(t, err)
	require.Len(t, modules, 2)
	assert.Equal(t, "Cat-ship", modules[1].Title())
	require.NotNil(t, modules[1].VideoURL())
	assert.Equal(t, "https://cdn/l_1.mp4", *modules[1].VideoURL())
	assert.Nil(t, modules[0].Content())
	assert.Equal(t, []string{"fetchTrackModules:c_0"}, fake.Calls())
}

func TestModule(t *testing.T) {
	fake := newFakeCatalog()
	r := NewResolver(nil)

	module, err := r.Module(withFake(fake), struct{ ID graphql.ID }{ID: "l_1"})
	require.NoError(t, err)
	assert.Equal(t, graphql.ID("l_1"), module.ID())
	require.NotNil(t, module.Content())
	assert.Equal(t, "# Intro", *module.Content())
}

func TestIncrementTrackViewsSuccess(t *testing.T) {
	fake := newFakeCatalog()
	fake.tracks["1"] = upstream.Track{ID: "1", Title: "Cat-stronaut", AuthorID: "cat-1", Length: intPtr(120)}
	r := NewResolver(nil)

	resp, err := r.IncrementTrackViews(withFake(fake), struct{ ID graphql.ID }{ID: "1"})
	require.NoError(t, err)

	assert.EqualValues(t, 200, resp.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "Successfully incremented number of views for track 1", resp.Message)
	require.NotNil(t, resp.Track)
	assert.Equal(t, graphql.ID("1"), resp.Track.ID())
	duration, err := resp.Track.DurationInSeconds()
	require.NoError(t, err)
	require.NotNil(t, duration)
	assert.EqualValues(t, 120, *duration)
	assert.Equal(t, []string{"incrementTrackViews:1"}, fake.Calls())
}

func TestIncrementTrackViewsUpstreamHTTPError(t *testing.T) {
	fake := newFakeCatalog()
	r := NewResolver(nil)

	resp, err := r.IncrementTrackViews(withFake(fake), struct{ ID graphql.ID }{ID: "999"})
	require.NoError(t, err)

	assert.Equal(t, &IncrementTrackViewsResponse{
		Code:    404,
		Success: false,
		Message: "Not found",
		Track:   nil,
	}, resp)
}

func TestIncrementTrackViewsWrappedHTTPError(t *testing.T) {
	fake := newFakeCatalog()
	fake.incrementErr = errors.Join(errors.New("increment views of track c_0"),
		&upstream.HTTPError{Method: "PATCH", Path: "track/c_0/numberOfViews", StatusCode: 500, Body: "boom"})
	r := NewResolver(nil)

	resp, err := r.IncrementTrackViews(withFake(fake), struct{ ID graphql.ID }{ID: "c_0"})
	require.NoError(t, err)
	assert.EqualValues(t, 500, resp.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "boom", resp.Message)
	assert.Nil(t, resp.Track)
}

func TestIncrementTrackViewsTransportErrorPropagates(t *testing.T) {
	fake := newFakeCatalog()
	fake.incrementErr = &upstream.TransportError{Method: "PATCH", Path: "track/c_0/numberOfViews", Err: errors.New("connection refused")}
	r := NewResolver(nil)

	resp, err := r.IncrementTrackViews(withFake(fake), struct{ ID graphql.ID }{ID: "c_0"})
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, upstream.IsTransportError(err))
}

func TestTracksForHomeTransportErrorPropagates(t *testing.T) {
	fake := newFakeCatalog()
	fake.err = &upstream.TransportError{Method: "GET", Path: "tracks", Err: errors.New("connection refused")}
	r := NewResolver(nil)

	tracks, err := r.TracksForHome(withFake(fake))
	require.Error(t, err)
	assert.Nil(t, tracks)
	assert.True(t, upstream.IsTransportError(err))
}

func TestResolversRequireCatalog(t *testing.T) {
	r := NewResolver(nil)
	ctx := context.Background()

	_, err := r.TracksForHome(ctx)
	require.ErrorIs(t, err, datasource.ErrNoCatalog)

	_, err = r.IncrementTrackViews(ctx, struct{ ID graphql.ID }{ID: "1"})
	require.ErrorIs(t, err, datasource.ErrNoCatalog)

	_, err = (&TrackResolver{}).Author(ctx)
	require.ErrorIs(t, err, datasource.ErrNoCatalog)
}
