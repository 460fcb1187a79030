package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "moviereview/internal/errors"
)

func TestSearchMovies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/movie", r.URL.Path)
		assert.Equal(t, "key-123", r.URL.Query().Get("api_key"))
		assert.Equal(t, "君の名は", r.URL.Query().Get("query"))
		assert.Equal(t, "ja-JP", r.URL.Query().Get("language"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":1,"results":[
			{"id":372058,"title":"君の名は。","release_date":"2016-08-26","poster_path":"/q719jXXEzOoYaps6babgKnONONX.jpg","vote_average":8.5},
			{"id":1,"title":"Other","poster_path":null}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "key-123", "ja-JP", srv.Client())
	results, err := c.SearchMovies(context.Background(), "君の名は")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.EqualValues(t, 372058, results[0].ID)
	assert.Equal(t, "君の名は。", results[0].Title)
	assert.Equal(t, "2016-08-26", results[0].ReleaseDate)
	require.NotNil(t, results[0].PosterPath)
	assert.InDelta(t, 8.5, results[0].VoteAverage, 0.001)
	assert.Nil(t, results[1].PosterPath)
}

func TestSearchMovies_EmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"page":1}`))
	}))
	defer srv.Close()

	results, err := NewClient(srv.URL, "k", "", srv.Client()).SearchMovies(context.Background(), "zzz")
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSearchMovies_UpstreamFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "unauthorized",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"status_message":"Invalid API key"}`))
			},
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"results":`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := NewClient(srv.URL, "k", "ja-JP", srv.Client()).SearchMovies(context.Background(), "alien")
			assert.ErrorIs(t, err, apperrors.ErrUpstream)
		})
	}
}

func TestSearchMovies_TransportErrorRedactsKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	_, err := NewClient(base, "super-secret-key", "ja-JP", nil).SearchMovies(context.Background(), "alien")
	require.ErrorIs(t, err, apperrors.ErrUpstream)
	assert.NotContains(t, err.Error(), "super-secret-key")
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("", "k", "ja-JP", nil)
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Equal(t, "ja-JP", c.Language())
	assert.Same(t, http.DefaultClient, c.http)
	assert.Zero(t, c.http.Timeout)
}
