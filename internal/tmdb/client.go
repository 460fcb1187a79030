package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	apperrors "moviereview/internal/errors"
	"moviereview/internal/model"
)

// DefaultBaseURL is the public TMDb v3 API root.
const DefaultBaseURL = "https://api.themoviedb.org/3"

// Client queries the TMDb search API.
type Client struct {
	baseURL  string
	apiKey   string
	language string
	http     *http.Client
}

// NewClient creates a TMDb client. An empty baseURL selects DefaultBaseURL and
// a nil httpClient selects http.DefaultClient; requests are bounded only by
// the caller's context.
func NewClient(baseURL, apiKey, language string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		language: language,
		http:     httpClient,
	}
}

// Language returns the language results are localized to.
func (c *Client) Language() string {
	return c.language
}

type searchResponse struct {
	Page    int                       `json:"page"`
	Results []model.MovieSearchResult `json:"results"`
}

// SearchMovies returns the first page of results for query.
// Every failure wraps errors.ErrUpstream.
func (c *Client) SearchMovies(ctx context.Context, query string) ([]model.MovieSearchResult, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", query)
	if c.language != "" {
		params.Set("language", c.language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search/movie?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", apperrors.ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstream, redact(err, c.apiKey))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: API returned status code: %d", apperrors.ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", apperrors.ErrUpstream, err)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: parse JSON: %v", apperrors.ErrUpstream, err)
	}
	if parsed.Results == nil {
		parsed.Results = []model.MovieSearchResult{}
	}
	return parsed.Results, nil
}

// redact keeps the API key out of logged transport errors, which embed the request URL.
func redact(err error, apiKey string) string {
	if apiKey == "" {
		return err.Error()
	}
	return strings.ReplaceAll(err.Error(), apiKey, "REDACTED")
}
