package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	imageBaseW500 = "https://image.tmdb.org/t/p/w500"

	defaultPersonAppend = "external_ids,images,combined_credits"
	defaultMovieAppend  = "credits,images"
)

var (
	// ErrNotConfigured is returned by every call when no API key is set.
	ErrNotConfigured = errors.New("TMDB API key not configured")
	// ErrUnavailable wraps transport failures talking to TMDB.
	ErrUnavailable = errors.New("error contacting TMDB")
)

// StatusError carries a non-2xx TMDB response so it can be relayed as is.
type StatusError struct {
	Status int
	Body   []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("TMDB API returned status %d", e.Status)
}

// Client proxies a few TMDB v3 endpoints using a v4 read access token.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a new TMDB API client.
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Poster is one entry of a poster search.
type Poster struct {
	Title     string `json:"title"`
	PosterURL string `json:"posterUrl"`
}

type movieSearchResponse struct {
	Results []struct {
		Title      string `json:"title"`
		PosterPath string `json:"poster_path"`
	} `json:"results"`
}

// SearchPerson relays search/person.
func (c *Client) SearchPerson(ctx context.Context, query string) (json.RawMessage, error) {
	return c.getRaw(ctx, "/search/person?query="+url.QueryEscape(query))
}

// PersonDetails relays person/{id}. An empty appendTo requests external ids,
// images and combined credits.
func (c *Client) PersonDetails(ctx context.Context, id, appendTo string) (json.RawMessage, error) {
	if strings.TrimSpace(appendTo) == "" {
		appendTo = defaultPersonAppend
	}
	return c.getRaw(ctx, fmt.Sprintf("/person/%s?append_to_response=%s",
		url.PathEscape(id), url.QueryEscape(appendTo)))
}

// MovieDetails relays movie/{id}. An empty appendTo requests credits and
// images.
func (c *Client) MovieDetails(ctx context.Context, id, appendTo string) (json.RawMessage, error) {
	if strings.TrimSpace(appendTo) == "" {
		appendTo = defaultMovieAppend
	}
	return c.getRaw(ctx, fmt.Sprintf("/movie/%s?append_to_response=%s",
		url.PathEscape(id), url.QueryEscape(appendTo)))
}

// MoviePosters searches movies and keeps only results that have a poster.
func (c *Client) MoviePosters(ctx context.Context, query string) ([]Poster, error) {
	raw, err := c.getRaw(ctx, "/search/movie?query="+url.QueryEscape(query))
	if err != nil {
		return nil, err
	}

	var result movieSearchResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to decode movie search response: %w", err)
	}

	posters := make([]Poster, 0, len(result.Results))
	for _, m := range result.Results {
		if m.PosterPath == "" {
			continue
		}
		posters = append(posters, Poster{Title: m.Title, PosterURL: imageBaseW500 + m.PosterPath})
	}
	return posters, nil
}

func (c *Client) getRaw(ctx context.Context, path string) (json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	resp, err := c.doGet(ctx, c.baseURL+path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return body, nil
}

func (c *Client) doGet(ctx context.Context, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build TMDB request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	slog.Debug("calling TMDB", "path", req.URL.Path)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &StatusError{Status: resp.StatusCode, Body: body}
	}
	return resp, nil
}
