// Package catalog fetches movie metadata from the external read-only catalog
// (an IMDb-style HTTP API) and normalizes it into the domain's movie shape.
// Field naming and typing quirks of the remote API (runtimeMins as a string)
// are converted here, at the boundary, and nowhere else.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/model"
	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/pagination"
)

// MaxLimit is the hard ceiling on catalog list sizes; the popular list never
// exceeds 250 entries.
const MaxLimit = 250

// Config holds the external catalog settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Gateway is the read-only client for the external movie catalog. Every call
// runs under a bounded timeout and a circuit breaker; timeouts and transport
// failures surface as the retryable Unavailable kind, never silently retried.
type Gateway struct {
	cfg     Config
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	log     *zap.Logger
}

// New creates a catalog gateway.
func New(cfg Config, log *zap.Logger) *Gateway {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "movie-catalog",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("catalog breaker state change",
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &Gateway{
		cfg:     cfg,
		client:  &http.Client{},
		breaker: breaker,
		log:     log,
	}
}

// listResponse is the remote shape of Top250Movies.
type listResponse struct {
	Items []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"items"`
	ErrorMessage string `json:"errorMessage"`
}

// titleResponse is the remote shape of Title/{id}.
type titleResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Plot         string `json:"plot"`
	Year         string `json:"year"`
	Image        string `json:"image"`
	RuntimeMins  string `json:"runtimeMins"`
	ErrorMessage string `json:"errorMessage"`
}

// FetchPopular returns one page of the most popular movies.
func (g *Gateway) FetchPopular(ctx context.Context, limit, page string) (model.Paginated[model.MovieSummary], error) {
	if err := validateLimit(limit); err != nil {
		return model.Paginated[model.MovieSummary]{}, err
	}

	movies, err := g.popular(ctx)
	if err != nil {
		return model.Paginated[model.MovieSummary]{}, err
	}

	return pagination.Paginate(movies, limit, page)
}

// FetchByName returns one page of popular movies whose title contains the
// query as a case-sensitive substring.
func (g *Gateway) FetchByName(ctx context.Context, query, limit, page string) (model.Paginated[model.MovieSummary], error) {
	if err := validateLimit(limit); err != nil {
		return model.Paginated[model.MovieSummary]{}, err
	}

	movies, err := g.popular(ctx)
	if err != nil {
		return model.Paginated[model.MovieSummary]{}, err
	}

	matched := make([]model.MovieSummary, 0)
	for _, m := range movies {
		if strings.Contains(m.Title, query) {
			matched = append(matched, m)
		}
	}

	return pagination.Paginate(matched, limit, page)
}

// FetchDetails returns the full catalog record of one movie. A response with
// no title means the catalog has no such entry.
func (g *Gateway) FetchDetails(ctx context.Context, movieID string) (*model.MovieDetails, error) {
	body, err := g.get(ctx, fmt.Sprintf("Title/%s/%s", g.cfg.APIKey, url.PathEscape(movieID)))
	if err != nil {
		return nil, err
	}

	var resp titleResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, model.NewInternal("decoding catalog title response", err)
	}
	if resp.Title == "" {
		return nil, model.NewArgumentNotFound("movie")
	}

	return &model.MovieDetails{
		ID:              resp.ID,
		Title:           resp.Title,
		Description:     resp.Plot,
		Year:            resp.Year,
		ImageURL:        resp.Image,
		DurationMinutes: parseRuntime(resp.RuntimeMins),
	}, nil
}

func (g *Gateway) popular(ctx context.Context) ([]model.MovieSummary, error) {
	body, err := g.get(ctx, fmt.Sprintf("Top250Movies/%s", g.cfg.APIKey))
	if err != nil {
		return nil, err
	}

	var resp listResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, model.NewInternal("decoding catalog list response", err)
	}
	if resp.ErrorMessage != "" {
		return nil, model.NewInternal("catalog error: "+resp.ErrorMessage, nil)
	}

	movies := make([]model.MovieSummary, 0, len(resp.Items))
	for _, item := range resp.Items {
		movies = append(movies, model.MovieSummary{ID: item.ID, Title: item.Title})
	}
	return movies, nil
}

func (g *Gateway) get(ctx context.Context, path string) ([]byte, error) {
	body, err := g.breaker.Execute(func() ([]byte, error) {
		reqCtx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
		defer cancel()

		u := strings.TrimSuffix(g.cfg.BaseURL, "/") + "/" + path
		req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}

		res, err := g.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer func() { _ = res.Body.Close() }()

		if res.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("catalog returned status %d", res.StatusCode)
		}
		return io.ReadAll(res.Body)
	})
	if err != nil {
		return nil, g.classify(err)
	}
	return body, nil
}

// classify maps transport-level failures to the error taxonomy. Timeouts and
// an open breaker are retryable; everything else is infrastructure.
func (g *Gateway) classify(err error) error {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return model.NewUnavailable("movie catalog unavailable", err)
	case errors.Is(err, context.DeadlineExceeded):
		return model.NewUnavailable("movie catalog timed out", err)
	}

	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return model.NewUnavailable("movie catalog timed out", err)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return model.NewUnavailable("movie catalog unreachable", err)
	}

	return model.NewInternal("movie catalog request failed", err)
}

// validateLimit enforces the catalog's limit ceiling on top of the generic
// pagination rules.
func validateLimit(limit string) error {
	if limit == "" {
		return nil
	}
	n, err := strconv.Atoi(limit)
	if err != nil || n > MaxLimit {
		return model.NewInvalidArgument("limit")
	}
	return nil
}

// parseRuntime converts the catalog's string runtime into minutes. Absent or
// malformed runtimes count as zero.
func parseRuntime(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
