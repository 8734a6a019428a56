// Open Library [Lookup] implementation
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultOpenLibraryURL    string  = "https://openlibrary.org"
	defaultUserAgent         string  = "shelf/0.1.0 (+https://github.com/desertthunder/shelf)"
	defaultBookTimeout               = 10 * time.Second
	defaultAuthorTimeout             = 5 * time.Second
	defaultRequestsPerSecond float64 = 5
)

// OpenLibraryOpts configures [NewOpenLibraryService]. Zero values select defaults.
type OpenLibraryOpts struct {
	BaseURL       string
	HTTPClient    *http.Client
	UserAgent     string
	BookTimeout   time.Duration
	AuthorTimeout time.Duration
	RateLimit     float64 // requests per second
}

// OpenLibraryService implements [Lookup] against the Open Library JSON API.
type OpenLibraryService struct {
	baseURL       string
	userAgent     string
	httpClient    *http.Client
	bookTimeout   time.Duration
	authorTimeout time.Duration
	limiter       *rate.Limiter
}

// OpenLibraryEdition is the subset of an edition record the catalog reads.
type OpenLibraryEdition struct {
	Title   string `json:"title"`
	Authors []struct {
		Key string `json:"key"`
	} `json:"authors"`
	ISBN10 []string `json:"isbn_10"`
	ISBN13 []string `json:"isbn_13"`
}

// OpenLibraryAuthor is the subset of an author record the catalog reads.
type OpenLibraryAuthor struct {
	Name         string `json:"name"`
	PersonalName string `json:"personal_name"`
}

// NewOpenLibraryService creates a new Open Library lookup client.
func NewOpenLibraryService(opts OpenLibraryOpts) *OpenLibraryService {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultOpenLibraryURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.BookTimeout <= 0 {
		opts.BookTimeout = defaultBookTimeout
	}
	if opts.AuthorTimeout <= 0 {
		opts.AuthorTimeout = defaultAuthorTimeout
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultRequestsPerSecond
	}

	return &OpenLibraryService{
		baseURL:       strings.TrimRight(opts.BaseURL, "/"),
		userAgent:     opts.UserAgent,
		httpClient:    opts.HTTPClient,
		bookTimeout:   opts.BookTimeout,
		authorTimeout: opts.AuthorTimeout,
		limiter:       rate.NewLimiter(rate.Limit(opts.RateLimit), 1),
	}
}

// Name returns the service name.
func (o *OpenLibraryService) Name() string {
	return "Open Library"
}

// BookByISBN fetches the edition record for isbn.
//
// A record without a title is reported with [models.UnknownTitle]. Author references are returned unresolved.
func (o *OpenLibraryService) BookByISBN(ctx context.Context, isbn string) (*models.BookMetadata, error) {
	isbn = strings.TrimSpace(isbn)
	if isbn == "" {
		return nil, fmt.Errorf("%w: isbn cannot be empty", shared.ErrValidation)
	}

	var edition OpenLibraryEdition
	if err := o.doRequest(ctx, o.bookTimeout, "/isbn/"+url.PathEscape(isbn)+".json", &edition); err != nil {
		return nil, err
	}

	meta := &models.BookMetadata{
		Title:      strings.TrimSpace(edition.Title),
		AuthorKeys: make([]string, 0, len(edition.Authors)),
	}
	if meta.Title == "" {
		meta.Title = models.UnknownTitle
	}
	for _, a := range edition.Authors {
		if a.Key != "" {
			meta.AuthorKeys = append(meta.AuthorKeys, a.Key)
		}
	}
	switch {
	case len(edition.ISBN13) > 0:
		meta.ISBN = edition.ISBN13[0]
	case len(edition.ISBN10) > 0:
		meta.ISBN = edition.ISBN10[0]
	}

	return meta, nil
}

// AuthorByKey fetches an author record. Keys may be given as "/authors/OL23919A" or "OL23919A".
func (o *OpenLibraryService) AuthorByKey(ctx context.Context, key string) (string, error) {
	id := strings.TrimPrefix(strings.TrimSpace(key), "/authors/")
	if id == "" {
		return "", fmt.Errorf("%w: author key cannot be empty", shared.ErrValidation)
	}

	var author OpenLibraryAuthor
	if err := o.doRequest(ctx, o.authorTimeout, "/authors/"+url.PathEscape(id)+".json", &author); err != nil {
		return "", err
	}

	switch {
	case strings.TrimSpace(author.Name) != "":
		return strings.TrimSpace(author.Name), nil
	case strings.TrimSpace(author.PersonalName) != "":
		return strings.TrimSpace(author.PersonalName), nil
	default:
		return models.UnknownAuthor, nil
	}
}

// doRequest performs a bounded GET and decodes a 200 response into result.
func (o *OpenLibraryService) doRequest(ctx context.Context, timeout time.Duration, endpoint string, result any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := o.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limit wait: %v", shared.ErrLookupUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", shared.ErrLookupUnavailable, err)
	}
	req.Header.Set("User-Agent", o.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: request failed: %v", shared.ErrLookupUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", shared.ErrBookNotFound, endpoint)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: open library status %d for %s", shared.ErrLookupUnavailable, resp.StatusCode, endpoint)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", shared.ErrLookupUnavailable, err)
	}
	return nil
}

var _ Lookup = (*OpenLibraryService)(nil)
