package comicvine

import (
	"comicSnap/domain"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	maxPageSize     = 100
	maxResponseSize = 8 << 20
	searchFields    = "id,name,deck,start_year,publisher,image"
)

type ComicVineConfig struct {
	APIKey    string
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

type ComicVineRepository struct {
	cfg    ComicVineConfig
	client *http.Client
}

func NewComicVineRepository(cfg ComicVineConfig) *ComicVineRepository {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "ComicSnap/1.0"
	}
	return &ComicVineRepository{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// ComicVine search response, format=xml. Text nodes usually come as CDATA.
type searchResponse struct {
	XMLName    xml.Name `xml:"response"`
	Error      string   `xml:"error"`
	StatusCode int      `xml:"status_code"`
	Results    struct {
		Volumes []volume `xml:"volume"`
	} `xml:"results"`
}

type volume struct {
	ID        string `xml:"id"`
	Name      string `xml:"name"`
	Deck      string `xml:"deck"`
	StartYear string `xml:"start_year"`
	Publisher struct {
		Name string `xml:"name"`
	} `xml:"publisher"`
	Image struct {
		SmallURL string `xml:"small_url"`
	} `xml:"image"`
}

// Search queries ComicVine volumes. Missing year, description and cover are
// replaced by placeholders; an unknown publisher stays empty.
func (r *ComicVineRepository) Search(ctx context.Context, query string, limit int) ([]domain.CandidateItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit <= 0 || limit > maxPageSize {
		limit = maxPageSize
	}

	endpoint, err := r.searchURL(query, limit)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build comicvine request: %w", err)
	}
	req.Header.Set("User-Agent", r.cfg.UserAgent)
	req.Header.Set("Accept", "application/xml")

	res, err := r.client.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 64<<10))
		return nil, fmt.Errorf("comicvine returned status %d: %w", res.StatusCode, domain.ErrCatalogUnavailable)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseSize))
	if err != nil {
		return nil, transportError(err)
	}

	var resp searchResponse
	if err := xml.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode comicvine response: %w: %w", domain.ErrCatalogMalformed, err)
	}

	// 1 is OK; 0 means the element was absent
	if resp.StatusCode != 0 && resp.StatusCode != 1 {
		return nil, fmt.Errorf("comicvine error %d (%s): %w", resp.StatusCode, resp.Error, domain.ErrCatalogUnavailable)
	}

	items := make([]domain.CandidateItem, 0, len(resp.Results.Volumes))
	for _, v := range resp.Results.Volumes {
		items = append(items, v.toCandidate())
	}

	return items, nil
}

func (r *ComicVineRepository) searchURL(query string, limit int) (string, error) {
	u, err := url.Parse(strings.TrimRight(r.cfg.BaseURL, "/") + "/search/")
	if err != nil {
		return "", fmt.Errorf("invalid comicvine base url: %w", err)
	}

	params := url.Values{}
	params.Set("api_key", r.cfg.APIKey)
	params.Set("query", query)
	params.Set("resources", "volume")
	params.Set("format", "xml")
	params.Set("field_list", searchFields)
	params.Set("limit", strconv.Itoa(limit))
	u.RawQuery = params.Encode()

	return u.String(), nil
}

func (v volume) toCandidate() domain.CandidateItem {
	return domain.CandidateItem{
		ID:          strings.TrimSpace(v.ID),
		Title:       strings.TrimSpace(v.Name),
		Publisher:   strings.TrimSpace(v.Publisher.Name),
		Year:        orDefault(v.StartYear, domain.UnknownYear),
		CoverURL:    orDefault(v.Image.SmallURL, domain.DefaultCoverURL),
		Description: orDefault(v.Deck, domain.UnknownDescription),
	}
}

// transportError classifies a client failure. The request URL carries the
// API key, so the *url.Error wrapper is dropped.
func transportError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		err = ue.Err
	}

	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return fmt.Errorf("comicvine request timed out: %w: %w", domain.ErrCatalogTimeout, err)
	}
	return fmt.Errorf("comicvine request failed: %w: %w", domain.ErrCatalogUnavailable, err)
}

func orDefault(v, def string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return def
	}
	return v
}
