package catalog

import (
	"comicbot/internal/models"
	"comicbot/internal/providers"
	"comicbot/internal/structures"
	"context"
	"errors"
	"fmt"
	json "github.com/goccy/go-json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	SortStoreDateAsc  = "store_date:asc"
	SortStoreDateDesc = "store_date:desc"

	resourceVolumes = "volumes"
	resourceIssues  = "issues"

	volumeFields = "id,name,start_year,end_year,publisher"
	issueFields  = "name,issue_number,store_date,volume,site_detail_url,image"

	resultLimit     = 100
	maxPages        = 10
	maxResponseSize = 8 << 20
)

// HTTPClient is the part of *http.Client the catalog needs.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

type ClientInterface interface {
	SearchVolumes(ctx context.Context, name, sort string) ([]models.VolumeSearchResult, error)
	ListIssuesByVolumeName(ctx context.Context, name, sort string) ([]models.Issue, error)
	ListIssuesByStoreDate(ctx context.Context, day time.Time) ([]models.Issue, error)
}

// Client queries the ComicVine API. Every call is a single attempt; failures are
// returned wrapped in models.ErrCatalogUnavailable.
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	http       HTTPClient
	cache      providers.CacheProviderInterface
	compressor CompressorInterface
	metrics    providers.MetricsProviderInterface
	logger     providers.Logger
}

func NewClient(conf *structures.Config, cache providers.CacheProviderInterface, compressor CompressorInterface, metrics providers.MetricsProviderInterface, logger providers.Logger) ClientInterface {
	return &Client{
		baseURL:    strings.TrimRight(conf.Catalog.BaseURL, "/"),
		apiKey:     conf.Catalog.APIKey,
		userAgent:  conf.Catalog.UserAgent,
		http:       &http.Client{Timeout: conf.Catalog.Timeout},
		cache:      cache,
		compressor: compressor,
		metrics:    metrics,
		logger:     logger,
	}
}

func (c *Client) SearchVolumes(ctx context.Context, name, sort string) ([]models.VolumeSearchResult, error) {
	params := url.Values{}
	params.Set("filter", "name:"+name)
	params.Set("field_list", volumeFields)
	if sort != "" {
		params.Set("sort", sort)
	}

	dtos, err := fetch[volumeDTO](ctx, c, resourceVolumes, params)
	if err != nil {
		return nil, err
	}
	out := make([]models.VolumeSearchResult, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toModel())
	}
	return out, nil
}

func (c *Client) ListIssuesByVolumeName(ctx context.Context, name, sort string) ([]models.Issue, error) {
	params := url.Values{}
	params.Set("filter", "name:"+name)
	if sort != "" {
		params.Set("sort", sort)
	}
	return c.listIssues(ctx, params)
}

// ListIssuesByStoreDate pages through every issue of day, up to maxPages pages of resultLimit.
func (c *Client) ListIssuesByStoreDate(ctx context.Context, day time.Time) ([]models.Issue, error) {
	var out []models.Issue
	for page := 0; page < maxPages; page++ {
		params := url.Values{}
		params.Set("filter", "store_date:"+day.Format(models.StoreDateLayout))
		if page > 0 {
			params.Set("offset", strconv.Itoa(page*resultLimit))
		}
		issues, err := c.listIssues(ctx, params)
		if err != nil {
			return nil, err
		}
		out = append(out, issues...)
		if len(issues) < resultLimit {
			return out, nil
		}
	}
	c.logger.Warnf(providers.TypeCatalog, "Issues for %s truncated at %d", day.Format(models.StoreDateLayout), len(out))
	return out, nil
}

func (c *Client) listIssues(ctx context.Context, params url.Values) ([]models.Issue, error) {
	params.Set("field_list", issueFields)
	dtos, err := fetch[issueDTO](ctx, c, resourceIssues, params)
	if err != nil {
		return nil, err
	}
	out := make([]models.Issue, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toModel())
	}
	return out, nil
}

func fetch[T any](ctx context.Context, c *Client, resource string, params url.Values) ([]T, error) {
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(resultLimit))
	// The cache key is built before the API key is added so it never ends up in memory dumps or logs.
	cacheKey := resource + "?" + params.Encode()

	if body, ok := c.cached(cacheKey); ok {
		if results, err := decode[T](body); err == nil {
			c.logger.Debugf(providers.TypeCatalog, "Cache hit %s", cacheKey)
			return results, nil
		}
	}

	body, err := c.get(ctx, resource, params)
	if err != nil {
		c.logger.Warnf(providers.TypeCatalog, "Request %s failed: %s", cacheKey, err)
		return nil, err
	}

	results, err := decode[T](body)
	if err != nil {
		c.logger.Warnf(providers.TypeCatalog, "Decode %s failed: %s", cacheKey, err)
		return nil, fmt.Errorf("%w: %s: %v", models.ErrCatalogUnavailable, resource, err)
	}

	c.store(cacheKey, body)
	c.logger.Debugf(providers.TypeCatalog, "Fetched %d %s for %s", len(results), resource, params.Get("filter"))
	return results, nil
}

func (c *Client) get(ctx context.Context, resource string, params url.Values) ([]byte, error) {
	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("api_key", c.apiKey)
	endpoint := c.baseURL + "/" + resource + "/?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build %s request: %v", models.ErrCatalogUnavailable, resource, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveCatalogRequest(resource, 0, time.Since(start))
		// url.Error carries the full URL including the API key.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, fmt.Errorf("%w: %s: %v", models.ErrCatalogUnavailable, resource, err)
	}
	defer resp.Body.Close()
	c.metrics.ObserveCatalogRequest(resource, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: %s: unexpected status %d", models.ErrCatalogUnavailable, resource, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: read body: %v", models.ErrCatalogUnavailable, resource, err)
	}
	return body, nil
}

func decode[T any](body []byte) ([]T, error) {
	var env envelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	if env.StatusCode != 1 {
		return nil, fmt.Errorf("catalog status %d: %s", env.StatusCode, env.Error)
	}
	return env.Results, nil
}

func (c *Client) cached(key string) ([]byte, bool) {
	data, ok := c.cache.Get(key)
	if !ok {
		return nil, false
	}
	body, err := c.compressor.Decompress(data)
	if err != nil {
		return nil, false
	}
	return body, true
}

func (c *Client) store(key string, body []byte) {
	data, err := c.compressor.Compress(body)
	if err != nil {
		return
	}
	c.cache.Set(key, data)
}
