// Package wiki fetches market snapshots from the prices.runescape.wiki API
// (community-run, fed by RuneLite). The API asks every consumer for a
// descriptive User-Agent.
package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"FlipPulse/internal/domain/models"
	drepo "FlipPulse/internal/domain/repository"
	"FlipPulse/pkg/cache"
	xhttp "FlipPulse/pkg/http"
	"FlipPulse/pkg/util"
)

// TTL controls how long each fetched table stays cached. The mapping is
// near-static; price tables go stale within the API's own window sizes.
type TTL struct {
	Mapping time.Duration
	Prices  time.Duration
	Volumes time.Duration
}

// Client implements a MarketSource backed by the wiki price API.
type Client struct {
	baseURL   string
	userAgent string
	http      *xhttp.Client
	cache     cache.Service // nil disables caching
	ttl       TTL
	metrics   drepo.Metrics
}

// New creates a wiki API client. cache may be nil; metrics may be nil.
func New(baseURL, userAgent string, timeout time.Duration, c cache.Service, ttl TTL, m drepo.Metrics) *Client {
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		http:      xhttp.NewClient(xhttp.WithTimeout(timeout)),
		cache:     c,
		ttl:       ttl,
		metrics:   m,
	}
}

var _ drepo.MarketSource = (*Client)(nil)

// Fetch retrieves one complete market snapshot. The mapping and latest
// tables are mandatory; 5m, 24h and volumes degrade to empty maps so the
// window cascade can fall through.
func (c *Client) Fetch(ctx context.Context) (*models.MarketData, error) {
	items, err := c.mapping(ctx)
	if err != nil {
		c.fetchError("mapping")
		return nil, fmt.Errorf("fetch mapping: %w", err)
	}

	latest, err := c.latest(ctx)
	if err != nil {
		c.fetchError("latest")
		return nil, fmt.Errorf("fetch latest: %w", err)
	}

	fiveMin, err := c.window(ctx, "5m", c.ttl.Prices)
	if err != nil {
		c.fetchError("5m")
		log.Printf("wiki: 5m table unavailable: %v", err)
		fiveMin = map[int]models.WindowStats{}
	}

	daily, err := c.window(ctx, "24h", c.ttl.Prices)
	if err != nil {
		c.fetchError("24h")
		log.Printf("wiki: 24h table unavailable: %v", err)
		daily = map[int]models.WindowStats{}
	}

	volumes, err := c.volumes(ctx)
	if err != nil {
		c.fetchError("volumes")
		log.Printf("wiki: volumes table unavailable: %v", err)
		volumes = map[int]int64{}
	}

	return &models.MarketData{
		Items:     items,
		Latest:    latest,
		FiveMin:   fiveMin,
		Daily:     daily,
		Volumes:   volumes,
		FetchedAt: time.Now(),
	}, nil
}

func (c *Client) fetchError(source string) {
	if c.metrics != nil {
		c.metrics.RecordFetchError(source)
	}
}

// rawItem tolerates the mapping's loose typing; numeric fields arrive as
// float64, string, or not at all.
type rawItem struct {
	ID       interface{} `json:"id"`
	Name     string      `json:"name"`
	Members  bool        `json:"members"`
	Limit    interface{} `json:"limit"`
	HighAlch interface{} `json:"highalch"`
	Value    interface{} `json:"value"`
	Examine  string      `json:"examine"`
	Icon     string      `json:"icon"`
}

func (c *Client) mapping(ctx context.Context) ([]models.Item, error) {
	var raw []rawItem
	if err := c.getJSON(ctx, "mapping", c.ttl.Mapping, &raw); err != nil {
		return nil, err
	}

	items := make([]models.Item, 0, len(raw))
	for _, r := range raw {
		id := util.ToInt64(r.ID, 0)
		if id <= 0 {
			continue
		}
		items = append(items, models.Item{
			ID:       int(id),
			Name:     r.Name,
			Members:  r.Members,
			Limit:    util.ToInt64(r.Limit, 0),
			HighAlch: util.ToInt64(r.HighAlch, 0),
			Value:    util.ToInt64(r.Value, 0),
			Examine:  r.Examine,
			Icon:     r.Icon,
		})
	}
	return items, nil
}

type rawQuote struct {
	High     interface{} `json:"high"`
	HighTime interface{} `json:"highTime"`
	Low      interface{} `json:"low"`
	LowTime  interface{} `json:"lowTime"`
}

func (c *Client) latest(ctx context.Context) (map[int]models.LatestQuote, error) {
	var resp struct {
		Data map[string]rawQuote `json:"data"`
	}
	if err := c.getJSON(ctx, "latest", c.ttl.Prices, &resp); err != nil {
		return nil, err
	}

	out := make(map[int]models.LatestQuote, len(resp.Data))
	for key, q := range resp.Data {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		out[id] = models.LatestQuote{
			High:     util.ToInt64(q.High, 0),
			Low:      util.ToInt64(q.Low, 0),
			HighTime: util.ToInt64(q.HighTime, 0),
			LowTime:  util.ToInt64(q.LowTime, 0),
		}
	}
	return out, nil
}

type rawWindow struct {
	AvgHighPrice    interface{} `json:"avgHighPrice"`
	AvgLowPrice     interface{} `json:"avgLowPrice"`
	HighPriceVolume interface{} `json:"highPriceVolume"`
	LowPriceVolume  interface{} `json:"lowPriceVolume"`
}

func (c *Client) window(ctx context.Context, path string, ttl time.Duration) (map[int]models.WindowStats, error) {
	var resp struct {
		Data map[string]rawWindow `json:"data"`
	}
	if err := c.getJSON(ctx, path, ttl, &resp); err != nil {
		return nil, err
	}

	out := make(map[int]models.WindowStats, len(resp.Data))
	for key, w := range resp.Data {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		out[id] = models.WindowStats{
			AvgHighPrice:    util.ToInt64(w.AvgHighPrice, 0),
			AvgLowPrice:     util.ToInt64(w.AvgLowPrice, 0),
			HighPriceVolume: util.ToInt64(w.HighPriceVolume, 0),
			LowPriceVolume:  util.ToInt64(w.LowPriceVolume, 0),
		}
	}
	return out, nil
}

func (c *Client) volumes(ctx context.Context) (map[int]int64, error) {
	var resp struct {
		Data map[string]interface{} `json:"data"`
	}
	if err := c.getJSON(ctx, "volumes", c.ttl.Volumes, &resp); err != nil {
		return nil, err
	}

	out := make(map[int]int64, len(resp.Data))
	for key, v := range resp.Data {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		out[id] = util.ToInt64(v, 0)
	}
	return out, nil
}

// getJSON fetches an endpoint through the cache. Cached entries hold the raw
// response body so every caller re-decodes into its own shape.
func (c *Client) getJSON(ctx context.Context, path string, ttl time.Duration, dest interface{}) error {
	key := cache.GenerateKey("wiki", path)

	if c.cache != nil {
		var body string
		if err := c.cache.Get(ctx, key, &body); err == nil && body != "" {
			if err := json.Unmarshal([]byte(body), dest); err == nil {
				return nil
			}
			// Corrupt cache entry: drop it and refetch.
			_ = c.cache.Delete(ctx, key)
		}
	}

	var body []byte
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/%s", c.baseURL, path),
		Headers: map[string]string{
			"User-Agent": c.userAgent,
		},
	}, &body)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, string(body), ttl); err != nil {
			log.Printf("wiki: cache set %s: %v", key, err)
		}
	}
	return nil
}
