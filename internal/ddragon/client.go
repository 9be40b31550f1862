// Package ddragon fetches champion, item and rune data from Riot's Data
// Dragon CDN and normalizes it into a domain.Catalog.
package ddragon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"slices"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/dom/league-roulette/internal/domain"
)

const (
	DefaultBaseURL = "https://ddragon.leagueoflegends.com"
	DefaultLocale  = "en_US"

	// DefaultVersionsTTL bounds how long a cached versions list is trusted.
	// Versioned CDN documents never change and are cached without expiry.
	DefaultVersionsTTL = 10 * time.Minute
)

// Cache stores raw response bodies keyed by request path.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, body []byte, ttl time.Duration) error
}

// StatusError is returned for any non-200 response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

type Options struct {
	BaseURL     string
	Locale      string
	Version     string // pins the patch; empty means latest
	HTTPClient  *http.Client
	Cache       Cache
	VersionsTTL time.Duration
}

type Client struct {
	baseURL     string
	locale      string
	version     string
	httpClient  *http.Client
	cache       Cache
	versionsTTL time.Duration
}

func NewClient(opts Options) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		locale:      opts.Locale,
		version:     opts.Version,
		httpClient:  opts.HTTPClient,
		cache:       opts.Cache,
		versionsTTL: opts.VersionsTTL,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.locale == "" {
		c.locale = DefaultLocale
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if c.versionsTTL <= 0 {
		c.versionsTTL = DefaultVersionsTTL
	}
	return c
}

// LatestVersion returns the pinned version, or the first entry of
// versions.json.
func (c *Client) LatestVersion(ctx context.Context) (string, error) {
	if c.version != "" {
		return c.version, nil
	}

	var versions versionsResponse
	if err := c.getJSON(ctx, "/api/versions.json", c.versionsTTL, &versions); err != nil {
		return "", fmt.Errorf("failed to get versions: %w", err)
	}
	if len(versions) == 0 {
		return "", fmt.Errorf("no versions available")
	}
	return versions[0], nil
}

// Fetch resolves the version and loads champions, items and keystones.
func (c *Client) Fetch(ctx context.Context) (*domain.Catalog, error) {
	version, err := c.LatestVersion(ctx)
	if err != nil {
		return nil, err
	}

	champions, err := c.Champions(ctx, version)
	if err != nil {
		return nil, err
	}
	items, err := c.Items(ctx, version)
	if err != nil {
		return nil, err
	}
	keystones, err := c.Keystones(ctx, version)
	if err != nil {
		return nil, err
	}

	return &domain.Catalog{
		Version:   version,
		Locale:    c.locale,
		FetchedAt: time.Now().UTC(),
		Champions: champions,
		Items:     items,
		Keystones: keystones,
	}, nil
}

// Champions returns every champion for a version, sorted by ID.
func (c *Client) Champions(ctx context.Context, version string) ([]domain.Champion, error) {
	var resp championsResponse
	if err := c.getJSON(ctx, c.dataPath(version, "champion.json"), 0, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch champions: %w", err)
	}

	champions := make([]domain.Champion, 0, len(resp.Data))
	for _, ch := range resp.Data {
		champions = append(champions, domain.Champion{
			Version: version,
			ID:      ch.ID,
			Key:     ch.Key,
			Name:    ch.Name,
			Title:   ch.Title,
			Tags:    ch.Tags,
			Image:   c.image(version, "champion", ch.Image),
		})
	}
	slices.SortFunc(champions, func(a, b domain.Champion) int { return strings.Compare(a.ID, b.ID) })
	return champions, nil
}

// Items returns every item for a version, sorted by ID. The ID comes from
// the map key since the payload omits it.
func (c *Client) Items(ctx context.Context, version string) ([]domain.Item, error) {
	var resp itemsResponse
	if err := c.getJSON(ctx, c.dataPath(version, "item.json"), 0, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch items: %w", err)
	}

	items := make([]domain.Item, 0, len(resp.Data))
	for id, it := range resp.Data {
		item := domain.Item{
			Version:   version,
			ID:        id,
			Name:      it.Name,
			Plaintext: it.Plaintext,
			Tags:      it.Tags,
			Maps:      datatypes.NewJSONType(it.Maps),
			Gold: domain.Gold{
				Base:        it.Gold.Base,
				Total:       it.Gold.Total,
				Sell:        it.Gold.Sell,
				Purchasable: it.Gold.Purchasable,
			},
			Image:            c.image(version, "item", it.Image),
			InStore:          it.InStore,
			Consumed:         it.Consumed,
			Into:             it.Into,
			From:             it.From,
			RequiredChampion: it.RequiredChampion,
			RequiredAlly:     it.RequiredAlly,
		}
		items = append(items, item)
	}
	slices.SortFunc(items, func(a, b domain.Item) int { return strings.Compare(a.ID, b.ID) })
	return items, nil
}

// Keystones returns the first-slot runes of every tree, in tree order.
func (c *Client) Keystones(ctx context.Context, version string) ([]domain.Keystone, error) {
	var trees []runeTreeResponse
	if err := c.getJSON(ctx, c.dataPath(version, "runesReforged.json"), 0, &trees); err != nil {
		return nil, fmt.Errorf("failed to fetch runes: %w", err)
	}

	var keystones []domain.Keystone
	for _, tree := range trees {
		if len(tree.Slots) == 0 {
			continue
		}
		for _, r := range tree.Slots[0].Runes {
			keystones = append(keystones, domain.Keystone{
				Version: version,
				ID:      r.ID,
				Key:     r.Key,
				Name:    r.Name,
				Icon:    fmt.Sprintf("%s/cdn/img/%s", c.baseURL, r.Icon),
				Tree:    tree.Name,
			})
		}
	}
	return keystones, nil
}

func (c *Client) dataPath(version, file string) string {
	return fmt.Sprintf("/cdn/%s/data/%s/%s", version, c.locale, file)
}

func (c *Client) image(version, group string, img imageResponse) domain.Image {
	if img.Group != "" {
		group = img.Group
	}
	out := domain.Image{Full: img.Full, Sprite: img.Sprite, Group: group}
	if img.Full != "" {
		out.URL = fmt.Sprintf("%s/cdn/%s/img/%s/%s", c.baseURL, version, group, img.Full)
	}
	return out
}

// getJSON decodes path into out, consulting the cache first when one is
// configured. Cache failures are logged and never fail the request.
func (c *Client) getJSON(ctx context.Context, path string, ttl time.Duration, out any) error {
	if c.cache != nil {
		body, ok, err := c.cache.Get(ctx, path)
		if err != nil {
			log.Printf("WARN [ddragon.cache]: get %s: %v", path, err)
		} else if ok {
			return json.Unmarshal(body, out)
		}
	}

	body, err := c.get(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, path, body, ttl); err != nil {
			log.Printf("WARN [ddragon.cache]: set %s: %v", path, err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}
