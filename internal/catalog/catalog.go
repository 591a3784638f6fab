// internal/catalog/catalog.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/aramdraft/aramdraft/internal/models"
)

// DefaultBaseURL is Riot's static data CDN.
const DefaultBaseURL = "https://ddragon.leagueoflegends.com"

// fallbackVersion is used when the version listing cannot be fetched.
const fallbackVersion = "15.17.1"

const cacheTTL = 24 * time.Hour

// championEntry is the slice of a Data Dragon catalog record we keep.
type championEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image struct {
		Full string `json:"full"`
	} `json:"image"`
}

// Provider fetches the champion catalog once and caches it for the process
// lifetime. A Redis client, when configured, acts as a read-through cache
// keyed by data version so restarts skip the CDN fetch.
type Provider struct {
	baseURL string
	locale  string
	client  *http.Client
	rdb     *redis.Client
	log     *logrus.Logger

	mu        sync.RWMutex
	version   string
	champions []models.ChampionSummary
}

// NewProvider builds a provider. rdb may be nil to disable the Redis layer.
func NewProvider(baseURL, locale string, rdb *redis.Client, log *logrus.Logger) *Provider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if locale == "" {
		locale = "en_US"
	}
	return &Provider{
		baseURL: baseURL,
		locale:  locale,
		client:  &http.Client{Timeout: 15 * time.Second},
		rdb:     rdb,
		log:     log,
		version: fallbackVersion,
	}
}

// Load resolves the latest data version and populates the catalog. A fetch
// failure is logged and leaves the catalog empty; match generation then
// fails per-room until a restart of the process.
func (p *Provider) Load(ctx context.Context) error {
	version, err := p.fetchLatestVersion(ctx)
	if err != nil {
		p.log.WithError(err).Warnf("failed to resolve data version, using %s", fallbackVersion)
		version = fallbackVersion
	}

	champs, err := p.loadChampions(ctx, version)
	if err != nil {
		p.log.WithError(err).Error("failed to load champion catalog, continuing with empty catalog")
		return err
	}

	p.mu.Lock()
	p.version = version
	p.champions = champs
	p.mu.Unlock()

	p.log.WithFields(logrus.Fields{"version": version, "champions": len(champs)}).
		Info("champion catalog loaded")
	return nil
}

// Champions returns the cached catalog. Empty until Load succeeds.
func (p *Provider) Champions() []models.ChampionSummary {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.champions
}

// Version returns the data version the catalog was loaded for.
func (p *Provider) Version() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.version
}

func (p *Provider) fetchLatestVersion(ctx context.Context) (string, error) {
	var versions []string
	if err := p.getJSON(ctx, p.baseURL+"/api/versions.json", &versions); err != nil {
		return "", err
	}
	if len(versions) == 0 {
		return "", fmt.Errorf("empty version listing")
	}
	return versions[0], nil
}

// loadChampions checks Redis first, then the CDN, writing back on a miss.
func (p *Provider) loadChampions(ctx context.Context, version string) ([]models.ChampionSummary, error) {
	cacheKey := "champions:" + version + ":" + p.locale

	if p.rdb != nil {
		if raw, err := p.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var champs []models.ChampionSummary
			if err := json.Unmarshal(raw, &champs); err == nil && len(champs) > 0 {
				p.log.WithField("version", version).Debug("champion catalog served from redis")
				return champs, nil
			}
		} else if err != redis.Nil {
			p.log.WithError(err).Warn("redis catalog lookup failed")
		}
	}

	var payload struct {
		Data map[string]championEntry `json:"data"`
	}
	url := fmt.Sprintf("%s/cdn/%s/data/%s/champion.json", p.baseURL, version, p.locale)
	if err := p.getJSON(ctx, url, &payload); err != nil {
		return nil, err
	}

	champs := make([]models.ChampionSummary, 0, len(payload.Data))
	for _, c := range payload.Data {
		champs = append(champs, models.ChampionSummary{
			ID:    c.ID,
			Name:  c.Name,
			Image: c.Image.Full,
		})
	}

	if p.rdb != nil {
		if raw, err := json.Marshal(champs); err == nil {
			if err := p.rdb.Set(ctx, cacheKey, raw, cacheTTL).Err(); err != nil {
				p.log.WithError(err).Warn("failed to cache catalog in redis")
			}
		}
	}
	return champs, nil
}

func (p *Provider) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetching %s: unexpected status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s: %w", url, err)
	}
	return nil
}
