package reference

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"match-service/internal/utils"
)

// ErrEmptyCatalog: каталог не вернул ни одной записи.
var ErrEmptyCatalog = errors.New("catalog returned no records")

// Crawler постранично выкачивает каталог брендов и парт-номеров.
// Страницы нумеруются с 1; остановка на пустой странице или code != 200.
type Crawler struct {
	HTTP     *http.Client
	BrandURL string // шаблон с {page}
	PartURL  string
	Limiter  *rate.Limiter
	MaxPages int // 0: без ограничения
	Log      zerolog.Logger
}

func NewCrawler(brandURL, partURL string, rps float64, logger zerolog.Logger) *Crawler {
	lim := rate.NewLimiter(rate.Inf, 1)
	if rps > 0 {
		lim = rate.NewLimiter(rate.Limit(rps), 1)
	}
	return &Crawler{
		HTTP:     http.DefaultClient,
		BrandURL: brandURL,
		PartURL:  partURL,
		Limiter:  lim,
		Log:      logger,
	}
}

type catalogPage struct {
	Code int               `json:"code"`
	Data []json.RawMessage `json:"data"`
}

type brandEntry struct {
	BrandName  json.RawMessage `json:"brand_name"`
	BrandAlias json.RawMessage `json:"brand_alias"`
}

type partEntry struct {
	PartNumber json.RawMessage `json:"part_number"`
}

// Crawl собирает полный снапшот.
func (c *Crawler) Crawl(ctx context.Context) (Snapshot, error) {
	snap := Snapshot{
		BrandNameToID:  map[string]Record{},
		BrandAliasToID: map[string]Record{},
		PartNumberToID: map[string]Record{},
	}

	c.Log.Info().Msg("extracting brands")
	nb, err := c.walk(ctx, c.BrandURL, func(raw json.RawMessage) error {
		var e brandEntry
		var rec Record
		if err := json.Unmarshal(raw, &e); err != nil {
			return err
		}
		if err := json.Unmarshal(raw, &rec); err != nil {
			return err
		}
		if name := utils.CleanBrandName(rawScalar(e.BrandName)); name != "" {
			snap.BrandNames = append(snap.BrandNames, name)
			snap.BrandNameToID[name] = rec
		}
		if alias := utils.CleanBrandName(rawScalar(e.BrandAlias)); alias != "" {
			snap.BrandAliases = append(snap.BrandAliases, alias)
			snap.BrandAliasToID[alias] = rec
		}
		return nil
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("brands: %w", err)
	}

	c.Log.Info().Msg("extracting part numbers")
	np, err := c.walk(ctx, c.PartURL, func(raw json.RawMessage) error {
		var e partEntry
		var rec Record
		if err := json.Unmarshal(raw, &e); err != nil {
			return err
		}
		if err := json.Unmarshal(raw, &rec); err != nil {
			return err
		}
		if pn := utils.CleanPartNumber(rawScalar(e.PartNumber)); pn != "" {
			snap.PartNumbers = append(snap.PartNumbers, pn)
			snap.PartNumberToID[pn] = rec
		}
		return nil
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("part numbers: %w", err)
	}
	if nb == 0 && np == 0 {
		return Snapshot{}, ErrEmptyCatalog
	}

	c.Log.Info().
		Int("brands", len(snap.BrandNames)).
		Int("aliases", len(snap.BrandAliases)).
		Int("part_numbers", len(snap.PartNumbers)).
		Msg("catalog fetched")
	return snap, nil
}

// walk идёт по страницам и отдаёт каждую запись в fn; возвращает число записей.
func (c *Crawler) walk(ctx context.Context, tmpl string, fn func(json.RawMessage) error) (int, error) {
	total := 0
	for page := 1; c.MaxPages <= 0 || page <= c.MaxPages; page++ {
		if err := c.Limiter.Wait(ctx); err != nil {
			return total, err
		}
		p, err := c.fetchPage(ctx, pageURL(tmpl, page))
		if err != nil {
			return total, fmt.Errorf("page %d: %w", page, err)
		}
		c.Log.Debug().Int("page", page).Int("records", len(p.Data)).Msg("catalog page")
		if p.Code != http.StatusOK || len(p.Data) == 0 {
			break
		}
		for _, raw := range p.Data {
			if err := fn(raw); err != nil {
				return total, fmt.Errorf("page %d: %w", page, err)
			}
			total++
		}
	}
	return total, nil
}

func (c *Crawler) fetchPage(ctx context.Context, url string) (catalogPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return catalogPage{}, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return catalogPage{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return catalogPage{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	var p catalogPage
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return catalogPage{}, fmt.Errorf("decode: %w", err)
	}
	return p, nil
}

func pageURL(tmpl string, page int) string {
	return strings.ReplaceAll(tmpl, "{page}", strconv.Itoa(page))
}
