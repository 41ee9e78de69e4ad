package sheets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cardapiolabs/cardapio/internal/models"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
)

// Client fetches the published-spreadsheet CSV exports. A load is all or
// nothing: any source that fails aborts the whole load, and no retry is
// attempted.
type Client struct {
	httpClient *http.Client
	log        *logrus.Logger
	progress   bool
}

func NewClient(timeout time.Duration, log *logrus.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
		progress:   true,
	}
}

// DisableProgress suppresses the terminal progress bar (used by tests).
func (c *Client) DisableProgress() {
	c.progress = false
}

type source struct {
	key string
	url string
	dst *[]Record
}

// FetchAll downloads and parses every configured source. Sources with an
// empty URL are skipped without error.
func (c *Client) FetchAll(ctx context.Context, urls models.SheetURLs) (*SourceData, error) {
	data := &SourceData{}
	sources := []source{
		{"items", urls.Items, &data.Items},
		{"categories", urls.Categories, &data.Categories},
		{"config", urls.Config, &data.Config},
		{"hours", urls.Hours, &data.Hours},
		{"neighborhoods", urls.Neighborhoods, &data.Neighborhoods},
		{"coupons", urls.Coupons, &data.Coupons},
	}

	pending := make([]source, 0, len(sources))
	for _, src := range sources {
		if src.url == "" {
			c.log.Debugf("source %s has no URL, skipping", src.key)
			continue
		}
		pending = append(pending, src)
	}

	var bar *progressbar.ProgressBar
	if c.progress {
		bar = progressbar.Default(int64(len(pending)), "loading catalog")
	}

	for _, src := range pending {
		csvText, err := c.fetchCSV(ctx, src.url)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", src.key, err)
		}
		records, err := ParseCSV(csvText)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", src.key, err)
		}
		*src.dst = records
		c.log.Debugf("source %s: %d rows", src.key, len(records))
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	return data, nil
}

// Load is the full pipeline: fetch every source, then assemble the catalog.
func (c *Client) Load(ctx context.Context, urls models.SheetURLs) (*models.Catalog, error) {
	data, err := c.FetchAll(ctx, urls)
	if err != nil {
		return nil, err
	}
	catalog, err := Assemble(data)
	if err != nil {
		return nil, err
	}
	c.log.Infof("catalog loaded: %d categories, %d products", len(catalog.Categories), len(catalog.Products))
	return catalog, nil
}

func (c *Client) fetchCSV(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
