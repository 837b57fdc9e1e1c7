package fetch

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Nowhitestar/process-builder-data/internal/config"
)

// DescriptionFetcher extracts a textual description from a project website.
// An empty string with a nil error means the page had nothing usable.
type DescriptionFetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}

// MetaDescriptionClient scrapes description meta tags, falling back to the
// first paragraph of the page body.
type MetaDescriptionClient struct {
	userAgent  string
	httpClient *http.Client
}

func NewMetaDescriptionClient(cfg config.Config) *MetaDescriptionClient {
	return &MetaDescriptionClient{
		userAgent:  cfg.HTTPUserAgent,
		httpClient: &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutMs) * time.Millisecond},
	}
}

func (c *MetaDescriptionClient) Fetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("description fetch status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}
	return descriptionFromDoc(doc), nil
}

// Meta tags are probed in priority order; a candidate shorter than 20
// characters is treated as boilerplate and skipped.
func descriptionFromDoc(doc *goquery.Document) string {
	selectors := []string{
		`meta[name="description"]`,
		`meta[property="og:description"]`,
		`meta[name="twitter:description"]`,
	}
	for _, selector := range selectors {
		content, _ := doc.Find(selector).First().Attr("content")
		content = strings.TrimSpace(content)
		if len(content) > 20 {
			return content
		}
	}

	paragraph := strings.TrimSpace(doc.Find("p").First().Text())
	if len(paragraph) > 20 && len(paragraph) < 500 {
		return paragraph
	}
	return ""
}
