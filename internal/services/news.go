package services

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/hpungsan/darek/internal/errors"
)

// Article is one headline.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// NewsClient queries a NewsAPI-compatible top-headlines endpoint.
type NewsClient struct {
	baseURL    string
	apiKey     string
	country    string
	httpClient *http.Client
}

// NewNewsClient creates a news client. An empty apiKey is reported per call.
func NewNewsClient(baseURL, apiKey, country string, hc *http.Client) *NewsClient {
	return &NewsClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		country:    country,
		httpClient: newHTTPClient(hc),
	}
}

type newsResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
	} `json:"articles"`
}

// TopHeadlines returns up to limit headlines in upstream order; limit <= 0 means all.
// An empty slice means the service answered with no articles.
func (c *NewsClient) TopHeadlines(ctx context.Context, limit int) ([]Article, error) {
	if c.apiKey == "" {
		return nil, errors.NewServiceNotConfigured(ServiceNews, "NEWS_API_KEY")
	}

	var body newsResponse
	status, err := getJSON(ctx, c.httpClient, ServiceNews, c.baseURL, url.Values{
		"country": {c.country},
		"apiKey":  {c.apiKey},
	}, &body)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, statusError(ServiceNews, c.country, status)
	}

	if limit <= 0 {
		limit = len(body.Articles)
	}
	out := make([]Article, 0, min(limit, len(body.Articles)))
	for _, a := range body.Articles {
		if len(out) >= limit {
			break
		}
		out = append(out, Article{
			Title:       PlainText(a.Title),
			Description: PlainText(a.Description),
			URL:         a.URL,
		})
	}
	return out, nil
}
