package services

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"unicode"

	"github.com/hpungsan/darek/internal/errors"
)

// SummarySentences is how many sentences of an article extract are kept.
const SummarySentences = 2

// Summary is a short encyclopedia extract.
type Summary struct {
	Title   string `json:"title"`
	Extract string `json:"extract"`
}

// EncyclopediaClient queries a Wikipedia REST page-summary endpoint.
type EncyclopediaClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewEncyclopediaClient creates an encyclopedia client.
func NewEncyclopediaClient(baseURL string, hc *http.Client) *EncyclopediaClient {
	return &EncyclopediaClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: newHTTPClient(hc),
	}
}

type summaryResponse struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Extract string `json:"extract"`
}

// Summary returns the first sentences of the article for topic.
// A disambiguation page yields SERVICE_AMBIGUOUS; a missing page SERVICE_NOT_FOUND.
func (c *EncyclopediaClient) Summary(ctx context.Context, topic string) (*Summary, error) {
	page := url.PathEscape(pageTitle(topic))

	var body summaryResponse
	status, err := getJSON(ctx, c.httpClient, ServiceEncyclopedia, c.baseURL+"/"+page, nil, &body)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, statusError(ServiceEncyclopedia, topic, status)
	}
	if body.Type == "disambiguation" {
		return nil, errors.NewServiceAmbiguous(ServiceEncyclopedia, topic)
	}

	extract := FirstSentences(PlainText(body.Extract), SummarySentences)
	if extract == "" {
		return nil, errors.NewServiceNotFound(ServiceEncyclopedia, topic)
	}
	return &Summary{Title: body.Title, Extract: extract}, nil
}

// pageTitle turns a topic into an article title: underscores for spaces and
// an upper-case first letter, which is how article titles are keyed.
func pageTitle(topic string) string {
	runes := []rune(strings.ReplaceAll(strings.TrimSpace(topic), " ", "_"))
	if len(runes) > 0 {
		runes[0] = unicode.ToUpper(runes[0])
	}
	return string(runes)
}

// FirstSentences returns the first n sentences of s.
// A sentence ends at '.', '!' or '?' followed by whitespace or the end of text.
func FirstSentences(s string, n int) string {
	s = strings.TrimSpace(s)
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	count := 0
	for i, r := range runes {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		count++
		if count == n {
			return string(runes[:i+1])
		}
	}
	return s
}
