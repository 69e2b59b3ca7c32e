package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

// AnswerKind says which part of an instant-answer response was used.
type AnswerKind string

const (
	AnswerAbstract   AnswerKind = "abstract"
	AnswerDefinition AnswerKind = "definition"
	AnswerDirect     AnswerKind = "answer"
	AnswerRelated    AnswerKind = "related"
	// AnswerNoDetail means related topics exist but none carries text.
	AnswerNoDetail AnswerKind = "no_detail"
	AnswerNone     AnswerKind = "none"
)

// Minimum lengths for an abstract or definition to be worth reading out.
const (
	minAbstractLen   = 50
	minDefinitionLen = 20
)

// Answer is the preferred snippet from an instant-answer lookup.
type Answer struct {
	Kind   AnswerKind `json:"kind"`
	Text   string     `json:"text,omitempty"`
	Source string     `json:"source,omitempty"`
}

// SearchClient queries a DuckDuckGo instant-answer endpoint.
type SearchClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewSearchClient creates a web search client.
func NewSearchClient(baseURL string, hc *http.Client) *SearchClient {
	return &SearchClient{
		baseURL:    baseURL,
		httpClient: newHTTPClient(hc),
	}
}

type instantAnswer struct {
	Abstract      string          `json:"Abstract"`
	AbstractURL   string          `json:"AbstractURL"`
	Definition    string          `json:"Definition"`
	DefinitionURL string          `json:"DefinitionURL"`
	Answer        json.RawMessage `json:"Answer"`
	RelatedTopics []struct {
		Text string `json:"Text"`
	} `json:"RelatedTopics"`
}

// Lookup returns the best snippet for query, preferring an abstract,
// then a definition, then a direct answer, then the first related topic.
func (c *SearchClient) Lookup(ctx context.Context, query string) (*Answer, error) {
	var body instantAnswer
	status, err := getJSON(ctx, c.httpClient, ServiceSearch, c.baseURL, url.Values{
		"q":             {query},
		"format":        {"json"},
		"no_html":       {"1"},
		"skip_disambig": {"1"},
	}, &body)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, statusError(ServiceSearch, query, status)
	}
	return pickAnswer(&body), nil
}

func pickAnswer(body *instantAnswer) *Answer {
	if abstract := PlainText(body.Abstract); len(abstract) > minAbstractLen {
		return &Answer{Kind: AnswerAbstract, Text: abstract, Source: sourceOr(body.AbstractURL, "Wikipedia")}
	}
	if def := PlainText(body.Definition); len(def) > minDefinitionLen {
		return &Answer{Kind: AnswerDefinition, Text: def, Source: sourceOr(body.DefinitionURL, "Dictionary")}
	}
	// Answer is usually a string but some instant answers return an object.
	var direct string
	if err := json.Unmarshal(body.Answer, &direct); err == nil && strings.TrimSpace(direct) != "" {
		return &Answer{Kind: AnswerDirect, Text: PlainText(direct)}
	}
	if len(body.RelatedTopics) > 0 {
		if text := PlainText(body.RelatedTopics[0].Text); text != "" {
			return &Answer{Kind: AnswerRelated, Text: text, Source: "DuckDuckGo"}
		}
		return &Answer{Kind: AnswerNoDetail}
	}
	return &Answer{Kind: AnswerNone}
}

func sourceOr(rawURL, fallback string) string {
	if host := hostOf(rawURL); host != "" {
		return host
	}
	return fallback
}
