// Package services holds thin clients for the third-party services the
// assistant consults: weather, news, encyclopedia, web search and media.
//
// Every call returns either a typed result or a *errors.DarekError with one
// of the SERVICE_* codes. Callers never see raw transport errors.
package services

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/hpungsan/darek/internal/config"
	"github.com/hpungsan/darek/internal/errors"
)

// Service names used in error details.
const (
	ServiceWeather      = "weather"
	ServiceNews         = "news"
	ServiceEncyclopedia = "encyclopedia"
	ServiceSearch       = "search"
	ServiceMedia        = "media"
)

// maxBody caps how much of an upstream response is read.
const maxBody = 1 << 20

// Gateway bundles one client per external service.
type Gateway struct {
	Weather      *WeatherClient
	News         *NewsClient
	Encyclopedia *EncyclopediaClient
	Search       *SearchClient
	Media        *MediaPlayer
}

// NewGateway builds all clients from cfg, sharing one http.Client
// bounded by cfg.ServiceTimeout().
func NewGateway(cfg *config.Config) *Gateway {
	hc := &http.Client{Timeout: cfg.ServiceTimeout()}
	return &Gateway{
		Weather:      NewWeatherClient(cfg.WeatherURL, cfg.WeatherAPIKey, hc),
		News:         NewNewsClient(cfg.NewsURL, cfg.NewsAPIKey, cfg.NewsCountry, hc),
		Encyclopedia: NewEncyclopediaClient(cfg.WikipediaURL, hc),
		Search:       NewSearchClient(cfg.SearchURL, hc),
		Media:        NewMediaPlayer(cfg.MediaURL, cfg.MediaOpenCommand),
	}
}

// newHTTPClient returns hc, or a client with the default timeout if hc is nil.
func newHTTPClient(hc *http.Client) *http.Client {
	if hc != nil {
		return hc
	}
	return &http.Client{Timeout: 10 * time.Second}
}

// getJSON issues a GET and decodes a 200 response into out.
// Non-200 statuses are returned with a nil error so callers can map them.
func getJSON(ctx context.Context, hc *http.Client, service, rawURL string, query url.Values, out any) (int, error) {
	if len(query) > 0 {
		rawURL = rawURL + "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, errors.NewInternal(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "darek/1.0")

	resp, err := hc.Do(req)
	if err != nil {
		return 0, transportError(service, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return resp.StatusCode, nil
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(out); err != nil {
		return resp.StatusCode, transportError(service, fmt.Errorf("decode response: %w", err))
	}
	return resp.StatusCode, nil
}

// transportError maps a client-side failure to SERVICE_TIMEOUT or SERVICE_UNREACHABLE.
func transportError(service string, err error) error {
	var netErr net.Error
	if stderrors.Is(err, context.DeadlineExceeded) || (stderrors.As(err, &netErr) && netErr.Timeout()) {
		return errors.NewServiceTimeout(service)
	}
	return errors.NewServiceUnreachable(service, err)
}

// statusError maps a non-200 upstream status.
func statusError(service, query string, status int) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.NewServiceUnauthorized(service)
	case http.StatusNotFound:
		return errors.NewServiceNotFound(service, query)
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return errors.NewServiceTimeout(service)
	default:
		return errors.NewServiceUnreachable(service, fmt.Errorf("HTTP %d", status))
	}
}

// PlainText strips markup from s and collapses whitespace.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.Join(strings.Fields(s), " ")
	}
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return strings.Join(strings.Fields(s), " ")
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// hostOf returns the host part of rawURL, or "" if it has none.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
