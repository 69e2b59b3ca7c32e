package services

import (
	"context"
	"net/url"
	"os/exec"
	"strings"

	"github.com/hpungsan/darek/internal/errors"
)

// MediaPlayer opens a media search page for a title.
// Playback is fire-and-forget: the launcher is started, never awaited.
type MediaPlayer struct {
	baseURL string
	command string
	start   func(ctx context.Context, name string, args ...string) error
}

// NewMediaPlayer creates a player. An empty command means requests are only acknowledged.
func NewMediaPlayer(baseURL, command string) *MediaPlayer {
	return &MediaPlayer{
		baseURL: baseURL,
		command: strings.TrimSpace(command),
		start:   startDetached,
	}
}

func startDetached(ctx context.Context, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// URL returns the media search URL for title.
func (p *MediaPlayer) URL(title string) string {
	return p.baseURL + "?" + url.Values{"search_query": {title}}.Encode()
}

// Play launches the configured opener on the search URL for title and returns the URL.
func (p *MediaPlayer) Play(ctx context.Context, title string) (string, error) {
	target := p.URL(title)
	if p.command == "" {
		return target, nil
	}
	if err := p.start(ctx, p.command, target); err != nil {
		return target, errors.NewServiceUnreachable(ServiceMedia, err)
	}
	return target, nil
}
