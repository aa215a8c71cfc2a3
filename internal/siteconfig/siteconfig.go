package siteconfig

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
)

// Config is the site's runtime configuration document: theming values, feature
// flags, and external links. Loaded once, immutable for the session.
type Config struct {
	Theme         Theme
	Features      Features
	ExternalLinks ExternalLinks
}

// Theme groups the cosmetic values consumed by the page templates. The engine
// does not interpret them; absent sections keep their defaults.
type Theme struct {
	Colors          map[string]string
	Navbar          map[string]string
	Layout          map[string]string
	IntroAesthetics map[string]string
}

// Features are the behavior switches the engine does interpret.
type Features struct {
	LanguagePersistence bool
	SmoothScrolling     bool
}

// ExternalLinks holds outbound URLs surfaced on the page.
type ExternalLinks struct {
	BookingURL string
}

// Defaults is the configuration used when the document is absent or broken.
func Defaults() Config {
	return Config{
		Theme: Theme{
			Colors: map[string]string{
				"primary":    "#7a5c3e",
				"secondary":  "#d9c7a9",
				"background": "#f6f1e7",
			},
			Navbar:          map[string]string{"height": "64px"},
			Layout:          map[string]string{"max_width": "1140px"},
			IntroAesthetics: map[string]string{},
		},
		Features: Features{
			LanguagePersistence: true,
			SmoothScrolling:     true,
		},
		ExternalLinks: ExternalLinks{},
	}
}

// document mirrors the JSON shape with optional sections, so that absent
// fields apply partially over Defaults instead of zeroing them.
type document struct {
	Theme *struct {
		Colors          map[string]string `json:"colors"`
		Navbar          map[string]string `json:"navbar"`
		Layout          map[string]string `json:"layout"`
		IntroAesthetics map[string]string `json:"intro_aesthetics"`
	} `json:"theme"`
	Features *struct {
		LanguagePersistence *bool `json:"language_persistence"`
		SmoothScrolling     *bool `json:"smooth_scrolling"`
	} `json:"features"`
	ExternalLinks *struct {
		BookingURL *string `json:"booking_url"`
	} `json:"external_links"`
}

// Loader fetches the configuration document from a remote URL when configured,
// otherwise from a local file.
type Loader struct {
	url  string
	path string
	http *http.Client
	log  *zap.Logger
}

// NewLoader builds a loader. Either url or path may be empty.
func NewLoader(url, path string, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		url:  url,
		path: path,
		http: &http.Client{Timeout: 5 * time.Second},
		log:  log,
	}
}

// Load fetches and parses the document. Every failure is logged and answered
// with Defaults; loading never blocks page rendering on an error.
func (l *Loader) Load(ctx context.Context) Config {
	raw, err := l.fetch(ctx)
	if err != nil {
		l.log.Warn("site config unavailable, using defaults", zap.Error(err))
		return Defaults()
	}
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		l.log.Warn("site config unparsable, using defaults", zap.Error(err))
		return Defaults()
	}
	return apply(doc)
}

func (l *Loader) fetch(ctx context.Context) ([]byte, error) {
	if l.url != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		resp, err := l.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("siteconfig: fetch status %d", resp.StatusCode)
		}
		const maxConfigSize = 1 << 20
		return io.ReadAll(io.LimitReader(resp.Body, maxConfigSize))
	}
	return os.ReadFile(l.path)
}

// apply overlays the parsed document onto Defaults section by section.
func apply(doc document) Config {
	cfg := Defaults()
	if doc.Theme != nil {
		if doc.Theme.Colors != nil {
			cfg.Theme.Colors = doc.Theme.Colors
		}
		if doc.Theme.Navbar != nil {
			cfg.Theme.Navbar = doc.Theme.Navbar
		}
		if doc.Theme.Layout != nil {
			cfg.Theme.Layout = doc.Theme.Layout
		}
		if doc.Theme.IntroAesthetics != nil {
			cfg.Theme.IntroAesthetics = doc.Theme.IntroAesthetics
		}
	}
	if doc.Features != nil {
		if doc.Features.LanguagePersistence != nil {
			cfg.Features.LanguagePersistence = *doc.Features.LanguagePersistence
		}
		if doc.Features.SmoothScrolling != nil {
			cfg.Features.SmoothScrolling = *doc.Features.SmoothScrolling
		}
	}
	if doc.ExternalLinks != nil && doc.ExternalLinks.BookingURL != nil {
		cfg.ExternalLinks.BookingURL = *doc.ExternalLinks.BookingURL
	}
	return cfg
}
