package content

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ErrPageNotFound is returned when no markdown source exists for a slug in any
// language of the fallback chain.
var ErrPageNotFound = errors.New("content: page not found")

// Page is a localized narrative page (brand story, service descriptions)
// sourced from markdown with YAML front matter.
type Page struct {
	Slug      string
	Lang      string
	Title     string
	Summary   string
	Body      template.HTML
	UpdatedAt time.Time
}

type pageFrontMatter struct {
	Title   string `yaml:"title"`
	Summary string `yaml:"summary"`
	Lang    string `yaml:"lang"`
}

// PageStore reads narrative pages from dir/<lang>/<slug>.md with a short
// in-memory cache. Lookup falls back to the primary language when the
// requested localization is missing.
type PageStore struct {
	dir    string
	log    *zap.Logger
	md     goldmark.Markdown
	policy *bluemonday.Policy

	mu    sync.RWMutex
	cache map[string]pageCacheEntry
	ttl   time.Duration
}

type pageCacheEntry struct {
	page    Page
	expires time.Time
}

// NewPageStore builds a store rooted at dir.
func NewPageStore(dir string, log *zap.Logger) *PageStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &PageStore{
		dir:    dir,
		log:    log,
		md:     goldmark.New(),
		policy: bluemonday.UGCPolicy(),
		cache:  map[string]pageCacheEntry{},
		ttl:    5 * time.Minute,
	}
}

// SetCacheDuration overrides the cache TTL (primarily for tests).
func (ps *PageStore) SetCacheDuration(d time.Duration) {
	if d <= 0 {
		d = time.Minute
	}
	ps.mu.Lock()
	ps.ttl = d
	ps.mu.Unlock()
}

// Get returns the page for slug in lang, falling back to es.
func (ps *PageStore) Get(slug, lang string) (Page, error) {
	slug = sanitizeSlug(slug)
	if slug == "" {
		return Page{}, ErrPageNotFound
	}
	key := lang + "|" + slug
	if page, ok := ps.cached(key); ok {
		return page, nil
	}
	chain := []string{lang}
	if lang != "es" {
		chain = append(chain, "es")
	}
	for _, candidate := range chain {
		page, err := ps.read(slug, candidate)
		if err == nil {
			ps.store(key, page)
			return page, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return Page{}, err
	}
	return Page{}, ErrPageNotFound
}

func (ps *PageStore) read(slug, lang string) (Page, error) {
	file := filepath.Join(ps.dir, lang, slug+".md")
	data, err := os.ReadFile(file)
	if err != nil {
		return Page{}, err
	}
	info, statErr := os.Stat(file)
	fm, body := splitFrontMatter(string(data))
	front := pageFrontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, fmt.Errorf("content: parse front matter %s: %w", file, err)
		}
	}
	var buf bytes.Buffer
	if err := ps.md.Convert([]byte(body), &buf); err != nil {
		return Page{}, fmt.Errorf("content: render %s: %w", file, err)
	}
	page := Page{
		Slug:    slug,
		Lang:    lang,
		Title:   strings.TrimSpace(front.Title),
		Summary: strings.TrimSpace(front.Summary),
		Body:    template.HTML(ps.policy.SanitizeBytes(buf.Bytes())),
	}
	if front.Lang != "" {
		page.Lang = strings.TrimSpace(front.Lang)
	}
	if statErr == nil {
		page.UpdatedAt = info.ModTime()
	}
	if page.Title == "" {
		page.Title = prettifySlug(slug)
	}
	return page, nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return strings.Join(lines[1:i], "\n"), strings.TrimLeft(strings.Join(lines[i+1:], "\n"), "\n\r")
		}
	}
	return "", input
}

func sanitizeSlug(slug string) string {
	slug = strings.Trim(strings.ToLower(strings.TrimSpace(slug)), "/")
	if slug == "" || strings.Contains(slug, "..") || strings.ContainsRune(slug, os.PathSeparator) {
		return ""
	}
	return slug
}

func prettifySlug(slug string) string {
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		if runes[0] >= 'a' && runes[0] <= 'z' {
			runes[0] -= 'a' - 'A'
		}
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

func (ps *PageStore) cached(key string) (Page, bool) {
	ps.mu.RLock()
	entry, ok := ps.cache[key]
	ps.mu.RUnlock()
	if !ok || time.Now().After(entry.expires) {
		return Page{}, false
	}
	return entry.page, true
}

func (ps *PageStore) store(key string, page Page) {
	ps.mu.Lock()
	ps.cache[key] = pageCacheEntry{page: page, expires: time.Now().Add(ps.ttl)}
	ps.mu.Unlock()
}
