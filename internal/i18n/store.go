package i18n

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"almaradiante.org/alma-web/internal/quiz"
)

// LangPrimary is the brand's first language; it is always the fallback.
const LangPrimary = "es"

// SupportedLanguages is the closed set of translation documents we ship.
var SupportedLanguages = []string{"es", "en", "de"}

// Tree is one language's nested translation mapping, decoded from JSON.
// Leaves are strings or ordered sequences of strings.
type Tree map[string]any

// Store holds the per-language trees loaded at startup. Trees are immutable
// once loaded; a language whose document failed to load is simply absent.
type Store struct {
	mu    sync.RWMutex
	trees map[string]Tree
	log   *zap.Logger
}

// NewStore returns an empty store.
func NewStore(log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{trees: map[string]Tree{}, log: log}
}

// LoadAll reads one JSON document per language code from dir, concurrently,
// and joins on completion of all. A language whose file is missing or
// unparsable is logged and omitted; the others are unaffected.
func (s *Store) LoadAll(ctx context.Context, dir string, codes []string) {
	if len(codes) == 0 {
		codes = SupportedLanguages
	}
	var wg sync.WaitGroup
	for _, code := range codes {
		wg.Add(1)
		go func(code string) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				s.log.Warn("translation load canceled", zap.String("lang", code), zap.Error(err))
				return
			}
			tree, err := loadTree(filepath.Join(dir, code+".json"))
			if err != nil {
				s.log.Warn("translation unavailable", zap.String("lang", code), zap.Error(err))
				return
			}
			s.mu.Lock()
			s.trees[code] = tree
			s.mu.Unlock()
		}(code)
	}
	wg.Wait()
}

func loadTree(path string) (Tree, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var t Tree
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return t, nil
}

// Tree returns the loaded tree for code.
func (s *Store) Tree(code string) (Tree, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.trees[code]
	return t, ok
}

// Available reports whether a tree loaded successfully for code.
func (s *Store) Available(code string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.trees[code]
	return ok
}

// Languages returns the loaded codes in supported order.
func (s *Store) Languages() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.trees))
	for _, code := range SupportedLanguages {
		if _, ok := s.trees[code]; ok {
			out = append(out, code)
		}
	}
	return out
}

// Resolve walks tree by the dot-separated path. A missing segment yields
// ok=false; callers treat that as "no translation available", never an error.
func Resolve(tree Tree, path string) (any, bool) {
	if tree == nil || path == "" {
		return nil, false
	}
	var cur any = map[string]any(tree)
	for _, seg := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// ResolveString resolves path to a string leaf.
func ResolveString(tree Tree, path string) (string, bool) {
	v, ok := Resolve(tree, path)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// ResolveList resolves path to an ordered sequence of strings.
func ResolveList(tree Tree, path string) ([]string, bool) {
	v, ok := Resolve(tree, path)
	if !ok {
		return nil, false
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// QuizData extracts the quiz section (catalog.quiz.q1..q4) and the catalog
// product titles from tree. An incomplete section is an error; the quiz must
// not start on partial data.
func QuizData(tree Tree) (quiz.Data, error) {
	data := quiz.Data{Titles: map[quiz.Product]string{}}
	for i := 1; i <= quiz.QuestionCount; i++ {
		base := fmt.Sprintf("catalog.quiz.q%d", i)
		prompt, ok := ResolveString(tree, base+".question")
		if !ok {
			return quiz.Data{}, fmt.Errorf("i18n: missing %s.question", base)
		}
		options, ok := ResolveList(tree, base+".options")
		if !ok || len(options) != 4 {
			return quiz.Data{}, fmt.Errorf("i18n: %s.options must hold exactly 4 strings", base)
		}
		data.Questions = append(data.Questions, quiz.Question{Prompt: prompt, Options: options})
	}
	products, ok := Resolve(tree, "catalog.products")
	if !ok {
		return quiz.Data{}, fmt.Errorf("i18n: missing catalog.products")
	}
	entries, ok := products.([]any)
	if !ok || len(entries) != len(quiz.Products) {
		return quiz.Data{}, fmt.Errorf("i18n: catalog.products must hold %d entries", len(quiz.Products))
	}
	for i, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			return quiz.Data{}, fmt.Errorf("i18n: catalog.products[%d] is not an object", i)
		}
		title, _ := m["title"].(string)
		data.Titles[quiz.Products[i]] = title
	}
	return data, nil
}
