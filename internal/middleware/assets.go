package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// AssetsWithCache serves the public assets directory with long-lived cache
// headers and weak ETags. Assets are immutable between deploys, so ETags are
// computed once per path and memoized.
func AssetsWithCache(dir string) http.Handler {
	var (
		mu    sync.Mutex
		etags = map[string]string{}
	)
	etagFor := func(urlPath string) string {
		mu.Lock()
		defer mu.Unlock()
		if et, ok := etags[urlPath]; ok {
			return et
		}
		et := ""
		if data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(urlPath))); err == nil {
			sum := sha256.Sum256(data)
			et = `W/"` + hex.EncodeToString(sum[:]) + `"`
		}
		etags[urlPath] = et
		return et
	}
	fs := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Accept-Encoding")
		w.Header().Set("Cache-Control", "public, max-age=604800, stale-while-revalidate=86400")
		urlPath := strings.TrimPrefix(r.URL.Path, "/assets")
		if strings.Contains(urlPath, "..") {
			http.NotFound(w, r)
			return
		}
		if et := etagFor(urlPath); et != "" {
			w.Header().Set("ETag", et)
			if inm := r.Header.Get("If-None-Match"); inm != "" && inm == et {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
		fs.ServeHTTP(w, r)
	})
}
