package middleware

import (
	"context"
	"net/http"

	"almaradiante.org/alma-web/internal/i18n"
)

// context keys are unexported to avoid collisions
type ctxKey string

const (
	ctxKeySession ctxKey = "session"
	ctxKeyLang    ctxKey = "lang"
)

// WithLang stores the resolved language in context.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, ctxKeyLang, lang)
}

// Lang returns the resolved language for the request, defaulting to the
// primary language when resolution has not run.
func Lang(r *http.Request) string {
	if v, ok := r.Context().Value(ctxKeyLang).(string); ok && v != "" {
		return v
	}
	return i18n.LangPrimary
}
