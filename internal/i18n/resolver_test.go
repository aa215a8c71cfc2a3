package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func availableAll(string) bool { return true }

func availableOnly(codes ...string) func(string) bool {
	set := map[string]bool{}
	for _, c := range codes {
		set[c] = true
	}
	return func(code string) bool { return set[code] }
}

func TestResolveLanguage(t *testing.T) {
	cases := []struct {
		name string
		in   ResolveInput
		want string
	}{
		{
			name: "persisted wins over everything",
			in: ResolveInput{
				Persisted: "en", PersistenceEnabled: true,
				Path: "/de/catalogo", AcceptLanguage: "de-DE",
				Available: availableAll,
			},
			want: "en",
		},
		{
			name: "persisted ignored when flag off",
			in: ResolveInput{
				Persisted: "en", PersistenceEnabled: false,
				Path: "/de/catalogo", Available: availableAll,
			},
			want: "de",
		},
		{
			name: "persisted but unloaded falls through to path",
			in: ResolveInput{
				Persisted: "de", PersistenceEnabled: true,
				Path: "/en", Available: availableOnly("es", "en"),
			},
			want: "en",
		},
		{
			name: "persisted unsupported code ignored",
			in: ResolveInput{
				Persisted: "fr", PersistenceEnabled: true,
				Path: "/", Available: availableAll,
			},
			want: "es",
		},
		{
			name: "url segment bare",
			in:   ResolveInput{Path: "/en", Available: availableAll},
			want: "en",
		},
		{
			name: "url segment with subpath",
			in:   ResolveInput{Path: "/de/historia", Available: availableAll},
			want: "de",
		},
		{
			name: "url segment prefix must be a full segment",
			in:   ResolveInput{Path: "/ensayo", Available: availableAll},
			want: "es",
		},
		{
			name: "url segment unavailable falls to primary",
			in:   ResolveInput{Path: "/de", Available: availableOnly("es", "en")},
			want: "es",
		},
		{
			name: "no segment falls through to browser preference",
			in: ResolveInput{
				Path: "/catalogo", AcceptLanguage: "fr-FR,de-DE;q=0.8",
				Available: availableAll,
			},
			want: "de",
		},
		{
			name: "browser preference ordered",
			in: ResolveInput{
				Path: "/", AcceptLanguage: "en-US,de;q=0.5",
				Available: availableAll,
			},
			want: "en",
		},
		{
			name: "browser preference unavailable falls to primary",
			in: ResolveInput{
				Path: "/", AcceptLanguage: "de-DE",
				Available: availableOnly("es", "en"),
			},
			want: "es",
		},
		{
			name: "garbage header ignored",
			in:   ResolveInput{Path: "/", AcceptLanguage: ";;;", Available: availableAll},
			want: "es",
		},
		{
			name: "nothing matches defaults to primary",
			in:   ResolveInput{Path: "/", Available: availableAll},
			want: "es",
		},
		{
			name: "nil availability defaults to primary",
			in:   ResolveInput{Path: "/en", AcceptLanguage: "en"},
			want: "es",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ResolveLanguage(tc.in))
		})
	}
}
