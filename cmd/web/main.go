package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"almaradiante.org/alma-web/internal/config"
	"almaradiante.org/alma-web/internal/content"
	"almaradiante.org/alma-web/internal/i18n"
	mw "almaradiante.org/alma-web/internal/middleware"
	"almaradiante.org/alma-web/internal/observability"
	"almaradiante.org/alma-web/internal/siteconfig"
)

// package-level application state, initialized in main and by tests
var (
	cfg      *config.Config
	logger   *zap.Logger
	siteCfg  siteconfig.Config
	store    *i18n.Store
	binder   *content.Binder
	pages    *content.PageStore
	sessions *sessionRegistry
	devMode  bool
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system env")
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	flag.StringVar(&cfg.Port, "port", cfg.Port, "HTTP listen port")
	flag.StringVar(&cfg.TemplatesDir, "templates", cfg.TemplatesDir, "templates directory")
	flag.StringVar(&cfg.PublicDir, "public", cfg.PublicDir, "public assets directory")
	flag.Parse()

	logger, err = observability.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	devMode = cfg.Env != "prod"
	if !devMode {
		// Parse templates once in production
		tc, err := parseTemplates()
		if err != nil {
			logger.Fatal("parse templates", zap.Error(err))
		}
		tmplCache = tc
	}

	// The configuration document and the translation trees load concurrently;
	// both tolerate partial failure and neither blocks the other.
	store = i18n.NewStore(logger)
	loader := siteconfig.NewLoader(cfg.SiteConfigURL, cfg.SiteConfigPath, logger)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		siteCfg = loader.Load(ctx)
	}()
	go func() {
		defer wg.Done()
		store.LoadAll(ctx, cfg.LocalesDir, i18n.SupportedLanguages)
	}()
	wg.Wait()
	cancel()
	logger.Info("startup data loaded",
		zap.Strings("languages", store.Languages()),
		zap.Bool("language_persistence", siteCfg.Features.LanguagePersistence))

	binder = content.NewBinder(logger, nil)
	pages = content.NewPageStore(cfg.ContentDir, logger)
	sessions = newSessionRegistry(logger)
	go sessions.sweep(30 * time.Minute)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newRouter(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	logger.Info("web listening", zap.String("addr", cfg.Addr()), zap.Bool("dev", devMode))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("listen", zap.Error(err))
	}
}

// newRouter wires the middleware chain and routes.
func newRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// Behind a trusted reverse proxy, RealIP derives the client from
	// X-Forwarded-For; ensure only trusted proxies can set it in production.
	r.Use(chimw.RealIP)
	r.Use(mw.Session)
	r.Use(mw.Locale(store, func() bool { return siteCfg.Features.LanguagePersistence }))
	r.Use(mw.CSRF)
	r.Use(mw.VaryLocale)
	r.Use(mw.Logger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	assets := http.StripPrefix("/assets", mw.AssetsWithCache(cfg.PublicDir+"/assets"))
	r.Handle("/assets/*", assets)

	registerPages(r, "")
	registerPages(r, "/en")
	registerPages(r, "/de")

	r.Route("/quiz", func(r chi.Router) {
		r.Post("/start", QuizStartHandler)
		r.Post("/answer", QuizAnswerHandler)
		r.Post("/reset", QuizResetHandler)
		r.Get("/state", QuizStateHandler)
	})
	r.Route("/catalog", func(r chi.Router) {
		r.Get("/", CatalogStateHandler)
		r.Post("/{product}/toggle", CatalogToggleHandler)
	})
	r.Post("/lang/{code}", LanguageSwitchHandler)

	return r
}

// registerPages mounts the brochure pages, optionally under a language prefix.
func registerPages(r chi.Router, prefix string) {
	if prefix == "" {
		r.Get("/", HomeHandler)
	} else {
		r.Get(prefix, HomeHandler)
		r.Get(prefix+"/", HomeHandler)
	}
	r.Get(prefix+"/historia", HistoriaHandler)
	r.Get(prefix+"/catalogo", CatalogoHandler)
	r.Get(prefix+"/contacto", ContactoHandler)
}
