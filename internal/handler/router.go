package handler

import (
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/zhouzirui/emotion-detector/internal/handler/emotion"
	middlewarePkg "github.com/zhouzirui/emotion-detector/internal/middleware"
	"github.com/zhouzirui/emotion-detector/pkg/utils"
	"github.com/zhouzirui/emotion-detector/web"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(analyzer emotion.Analyzer, providerName string, gatherer prometheus.Gatherer, log *zap.SugaredLogger) http.Handler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.Logger(log))
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	home := newHomeHandler(providerName)
	r.Get("/", home.ServeHTTP)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static()))))

	emotion.New(analyzer, log).RegisterRoutes(r)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok", "provider": providerName})
	})
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return r
}

type homeHandler struct {
	tmpl *template.Template
	data homePage
}

type homePage struct {
	Title    string
	Provider string
}

func newHomeHandler(providerName string) *homeHandler {
	return &homeHandler{
		tmpl: template.Must(template.ParseFS(web.Templates(), "index.html")),
		data: homePage{Title: "Emotion Detector", Provider: providerName},
	}
}

func (h *homeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.Execute(w, h.data); err != nil {
		zap.S().Warnw("[http] render home page failed", "error", err)
	}
}
