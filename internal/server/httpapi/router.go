package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type Options struct {
	Users       UserService
	Notes       NoteService
	Tokens      TokenVerifier
	Store       Pinger
	Metrics     *Metrics
	Logger      logging.Logger
	CORSOrigins []string
}

// NewRouter mounts the API twice: under /api and at the root.
func NewRouter(o Options) http.Handler {
	if o.Metrics == nil {
		o.Metrics = NewMetrics()
	}
	if o.Logger == nil {
		o.Logger = logging.Nop{}
	}

	h := &handler{
		users:   o.Users,
		notes:   o.Notes,
		tokens:  o.Tokens,
		store:   o.Store,
		metrics: o.Metrics,
		logger:  o.Logger.With("module", "http"),
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(h.metrics.middleware)
	r.Use(h.accessLog)
	r.Use(h.recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: o.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", common.AccessTokenHeaderName, requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, msgRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
	})

	r.Get("/healthz", h.health)
	r.Method(http.MethodGet, "/metrics", h.metrics.Handler())

	r.Route("/api", h.mount)
	h.mount(r)

	return r
}

func (h *handler) mount(r chi.Router) {
	r.Route("/user", func(r chi.Router) {
		r.Post("/signup", h.signup)
		r.Post("/login", h.login)
	})

	r.Route("/notes", func(r chi.Router) {
		r.Use(h.authGate)
		r.Get("/", h.listNotes)
		r.Post("/", h.createNote)
		r.Get("/search", h.searchNotes)
		r.Put("/{id}", h.updateNote)
		r.Delete("/{id}", h.deleteNote)
	})
}
