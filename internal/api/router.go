package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ogrim/mimir/internal/gate"
	"github.com/ogrim/mimir/internal/sse"
	"github.com/ogrim/mimir/internal/wikiservice"
)

// NewRouter creates a chi router with all API routes mounted.
// keeper guards the gated routes; sseHandler, if non-nil, is mounted at
// GET /events.
func NewRouter(svc *wikiservice.Service, keeper *gate.Keeper, broker *sse.Broker, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc, keeper, broker)
	ih := NewImageHandler()

	r := chi.NewRouter()
	gated := RequireUnlocked(keeper)

	// Articles CRUD. Static segments win over the title catch-all; writes sit
	// behind the gate, reads do not.
	r.Get("/articles", h.ListArticles)
	r.With(gated).Post("/articles", h.CreateArticle)
	r.With(gated).Put("/articles/{id}", h.UpdateArticle)
	r.Get("/articles/*", h.GetArticle)

	// Navigation.
	r.Get("/random", h.RandomArticle)
	r.Get("/resolve", h.Resolve)

	// Tap gate.
	r.Get("/gate", h.GateStatus)
	r.Post("/gate/tap", h.GateTap)

	// Snapshot transfer. Export sits behind the gate; import does not, so a
	// fresh locked session can restore a backup.
	r.With(gated).Get("/export", h.Export)
	r.Post("/import", h.Import)

	// Inline image upload (gated, editing surface).
	r.With(gated).Post("/images", ih.Upload)

	// SSE endpoint.
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
