// Copyright (c) 2025-2026 Studio Pickens
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/studiopickens/studio-api/internal/middleware"
	"github.com/studiopickens/studio-api/internal/store"
)

// Routes assembles the full API router: base chi middleware, security
// headers, CORS, the request gate, per-IP rate limiting and the resource
// routes.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))

	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(h.cfg.IsDevelopment())))
	r.Use(middleware.CORS(h.cfg.CORSOrigins))
	r.Use(middleware.RequestGate)

	authLimiter := middleware.NewRateLimiter(h.cfg.AuthRateMax, h.cfg.AuthRateWindow)
	apiLimiter := middleware.NewRateLimiter(h.cfg.APIRateMax, h.cfg.APIRateWindow)

	requireAuth := middleware.RequireAuth(h.tokens)

	production := h.cfg.IsProduction()
	wrap := func(fn HandlerFunc) http.HandlerFunc {
		return Wrap(production, fn)
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		WriteError(w, NewError(http.StatusNotFound, CodeRouteNotFound,
			"Route not found: "+req.Method+" "+req.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		WriteError(w, NewError(http.StatusMethodNotAllowed, CodeRouteNotFound,
			"Method not allowed: "+req.Method+" "+req.URL.Path))
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(apiLimiter.Middleware())

		api.Route("/auth", func(ar chi.Router) {
			ar.With(authLimiter.Middleware()).Post("/login", wrap(h.Login))
			ar.Post("/logout", wrap(h.Logout))
			ar.With(requireAuth).Get("/me", wrap(h.Me))
			ar.With(requireAuth).Post("/change-password", wrap(h.ChangePassword))
		})

		api.Get("/health", wrap(h.Health))

		admin := api.With(requireAuth, middleware.RequireAdmin)

		hero := resources[store.KindHero]
		api.Get("/hero", wrap(h.GetDocument(hero)))
		admin.Put("/hero/{id}", wrap(h.PutDocument(hero, true)))

		work := resources[store.KindWork]
		api.Get("/work", wrap(h.GetDocument(work)))
		admin.Put("/work", wrap(h.PutDocument(work, false)))
		admin.Post("/work", wrap(h.AddItem(work)))
		admin.Delete("/work/{id}", wrap(h.DeleteItem(work)))

		process := resources[store.KindProcess]
		api.Get("/process", wrap(h.GetDocument(process)))
		admin.Put("/process/{id}", wrap(h.PutDocument(process, true)))
		admin.Post("/process/steps", wrap(h.AddItem(process)))
		admin.Put("/process/steps/{id}", wrap(h.UpdateItem(process)))
		admin.Delete("/process/steps/{id}", wrap(h.DeleteItem(process)))

		story := resources[store.KindStory]
		api.Get("/story", wrap(h.GetDocument(story)))
		admin.Put("/story/{id}", wrap(h.PutDocument(story, true)))

		locations := resources[store.KindLocations]
		api.Get("/locations", wrap(h.GetDocument(locations)))
		admin.Put("/locations/{id}", wrap(h.PutDocument(locations, true)))

		contact := resources[store.KindContact]
		api.Get("/contact", wrap(h.GetDocument(contact)))
		admin.Put("/contact/{id}", wrap(h.PutDocument(contact, true)))

		faq := resources[store.KindFAQ]
		api.Get("/faq", wrap(h.GetDocument(faq)))
		admin.Put("/faq", wrap(h.PutDocument(faq, false)))
		admin.Post("/faq", wrap(h.AddItem(faq)))
		admin.Delete("/faq/{id}", wrap(h.DeleteItem(faq)))

		admin.Post("/upload", wrap(h.Upload))
		api.Get("/images", wrap(h.ListImages))
	})

	// Uploaded assets and site imagery are served straight from disk.
	r.Handle("/images/*", http.StripPrefix("/images/",
		http.FileServer(http.Dir(h.cfg.ImagesDir()))))

	return r
}
