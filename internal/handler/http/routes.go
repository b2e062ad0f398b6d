package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-quote-keeper/internal/app"
	"github.com/MKhiriev/go-quote-keeper/internal/utils"
)

// Init builds the router with the full middleware chain.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		middleware.RealIP,
		h.withTraceID,
		h.withLogging,
		middleware.Recoverer,
		h.withCORS(),
		withGZip,
	)
	if h.cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.cfg.RequestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/version/", h.getServerVersion)

		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Post("/api/auth/refresh", h.refresh)
		r.Post("/api/auth/logout", h.logout)
		r.Get("/api/auth/status", h.status)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/users/profile", h.getProfile)
		r.Put("/api/users/profile", h.updateProfile)
		r.Put("/api/users/tier", h.updateTier)
		r.Delete("/api/users/account", h.deleteAccount)

		r.Get("/api/folders", h.listRootFolders)
		r.Post("/api/folders", h.createRootFolder)
		r.Get("/api/folders/{id}", h.getFolder)
		r.Put("/api/folders/{id}", h.renameFolder)
		r.Delete("/api/folders/{id}", h.deleteFolder)
		r.Get("/api/folders/{id}/tree", h.getFolderTree)
		r.Get("/api/folders/{id}/path", h.getFolderPath)
		r.Post("/api/folders/{id}/subfolders", h.createSubfolder)

		r.Get("/api/quotes", h.listQuotes)
		r.Post("/api/quotes", h.createQuote)
		r.Get("/api/quotes/{id}", h.getQuote)
		r.Put("/api/quotes/{id}", h.updateQuote)
		r.Delete("/api/quotes/{id}", h.deleteQuote)

		r.Get("/api/tags", h.listTags)
		r.Post("/api/tags", h.createTag)
		r.Put("/api/tags/{id}", h.updateTag)
		r.Delete("/api/tags/{id}", h.deleteTag)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, app.MsgNotFound, http.StatusNotFound)
	})
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
