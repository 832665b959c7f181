package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/OgnjenAdzic28/portfolio/internal/errs"
	"github.com/OgnjenAdzic28/portfolio/internal/site"
)

// setupPageRoutes serves the HTML pages. With a hub, pages carry the live
// reload script and the socket is mounted at /ws.
func setupPageRoutes(r chi.Router, handlers *routeHandlers, hub *Hub) {
	r.Group(func(r chi.Router) {
		if hub != nil {
			r.Use(liveReloadWrapper)
		}
		r.Get("/", handlers.pageHandler.home())
		r.Get("/about", handlers.pageHandler.about())
		r.Get("/blog", handlers.pageHandler.blogIndex())
		r.Get("/blog/{slug}", handlers.pageHandler.post())
		r.NotFound(handlers.pageHandler.notFound())
	})
	if hub != nil {
		r.Handle("/ws", hub)
	}
}

func setupAPIRoutes(r chi.Router, handlers *routeHandlers) {
	responder := NewResponder(log.With().Str("handlerName", "api").Logger())
	r.Route("/api", func(r chi.Router) {
		r.Get("/posts", handlers.postHandler.getAllPosts())
		r.Get("/posts/featured", handlers.postHandler.getFeaturedPosts())
		r.Get("/posts/{slug}", handlers.postHandler.getPost())
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			responder.WriteError(w, errs.NewApiErr(http.StatusNotFound, "no such endpoint"))
		})
		r.MethodNotAllowed(methodNotAllowed(responder))
	})
	r.Get("/healthz", handlers.healthHandler.health())
}

func setupStaticRoutes(r chi.Router) {
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(site.Static())))
}
