package server

import (
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/OgnjenAdzic28/portfolio/internal/blog"
	"github.com/OgnjenAdzic28/portfolio/internal/errs"
	"github.com/OgnjenAdzic28/portfolio/internal/site"
)

// pageBase is the base href of pages served at their canonical paths.
const pageBase = "/"

type routeHandlers struct {
	pageHandler   pageHandler
	postHandler   postHandler
	healthHandler healthHandler
}

func initializeHandlers(pages *site.Site, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		pageHandler: pageHandler{
			pages:     pages,
			responder: NewResponder(log.With().Str("handlerName", "pageHandler").Logger()),
		},
		postHandler: postHandler{
			pages:     pages,
			responder: NewResponder(log.With().Str("handlerName", "postHandler").Logger()),
		},
		healthHandler: healthHandler{
			startupTime: startupTime,
			responder:   NewResponder(log.With().Str("handlerName", "healthHandler").Logger()),
		},
	}
}

type pageHandler struct {
	pages     *site.Site
	responder Responder
}

func (h pageHandler) home() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteHTML(w, http.StatusOK, func(out io.Writer) error {
			return h.pages.Home(r.Context(), out, pageBase)
		})
	}
}

func (h pageHandler) about() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteHTML(w, http.StatusOK, func(out io.Writer) error {
			return h.pages.About(out, pageBase)
		})
	}
}

func (h pageHandler) blogIndex() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteHTML(w, http.StatusOK, func(out io.Writer) error {
			return h.pages.Index(r.Context(), out, pageBase)
		})
	}
}

func (h pageHandler) post() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := h.pages.Posts().ResolvePost(r.Context(), chi.URLParam(r, "slug"))
		if !ok {
			h.notFound()(w, r)
			return
		}
		h.responder.WriteHTML(w, http.StatusOK, func(out io.Writer) error {
			return h.pages.Post(r.Context(), out, p, pageBase)
		})
	}
}

func (h pageHandler) notFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteHTML(w, http.StatusNotFound, func(out io.Writer) error {
			return h.pages.NotFound(out, pageBase)
		})
	}
}

type postHandler struct {
	pages     *site.Site
	responder Responder
}

// postResponse is a post with its rendered body.
type postResponse struct {
	*blog.Post
	Date string `json:"date"`
	HTML string `json:"html"`
}

func (h postHandler) getAllPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := h.pages.Posts().AllPosts(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to list posts", err))
			return
		}
		h.responder.WriteJSON(w, posts)
	}
}

func (h postHandler) getFeaturedPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := h.pages.Posts().FeaturedPosts(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to list featured posts", err))
			return
		}
		h.responder.WriteJSON(w, posts)
	}
}

func (h postHandler) getPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		p, ok := h.pages.Posts().ResolvePost(r.Context(), slug)
		if !ok {
			h.responder.WriteError(w, errs.NewPostNotFoundError(slug))
			return
		}
		html, err := h.pages.PostHTML(r.Context(), p)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to render post", err))
			return
		}
		h.responder.WriteJSON(w, postResponse{Post: p, Date: p.Date(), HTML: string(html)})
	}
}

type healthHandler struct {
	startupTime time.Time
	responder   Responder
}

func (h healthHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, map[string]any{
			"status":      "ok",
			"startupTime": h.startupTime.UTC().Format(time.RFC3339),
			"uptime":      time.Since(h.startupTime).Round(time.Second).String(),
		})
	}
}

func methodNotAllowed(responder Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder.WriteError(w, errs.NewMethodNotAllowedError(r.Method))
	}
}
