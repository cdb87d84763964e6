package router

import (
	"studio/internal/handlers/gallery"
	"studio/internal/handlers/notification"
	"studio/internal/handlers/page"
	"studio/internal/handlers/studio"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Page         page.Handler
	Gallery      gallery.Handler
	Studio       studio.Handler
	Notification notification.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	r.DomainHandlers.Page.Router(router)

	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Gallery.Router(routerGroup)
		r.DomainHandlers.Studio.Router(routerGroup)
		r.DomainHandlers.Notification.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
