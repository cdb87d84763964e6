//go:build wireinject
// +build wireinject

package di

import (
	"studio/config"
	"studio/infras/backend"
	"studio/infras/otel"
	"studio/infras/redis"
	"studio/shared/cache"
	"studio/transport/http"
	"studio/transport/http/middleware"
	"studio/transport/http/router"

	galleryListener "studio/internal/domains/gallery/listener"
	galleryService "studio/internal/domains/gallery/service"
	notificationService "studio/internal/domains/notification/service"
	studioEncoder "studio/internal/domains/studio/encoder"
	studioService "studio/internal/domains/studio/service"

	galleryHandler "studio/internal/handlers/gallery"
	notificationHandler "studio/internal/handlers/notification"
	pageHandler "studio/internal/handlers/page"
	studioHandler "studio/internal/handlers/studio"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	otel.New,
	redis.New,
	backend.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var notificationDomain = wire.NewSet(
	notificationService.New,
)

var galleryDomain = wire.NewSet(
	galleryService.New,
	galleryListener.NewSource,
	galleryListener.New,
)

var studioDomain = wire.NewSet(
	studioEncoder.New,
	studioService.New,
)

var domains = wire.NewSet(
	notificationDomain,
	galleryDomain,
	studioDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	pageHandler.New,
	galleryHandler.New,
	studioHandler.New,
	notificationHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
