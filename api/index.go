package handler

import (
	"net/http"
	"studio/config"
	"studio/di"
	"studio/shared/logger"
	"sync"

	"github.com/rs/zerolog/log"
)

var (
	once    sync.Once
	handler http.Handler
)

// Handler is the serverless entrypoint. The service graph is built once per instance
// and the gallery loaded before the first request is served.
func Handler(writer http.ResponseWriter, request *http.Request) {
	request.RequestURI = request.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger(cfg)

		app := di.InitializeService()

		if _, err := app.Gallery.Reload(request.Context()); err != nil {
			log.Warn().Err(err).Msg("Initial gallery load failed")
		}

		handler = app.Handler()
	})

	handler.ServeHTTP(writer, request)
}
