package main

import (
	"studio/config"
	"studio/di"
	"studio/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	http := di.InitializeService()
	http.Serve()
}
