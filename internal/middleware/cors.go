package middleware

import (
	"net/http"

	"github.com/codehub/backend/config"
	"github.com/rs/cors"
)

func AllowCors(cfg config.APIServerConfigs) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length", "Authorization"},
	})
}
