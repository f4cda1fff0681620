package middleware

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sangkips/retailhub-api/internal/config"
	"github.com/sangkips/retailhub-api/internal/presentation/http/dto/response"
)

const corsMaxAge = 12 * time.Hour

var (
	defaultOrigins = []string{"http://localhost:3000", "http://localhost:5173", "http://127.0.0.1:3000"}
	defaultMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions}
	defaultHeaders = []string{"Accept", "Authorization", "Content-Type", "Origin", response.RequestIDHeader}

	// headers the POS client needs on every deployment
	requiredHeaders = []string{IdempotencyKeyHeader}

	// downloads and checkout replays are read by the browser client
	exposedHeaders = []string{"Content-Length", "Content-Type", "Content-Disposition", response.RequestIDHeader, IdempotencyReplayHeader}
)

// CORSMiddleware builds the CORS policy for the store front-end. Empty
// settings fall back to local development values.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	headers := orDefault(cfg.AllowedHeaders, defaultHeaders)
	for _, h := range requiredHeaders {
		if !slices.Contains(headers, h) {
			headers = append(headers, h)
		}
	}

	return cors.New(cors.Config{
		AllowOrigins:     orDefault(cfg.AllowedOrigins, defaultOrigins),
		AllowMethods:     orDefault(cfg.AllowedMethods, defaultMethods),
		AllowHeaders:     headers,
		ExposeHeaders:    exposedHeaders,
		AllowCredentials: true,
		MaxAge:           corsMaxAge,
	})
}

func orDefault(values, fallback []string) []string {
	if len(values) == 0 {
		return slices.Clone(fallback)
	}
	return slices.Clone(values)
}
