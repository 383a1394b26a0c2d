package routes

import (
	"net/http"

	"github.com/dreamforge-ai/dreamforge/internal/app"
	"github.com/dreamforge-ai/dreamforge/internal/handler"
	"github.com/dreamforge-ai/dreamforge/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService)
	image := handler.NewImageHandler(app.ImageService)
	health := handler.NewHealthHandler(app.DB, app.Cfg.AppName)

	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /{$}", health.Home)
	mux.HandleFunc("GET /health", health.Health)

	// Auth (rate limited)
	rateLimiter := middleware.RateLimitAuth()
	mux.HandleFunc("POST /api/user/register", rateLimiter(auth.Register))
	mux.HandleFunc("POST /api/user/login", rateLimiter(auth.Login))
	mux.HandleFunc("GET /api/user/credits", middleware.RequireAuth(auth.Credits))

	// Image pipeline
	mux.HandleFunc("POST /generate-image", middleware.RequireAuth(image.Generate))
	mux.HandleFunc("POST /apply-style", middleware.RequireAuth(image.ApplyStyle))
	mux.HandleFunc("GET /api/images/user", middleware.RequireAuth(image.List))
	mux.HandleFunc("DELETE /api/images/{id}", middleware.RequireAuth(image.Delete))
	mux.HandleFunc("GET /api/images/download/{id}", middleware.RequireAuth(image.Download))

	// Global middleware
	return middleware.Chain(mux,
		middleware.RequestLogging,
		middleware.CORS(app.Cfg.CORSOrigin),
		middleware.AuthMiddleware(app.AuthService),
	)
}
