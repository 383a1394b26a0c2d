package app

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/dreamforge-ai/dreamforge/internal/config"
	"github.com/dreamforge-ai/dreamforge/internal/db"
	"github.com/dreamforge-ai/dreamforge/internal/imagegen"
	"github.com/dreamforge-ai/dreamforge/internal/repository"
	"github.com/dreamforge-ai/dreamforge/internal/service"
)

type App struct {
	Cfg          *config.Config
	DB           *sqlx.DB
	AuthService  *service.AuthService
	ImageService *service.ImageService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	imageRepository := repository.NewImageRepository(database)

	// Generative model provider. Without an API key the service starts
	// anyway and generation reports the model as unavailable.
	var provider imagegen.Provider
	if cfg.OpenAIAPIKey != "" {
		provider, err = imagegen.NewOpenAIProvider(imagegen.OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIImageModel,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize image provider: %v", err)
		}
		slog.Info("image model provider configured", "model", cfg.OpenAIImageModel)
	} else {
		slog.Warn("no OPENAI_API_KEY configured, image generation disabled")
	}

	// Services
	authService := service.NewAuthService(userRepository, cfg.JWTSecret, cfg.JWTExpiry, cfg.InitialCredits)
	imageService := service.NewImageService(imageRepository, userRepository, provider)

	return &App{
		Cfg:          cfg,
		DB:           database,
		AuthService:  authService,
		ImageService: imageService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
