package server

import (
	"time"

	"tradcv/internal/config"
	tradcvErrors "tradcv/internal/errors"
	"tradcv/internal/render"
	"tradcv/internal/session"

	"tradcv/internal/cv"
)

// ForgeRequest represents the request body for the forge endpoint
type ForgeRequest struct {
	JobDescription string `json:"jobDescription"`
}

// SessionResponse represents a session payload returned to clients
type SessionResponse struct {
	SessionID string    `json:"sessionId"`
	Record    cv.Record `json:"record"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// TLS Configuration
	TLSConfig config.TLSConfig

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Upload size limit for multipart CV uploads
	MaxUploadSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *LimiterManager

	// Session storage and PDF rendering
	Sessions *session.Store
	Renderer *render.Adapter

	// Logger
	Logger *tradcvErrors.Logger
}

// NewServer creates a new Server instance from the application configuration
func NewServer(appCfg *config.Config, version string, logger *tradcvErrors.Logger) *Server {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range appCfg.Server.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	rateLimit := appCfg.Server.RateLimit
	var rateLimiter *LimiterManager
	if rateLimit.Enabled {
		rateLimiter = NewLimiterManager(
			rateLimit.RequestsPerMin,
			rateLimit.BurstCapacity,
			logger,
		)
	}

	backend := render.NewChromeBackend(appCfg.Render.ChromePath, appCfg.Render.Timeout)

	return &Server{
		Host:          appCfg.Server.Host,
		Port:          appCfg.Server.Port,
		Version:       version,
		AppConfig:     appCfg,
		TLSConfig:     appCfg.Server.TLS,
		APIKeys:       apiKeyMap,
		ReadTimeout:   appCfg.Server.ReadTimeout,
		WriteTimeout:  appCfg.Server.WriteTimeout,
		IdleTimeout:   appCfg.Server.IdleTimeout,
		MaxUploadSize: appCfg.App.MaxUploadSize,
		RateLimit:     &rateLimit,
		RateLimiter:   rateLimiter,
		Sessions:      session.NewStore(appCfg.Server.SessionTTL, logger),
		Renderer:      render.New(backend, logger),
		Logger:        logger,
	}
}
