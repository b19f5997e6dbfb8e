package server

import (
	"io"
	"os"
	"time"

	"resumeradar/internal/analysis"
	"resumeradar/internal/config"
	"resumeradar/internal/errors"
	"resumeradar/internal/observability"
	"resumeradar/internal/rules"
	"resumeradar/internal/session"

	oteltrace "go.opentelemetry.io/otel/trace"
)

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// TLS Configuration
	TLSConfig config.TLSConfig

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Analysis
	Engine         *analysis.Engine
	DefaultPersona analysis.PersonaID
	Matcher        string
	RulesSource    rules.Source
	FeedBreaker    *rules.FeedBreaker
	Sessions       *session.Store
	MaxSessions    int

	Logger *errors.Logger

	metrics   *observability.Metrics
	tracer    oteltrace.Tracer
	out       io.Writer
	startedAt time.Time
}

// ServerConfig holds configuration for creating a Server instance
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig
	MaxSessions    int
	DefaultPersona analysis.PersonaID
	Matcher        string
}

// Analysis bundles what the loader produced at startup
type Analysis struct {
	Engine      *analysis.Engine
	Source      rules.Source
	FeedBreaker *rules.FeedBreaker
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(cfg ServerConfig, deps Analysis, logger *errors.Logger) (*Server, error) {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	sessions, err := session.NewStore(cfg.MaxSessions)
	if err != nil {
		return nil, err
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.Window,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		TLSConfig:      cfg.TLSConfig,
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Engine:         deps.Engine,
		DefaultPersona: cfg.DefaultPersona,
		Matcher:        cfg.Matcher,
		RulesSource:    deps.Source,
		FeedBreaker:    deps.FeedBreaker,
		Sessions:       sessions,
		MaxSessions:    cfg.MaxSessions,
		Logger:         logger,
		out:            os.Stdout,
		startedAt:      time.Now(),
	}, nil
}
