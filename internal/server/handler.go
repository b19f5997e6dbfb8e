package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"time"

	apperrors "resumeradar/internal/errors"
	"resumeradar/internal/types"
)

// healthHandler reports liveness plus the state of the loaded rule tables
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"status":  "healthy",
		"service": "resumeradar",
		"version": s.Version,
		"rules": map[string]any{
			"trends":     s.RulesSource.Trends,
			"rules_file": s.RulesSource.RulesFile,
		},
	}

	// The feed is only read at startup, so a tripped breaker degrades nothing at request time
	if s.FeedBreaker != nil {
		response["trend_feed"] = map[string]any{
			"healthy": s.FeedBreaker.IsHealthy(),
			"breaker": s.FeedBreaker.GetStats(),
			"error":   s.RulesSource.FeedError,
		}
	}

	writeJSON(w, http.StatusOK, response)
}

// statsHandler provides server statistics including rate limiting info
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	rules := s.Engine.Rules()
	response := map[string]any{
		"service":        "resumeradar",
		"version":        s.Version,
		"uptime_seconds": int64(time.Since(s.startedAt).Seconds()),
		"server": map[string]any{
			"max_request_size_bytes": s.MaxRequestSize,
		},
		"sessions": map[string]any{
			"active": s.Sessions.Len(),
			"max":    s.MaxSessions,
		},
		"analysis": map[string]any{
			"default_persona": s.DefaultPersona,
			"matcher":         s.Matcher,
			"personas":        len(rules.Personas),
			"trends":          len(rules.Trends),
			"trend_source":    s.RulesSource.Trends,
		},
	}

	if s.RateLimiter != nil {
		response["rate_limiting"] = s.RateLimiter.GetStats()
	} else {
		response["rate_limiting"] = map[string]any{
			"enabled": false,
		}
	}

	if s.RateLimit != nil {
		response["rate_limit_config"] = map[string]any{
			"enabled":          s.RateLimit.Enabled,
			"requests_per_min": s.RateLimit.RequestsPerMin,
			"burst_capacity":   s.RateLimit.BurstCapacity,
			"by_ip":            s.RateLimit.ByIP,
			"by_api_key":       s.RateLimit.ByAPIKey,
		}
	}

	writeJSON(w, http.StatusOK, response)
}

// parseJSONRequest parses JSON request body into the provided struct
func parseJSONRequest(r *http.Request, v any) error {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return apperrors.NewValidationError(apperrors.ErrCodeInvalidRequest,
			"content-type must be application/json", nil)
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return apperrors.NewValidationError(apperrors.ErrCodeRequestTooLarge,
				fmt.Sprintf("request body too large (limit is %d bytes)", maxBytesErr.Limit), nil)
		}
		return apperrors.NewIOError(apperrors.ErrCodeInvalidRequest, "failed to read request body", err)
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.Printf("Failed to close request body: %v", err)
		}
	}()

	if err := json.Unmarshal(body, v); err != nil {
		return apperrors.NewValidationError(apperrors.ErrCodeInvalidRequest, "failed to parse JSON", err)
	}
	return nil
}

// statusFor maps an error onto an HTTP status code
func statusFor(err error) int {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Code {
	case apperrors.ErrCodeSessionNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeUnknownSuggestion:
		return http.StatusConflict
	case apperrors.ErrCodeRequestTooLarge:
		return http.StatusRequestEntityTooLarge
	case apperrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	}
	if appErr.Type == apperrors.ErrorTypeValidation {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// writeError writes err with the status statusFor picks
func writeError(w http.ResponseWriter, err error) {
	writeErrorResponse(w, statusFor(err), err)
}

// writeErrorResponse writes a standardized error response
func writeErrorResponse(w http.ResponseWriter, statusCode int, err error) {
	response := types.ErrorResponse{Error: err.Error()}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		response.Error = appErr.Message
		response.Code = appErr.Code
		if appErr.Cause != nil {
			response.Details = appErr.Cause.Error()
		}
	}
	writeJSON(w, statusCode, response)
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
