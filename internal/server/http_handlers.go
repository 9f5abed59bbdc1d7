package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"tradcv/internal/ai"
	tradcvErrors "tradcv/internal/errors"
)

// getHealthCheckTimeout returns the configured health check timeout
func (s *Server) getHealthCheckTimeout() time.Duration {
	return s.AppConfig.Observability.HealthCheck.Timeout
}

// healthHandler provides a comprehensive health check endpoint including AI model status
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"status":  "healthy",
		"service": "tradcv",
		"version": s.Version,
	}

	// Check AI model availability for both operations
	aiStatus := s.checkAIModelsHealth()
	response["ai_models"] = aiStatus

	// Check circuit breaker status
	response["circuit_breakers"] = s.checkCircuitBreakerHealth()

	if anyModelUnavailable(aiStatus) {
		response["status"] = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode health response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// anyModelUnavailable reports whether any operation's model is down. Entries
// are *ai.ModelInfo when the service came up and a plain map when service
// creation itself failed.
func anyModelUnavailable(aiStatus map[string]any) bool {
	for _, modelStatus := range aiStatus {
		switch info := modelStatus.(type) {
		case *ai.ModelInfo:
			if info != nil && !info.Available {
				return true
			}
		case map[string]any:
			if avail, ok := info["available"].(bool); ok && !avail {
				return true
			}
		}
	}
	return false
}

// checkAIModelsHealth checks the health of the AI models behind each operation
func (s *Server) checkAIModelsHealth() map[string]any {
	timeout := s.getHealthCheckTimeout()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	aiStatus := make(map[string]any)

	parseConfig := s.AppConfig.GetParseConfig()
	if parseService, err := ai.NewService(&parseConfig, ai.OperationParse, s.Logger); err == nil {
		aiStatus[ai.OperationParse] = parseService.GetModelInfo(ctx)
	} else {
		aiStatus[ai.OperationParse] = map[string]any{
			"available": false,
			"error":     fmt.Sprintf("Failed to create parse service: %v", err),
		}
	}

	forgeConfig := s.AppConfig.GetForgeConfig()
	if forgeService, err := ai.NewService(&forgeConfig, ai.OperationForge, s.Logger); err == nil {
		aiStatus[ai.OperationForge] = forgeService.GetModelInfo(ctx)
	} else {
		aiStatus[ai.OperationForge] = map[string]any{
			"available": false,
			"error":     fmt.Sprintf("Failed to create forge service: %v", err),
		}
	}

	return aiStatus
}

// checkCircuitBreakerHealth checks the health of circuit breakers for both AI operations
func (s *Server) checkCircuitBreakerHealth() map[string]any {
	circuitBreakerStatus := make(map[string]any)

	for _, operation := range []string{ai.OperationParse, ai.OperationForge} {
		var opConfig = s.AppConfig.GetParseConfig()
		if operation == ai.OperationForge {
			opConfig = s.AppConfig.GetForgeConfig()
		}

		if _, err := ai.NewService(&opConfig, operation, s.Logger); err == nil {
			circuitBreakerStatus[operation] = map[string]any{
				"available": true,
				"message":   fmt.Sprintf("Circuit breaker integrated with %s service", operation),
			}
		} else {
			circuitBreakerStatus[operation] = map[string]any{
				"available": false,
				"error":     fmt.Sprintf("Failed to create %s service: %v", operation, err),
			}
		}
	}

	return circuitBreakerStatus
}

// statsHandler provides server statistics including session and rate limiting info
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"service": "tradcv",
		"version": s.Version,
		"server": map[string]any{
			"max_upload_size_bytes": s.MaxUploadSize,
		},
	}

	// Add session store stats
	response["sessions"] = s.Sessions.GetStats()

	// Add rate limiting stats if enabled
	if s.RateLimiter != nil {
		response["rate_limiting"] = s.RateLimiter.GetStats()
	} else {
		response["rate_limiting"] = map[string]any{
			"enabled": false,
		}
	}

	// Add configuration info
	if s.RateLimit != nil {
		response["rate_limit_config"] = map[string]any{
			"enabled":          s.RateLimit.Enabled,
			"requests_per_min": s.RateLimit.RequestsPerMin,
			"burst_capacity":   s.RateLimit.BurstCapacity,
			"by_ip":            s.RateLimit.ByIP,
			"by_api_key":       s.RateLimit.ByAPIKey,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode stats response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// parseJSONRequest parses JSON request body into the provided struct
func parseJSONRequest(r *http.Request, v any) error {
	if r.Header.Get("Content-Type") != "application/json" {
		return fmt.Errorf("content-type must be application/json")
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return fmt.Errorf("request body too large (limit is %d bytes)", maxBytesErr.Limit)
		}
		return fmt.Errorf("failed to read request body: %w", err)
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.Printf("Failed to close request body: %v", err)
		}
	}()

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	return nil
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// writeErrorResponse writes a standardized error response
func writeErrorResponse(w http.ResponseWriter, error, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error:   error,
		Message: message,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode error response: %v", err)
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}

// writeAppError maps application errors to HTTP status codes
func writeAppError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError

	var appErr *tradcvErrors.AppError
	if errors.As(err, &appErr) {
		switch {
		case appErr.Code == tradcvErrors.ErrCodeSessionNotFound:
			statusCode = http.StatusNotFound
		case appErr.Code == tradcvErrors.ErrCodeUnsupportedFormat:
			statusCode = http.StatusUnsupportedMediaType
		case appErr.Code == tradcvErrors.ErrCodeInvalidRequest,
			appErr.Type == tradcvErrors.ErrorTypeValidation,
			appErr.Type == tradcvErrors.ErrorTypeExtraction:
			statusCode = http.StatusBadRequest
		}
		writeErrorResponse(w, appErr.Code, appErr.Message, statusCode)
		return
	}

	writeErrorResponse(w, "Internal error", err.Error(), statusCode)
}
