package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/aashari/go-ai-proxy-server/internal/logger"
	"github.com/aashari/go-ai-proxy-server/internal/types"
)

// Health service states
const (
	statusHealthy  = "healthy"
	statusDegraded = "degraded"

	serviceConfigured = "configured"
	serviceMissingKey = "missing_key"
	serviceUp         = "up"
	serviceUnhealthy  = "unhealthy"
	serviceDisabled   = "disabled"
)

// RootHandler reports that the server is running
// @Summary      Liveness banner
// @Tags         system
// @Produce      plain
// @Success      200  {string}  string  "✅ AI Proxy Server Running!"
// @Router       / [get]
func (h *APIHandlers) RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(RootBanner))
}

// FaviconHandler answers browser favicon probes with an empty 204
func (h *APIHandlers) FaviconHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// HealthHandler handles the health check endpoint
// @Summary      Health check endpoint
// @Description  Returns per-vendor credential status, usage log connectivity and version details
// @Tags         system
// @Produce      json
// @Success      200  {object}  types.HealthResponse  "Structured health response"
// @Router       /health [get]
func (h *APIHandlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	services := make(map[string]string, len(h.keyStatus)+1)
	overallStatus := statusHealthy

	// A missing key only disables the routes of that vendor
	for vendor, configured := range h.keyStatus {
		if configured {
			services[vendor] = serviceConfigured
			continue
		}
		services[vendor] = serviceMissingKey
		overallStatus = statusDegraded
	}

	switch {
	case h.database == nil:
		services["database"] = serviceDisabled
	case h.database.HealthCheck(r.Context()) != nil:
		services["database"] = serviceUnhealthy
		overallStatus = statusDegraded
	default:
		services["database"] = serviceUp
	}

	response := types.HealthResponse{
		Status:    overallStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  services,
		Details: map[string]interface{}{
			"version":     h.version,
			"environment": h.environment,
			"uptime":      int64(time.Since(h.startTime).Seconds()),
		},
	}

	if overallStatus != statusHealthy {
		logger.DebugCtx(logger.WithComponent(r.Context(), logger.ComponentNames.Handler),
			"Health check degraded",
			"degraded_services", degradedServices(services))
	}

	writeJSON(r.Context(), w, http.StatusOK, response)
}

func degradedServices(services map[string]string) []string {
	var names []string
	for name, state := range services {
		if state == serviceMissingKey || state == serviceUnhealthy {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
