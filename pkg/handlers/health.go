package handlers

import (
	"net/http"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/config"
)

// PingResponse contains service status and version information.
type PingResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	Service     string `json:"service"`
	GoVersion   string `json:"go_version"`
	Hostname    string `json:"hostname"`
	Environment string `json:"environment"`
}

// HealthResponse contains the health probe payload.
type HealthResponse struct {
	Status           string `json:"status"`
	Version          string `json:"version"`
	ConnectedClients int    `json:"connected_clients"`
}

// ClientCounter reports how many live-update clients are connected.
// Implemented by realtime.Hub.
type ClientCounter interface {
	ClientCount() int
}

// HealthHandler handles health check and ping endpoints.
type HealthHandler struct {
	cfg     *config.Config
	clients ClientCounter
	logger  *zap.Logger
}

// NewHealthHandler creates a new HealthHandler. clients may be nil.
func NewHealthHandler(cfg *config.Config, clients ClientCounter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{cfg: cfg, clients: clients, logger: logger}
}

// RegisterRoutes registers the health handler's routes on the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /ping", h.Ping)
}

// Health handles GET /health requests.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:  "ok",
		Version: h.cfg.Version,
	}
	if h.clients != nil {
		resp.ConnectedClients = h.clients.ClientCount()
	}

	if err := WriteJSON(w, http.StatusOK, resp); err != nil {
		h.logger.Error("Failed to write health response", zap.Error(err))
	}
}

// Ping handles GET /ping requests.
func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	hostname, _ := os.Hostname()

	resp := PingResponse{
		Status:      "ok",
		Version:     h.cfg.Version,
		Service:     "taskflow",
		GoVersion:   runtime.Version(),
		Hostname:    hostname,
		Environment: h.cfg.Env,
	}

	if err := WriteJSON(w, http.StatusOK, resp); err != nil {
		h.logger.Error("Failed to write ping response", zap.Error(err))
	}
}
