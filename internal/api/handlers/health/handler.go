package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/MSH-ConflictService/internal/api/handlers"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Logger interface {
	Warn(format string, v ...interface{})
}

// Response health check body
type Response struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

type Handler struct {
	db     Pinger
	logger Logger
}

func NewHandler(db Pinger, logger Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

// Handle GET /healthz
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn("GET /healthz - database unreachable: %v", err)
		handlers.RespondJSON(w, http.StatusServiceUnavailable, Response{
			Status:   "unhealthy",
			Database: "disconnected",
		})
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{
		Status:   "ok",
		Database: "connected",
	})
}
