package health

import (
	"context"
	"net/http"

	"github.com/tiendaonline/tienda-api/app/api"
	"github.com/tiendaonline/tienda-api/app/logging"
	"github.com/tiendaonline/tienda-api/app/metrics"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"mensaje,omitempty"`
	Error   string `json:"error,omitempty"`
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// HandleTestConnection opens and releases one database connection.
func (h *HealthHandler) HandleTestConnection(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		metrics.RecordConnectivity(false)
		logging.FromContext(r.Context()).Error("database connectivity check", "error", err)
		api.JSONResponse(w, http.StatusInternalServerError, StatusResponse{
			Status: StatusUnhealthy,
			Error:  "No se pudo conectar a la base de datos",
		})
		return
	}

	metrics.RecordConnectivity(true)
	api.OKResponse(w, StatusResponse{
		Status:  StatusHealthy,
		Message: "Conexión exitosa a la base de datos",
	})
}
