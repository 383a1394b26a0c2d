package handler

import (
	"net/http"

	"github.com/jmoiron/sqlx"
)

type healthHandler struct {
	db      *sqlx.DB
	appName string
}

func NewHealthHandler(db *sqlx.DB, appName string) *healthHandler {
	return &healthHandler{
		db:      db,
		appName: appName,
	}
}

// Health reports store connectivity. It always answers 200; the body carries
// the degraded state so probes and dashboards can distinguish.
func (h *healthHandler) Health(w http.ResponseWriter, r *http.Request) {
	err := h.db.Ping()
	if err != nil {
		RespondJSON(w, http.StatusOK, map[string]string{"status": "Unhealthy", "db": "Not Connected"})
		return
	}
	RespondJSON(w, http.StatusOK, map[string]string{"status": "Healthy", "db": "Connected"})
}

// Home is the service banner at the root path.
func (h *healthHandler) Home(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, map[string]string{"message": h.appName + " API running"})
}
