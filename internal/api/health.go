package api

import (
	"net/http"

	"github.com/signalytics/pokedex/internal/server"
)

type healthResponse struct {
	Status string `json:"status"`
}

// HealthHandler reports liveness, including store reachability.
func HealthHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sqlDB, err := srv.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(r.Context())
		}
		if err != nil {
			srv.Logger.Error("health check: database unreachable", "error", err)
			respondError(srv, w, http.StatusInternalServerError,
				codeInternal, "database unreachable")
			return
		}
		respondJSON(srv, w, http.StatusOK, healthResponse{Status: "ok"})
	})
}
