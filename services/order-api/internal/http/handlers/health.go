package handlers

import "net/http"

type HealthResp struct {
	Status string `json:"status"`
}

// Health godoc
// @Summary     Liveness probe
// @Tags        system
// @Produce     json
// @Success     200 {object} HealthResp
// @Router      /health [get]
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, HealthResp{Status: "healthy"})
}
