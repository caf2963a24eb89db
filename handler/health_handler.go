package handler

import (
	"minibank/logger"
	"minibank/service"
	"net/http"
)

type HealthHandler struct {
	service *service.AccountService
}

func NewHealthHandler(service *service.AccountService) *HealthHandler {
	return &HealthHandler{service: service}
}

// HealthCheck godoc
// @Summary      Show the status of server
// @Description  Reports whether the account store answers, with the number of registered accounts.
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /health [get]
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.CountAccounts()
	if err != nil {
		logger.Log.WithError(err).Error("Health check could not reach the account store")
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{"status": "account store unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "API is healthy and running", "accounts": count})
}
