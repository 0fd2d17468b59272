package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nicolasbonaa/controle-compras/internal/service"
)

// HealthController reports process and store liveness.
type HealthController struct {
	service    service.SolicitacaoService
	production bool
}

func NewHealthController(svc service.SolicitacaoService, production bool) *HealthController {
	return &HealthController{service: svc, production: production}
}

// Check probes the store with a cheap count and reports 503 when the
// probe fails.
// @Summary      Health check
// @Produce      json
// @Success      200 {object} Envelope
// @Failure      503 {object} ErrorEnvelope
// @Router       /health [get]
func (ctl *HealthController) Check(c *gin.Context) {
	if err := ctl.service.Ping(); err != nil {
		GetLogger().WithError(err).Warn("health probe failed")
		Fail(c, http.StatusServiceUnavailable, T(c, "error.unhealthy"), nil)
		return
	}

	Success(c, http.StatusOK, "", gin.H{"status": "healthy"})
}
