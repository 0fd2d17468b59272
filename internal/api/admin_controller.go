package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nicolasbonaa/controle-compras/internal/repository"
)

// AdminController exposes operational endpoints.
type AdminController struct {
	repo       repository.SolicitacaoRepository
	production bool
}

func NewAdminController(repo repository.SolicitacaoRepository, production bool) *AdminController {
	return &AdminController{repo: repo, production: production}
}

// CreateTable creates the solicitacoes table and its indexes when they
// do not exist yet. Safe to call repeatedly.
// @Summary      Ensure the schema exists
// @Produce      json
// @Success      200 {object} Envelope
// @Failure      500 {object} ErrorEnvelope
// @Router       /admin/create-table [post]
func (ctl *AdminController) CreateTable(c *gin.Context) {
	if err := ctl.repo.EnsureSchema(); err != nil {
		RespondError(c, err, ctl.production)
		return
	}

	GetLogger().Info("schema ensured via admin endpoint")
	Success(c, http.StatusOK, T(c, "success.schema"), nil)
}
