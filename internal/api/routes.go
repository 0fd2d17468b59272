package api

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/nicolasbonaa/controle-compras/internal/config"
	"github.com/nicolasbonaa/controle-compras/internal/metrics"
)

// Controllers groups everything the router wires up.
type Controllers struct {
	Solicitacao *SolicitacaoController
	Health      *HealthController
	Admin       *AdminController
	Dashboard   *DashboardController
}

// SetupRouter builds the gin engine with the full middleware chain and
// route table. assetsDir points at the web/ directory holding templates
// and static files; leave it empty to skip the dashboard routes, which
// keeps handler tests independent of the filesystem.
func SetupRouter(cfg *config.Config, ctl Controllers, csrfStore *CSRFStore, assetsDir string) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(RequestLogMiddleware())
	router.Use(SecurityHeadersMiddleware())
	router.Use(CORSMiddleware(&cfg.CORS))
	router.Use(HTTPSRedirectMiddleware(cfg.IsProduction()))
	router.Use(RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	router.Use(CSRFMiddleware(csrfStore))
	router.Use(LanguageMiddleware())
	router.Use(ErrorHandlerMiddleware(cfg.IsProduction()))

	router.GET("/health", ctl.Health.Check)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	router.GET("/csrf-token", func(c *gin.Context) {
		token, err := IssueCSRFToken(c, csrfStore)
		if err != nil {
			RespondError(c, err, cfg.IsProduction())
			return
		}
		Success(c, http.StatusOK, "", gin.H{"token": token})
	})

	router.GET("/solicitacoes", ctl.Solicitacao.List)
	router.POST("/solicitacoes", ctl.Solicitacao.Create)
	router.GET("/solicitacoes/stats", ctl.Solicitacao.Stats)
	router.GET("/solicitacoes/export", ctl.Solicitacao.Export)
	router.GET("/solicitacoes/:id", ctl.Solicitacao.Get)
	router.PUT("/solicitacoes/:id", ctl.Solicitacao.Update)
	router.PATCH("/solicitacoes/:id/status", ctl.Solicitacao.UpdateStatus)
	router.DELETE("/solicitacoes/:id", ctl.Solicitacao.Delete)

	router.POST("/admin/create-table", ctl.Admin.CreateTable)

	if assetsDir != "" && ctl.Dashboard != nil {
		router.LoadHTMLGlob(filepath.Join(assetsDir, "templates", "*.html"))
		router.Static("/static", filepath.Join(assetsDir, "static"))
		router.GET("/", ctl.Dashboard.Index)
	}

	router.NoRoute(func(c *gin.Context) {
		Fail(c, http.StatusNotFound, T(c, "error.route_not_found"), nil)
	})

	return router
}
