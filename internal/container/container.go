package container

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/nicolasbonaa/controle-compras/internal/api"
	"github.com/nicolasbonaa/controle-compras/internal/config"
	"github.com/nicolasbonaa/controle-compras/internal/database"
	"github.com/nicolasbonaa/controle-compras/internal/repository"
	"github.com/nicolasbonaa/controle-compras/internal/service"
)

// Container holds the application's long-lived collaborators, wired in
// dependency order.
type Container struct {
	Config *config.Config
	DB     *gorm.DB

	Repository repository.SolicitacaoRepository

	SolicitacaoService service.SolicitacaoService
	StatsService       service.StatsService
	ExportService      service.ExportService

	CSRFStore *api.CSRFStore
}

// New connects to the store, ensures the schema and builds the service
// graph. The connection retries with backoff so the process survives a
// database that comes up after it.
func New(cfg *config.Config) (*Container, error) {
	logger, err := api.NewLoggerFromConfig(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("configure logger: %w", err)
	}
	api.SetLogger(logger)

	db, err := database.ConnectWithRetry(cfg.Database, 5, 2*time.Second)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := database.EnsureSchema(db); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	repo := repository.NewSolicitacaoRepository(db)

	return &Container{
		Config:             cfg,
		DB:                 db,
		Repository:         repo,
		SolicitacaoService: service.NewSolicitacaoService(repo),
		StatsService:       service.NewStatsService(repo),
		ExportService:      service.NewExportService(repo),
		CSRFStore:          api.NewCSRFStore(api.DefaultCSRFConfig()),
	}, nil
}

// Controllers builds the HTTP controllers on top of the service graph.
func (c *Container) Controllers() api.Controllers {
	production := c.Config.IsProduction()
	return api.Controllers{
		Solicitacao: api.NewSolicitacaoController(c.SolicitacaoService, c.StatsService, c.ExportService, production),
		Health:      api.NewHealthController(c.SolicitacaoService, production),
		Admin:       api.NewAdminController(c.Repository, production),
		Dashboard:   api.NewDashboardController(),
	}
}

// Close releases the database connection pool.
func (c *Container) Close() error {
	if c.DB == nil {
		return nil
	}
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	if c.CSRFStore != nil {
		c.CSRFStore.Stop()
	}
	return sqlDB.Close()
}
