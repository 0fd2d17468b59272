package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nicolasbonaa/controle-compras/internal/metrics"
	"github.com/nicolasbonaa/controle-compras/internal/repository"
	"github.com/nicolasbonaa/controle-compras/internal/service"
)

// Pagination bounds for the list endpoint.
const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// SolicitacaoController maps the purchase-request HTTP surface onto the
// service layer.
type SolicitacaoController struct {
	service    service.SolicitacaoService
	stats      service.StatsService
	export     service.ExportService
	production bool
}

// NewSolicitacaoController creates the controller.
func NewSolicitacaoController(svc service.SolicitacaoService, stats service.StatsService, export service.ExportService, production bool) *SolicitacaoController {
	return &SolicitacaoController{
		service:    svc,
		stats:      stats,
		export:     export,
		production: production,
	}
}

// parseID validates the path id and writes the 400 response itself when
// the id is not a positive integer.
func (ctl *SolicitacaoController) parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		Fail(c, http.StatusBadRequest, T(c, "error.invalid_id"), nil)
		return 0, false
	}
	return id, true
}

func parseFilter(c *gin.Context) repository.Filter {
	return repository.Filter{
		Status:     c.Query("status"),
		Department: c.Query("department"),
		Search:     c.Query("search"),
	}
}

// List returns the filtered, paginated record set.
// @Summary      List purchase requests
// @Description  Filtered and paginated listing; search matches requester name or equipment
// @Produce      json
// @Param        search query string false "substring match on requester name or equipment"
// @Param        status query string false "exact status"
// @Param        department query string false "exact department"
// @Param        page query int false "page" default(1)
// @Param        limit query int false "page size, 1..100" default(10)
// @Param        orderBy query string false "column or column:direction from the allow-list"
// @Success      200 {object} Envelope
// @Failure      400 {object} ErrorEnvelope
// @Router       /solicitacoes [get]
func (ctl *SolicitacaoController) List(c *gin.Context) {
	page := parsePositiveInt(c.Query("page"), defaultPage)
	limit := parsePositiveInt(c.Query("limit"), defaultLimit)
	if limit > maxLimit {
		limit = maxLimit
	}

	result, err := ctl.service.List(parseFilter(c), c.Query("orderBy"), page, limit)
	if err != nil {
		RespondError(c, err, ctl.production)
		return
	}

	Success(c, http.StatusOK, "", ListPayload{
		Items:      result.Items,
		Pagination: NewPagination(page, limit, result.Total),
	})
}

// Get returns one record by id.
// @Summary      Get a purchase request
// @Produce      json
// @Param        id path int true "record id"
// @Success      200 {object} Envelope
// @Failure      400 {object} ErrorEnvelope
// @Failure      404 {object} ErrorEnvelope
// @Router       /solicitacoes/{id} [get]
func (ctl *SolicitacaoController) Get(c *gin.Context) {
	id, ok := ctl.parseID(c)
	if !ok {
		return
	}

	record, err := ctl.service.Get(id)
	if err != nil {
		RespondError(c, err, ctl.production)
		return
	}

	Success(c, http.StatusOK, "", record)
}

// Create registers a new purchase request.
// @Summary      Create a purchase request
// @Accept       json
// @Produce      json
// @Success      201 {object} Envelope
// @Failure      400 {object} ErrorEnvelope
// @Router       /solicitacoes [post]
func (ctl *SolicitacaoController) Create(c *gin.Context) {
	var input service.CreateSolicitacaoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		Fail(c, http.StatusBadRequest, T(c, "error.invalid_body"), []string{err.Error()})
		return
	}

	record, err := ctl.service.Create(&input)
	if err != nil {
		RespondError(c, err, ctl.production)
		return
	}

	metrics.RecordSolicitacaoCreated()
	Success(c, http.StatusCreated, T(c, "success.created"), gin.H{"id": record.ID})
}

// Update applies a partial update to the mutable fields.
// @Summary      Update a purchase request
// @Accept       json
// @Produce      json
// @Param        id path int true "record id"
// @Success      200 {object} Envelope
// @Failure      400 {object} ErrorEnvelope
// @Failure      404 {object} ErrorEnvelope
// @Router       /solicitacoes/{id} [put]
func (ctl *SolicitacaoController) Update(c *gin.Context) {
	id, ok := ctl.parseID(c)
	if !ok {
		return
	}

	var input service.UpdateSolicitacaoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		Fail(c, http.StatusBadRequest, T(c, "error.invalid_body"), []string{err.Error()})
		return
	}

	if err := ctl.service.Update(id, &input); err != nil {
		RespondError(c, err, ctl.production)
		return
	}

	Success(c, http.StatusOK, T(c, "success.updated"), nil)
}

// UpdateStatus applies a status-only update.
// @Summary      Update the status of a purchase request
// @Accept       json
// @Produce      json
// @Param        id path int true "record id"
// @Success      200 {object} Envelope
// @Failure      400 {object} ErrorEnvelope
// @Failure      404 {object} ErrorEnvelope
// @Router       /solicitacoes/{id}/status [patch]
func (ctl *SolicitacaoController) UpdateStatus(c *gin.Context) {
	id, ok := ctl.parseID(c)
	if !ok {
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		Fail(c, http.StatusBadRequest, T(c, "error.invalid_body"), []string{err.Error()})
		return
	}

	if err := ctl.service.UpdateStatus(id, body.Status); err != nil {
		RespondError(c, err, ctl.production)
		return
	}

	metrics.RecordStatusUpdate(body.Status)
	Success(c, http.StatusOK, T(c, "success.status_updated"), nil)
}

// Delete hard-deletes a record.
// @Summary      Delete a purchase request
// @Produce      json
// @Param        id path int true "record id"
// @Success      200 {object} Envelope
// @Failure      400 {object} ErrorEnvelope
// @Failure      404 {object} ErrorEnvelope
// @Router       /solicitacoes/{id} [delete]
func (ctl *SolicitacaoController) Delete(c *gin.Context) {
	id, ok := ctl.parseID(c)
	if !ok {
		return
	}

	if err := ctl.service.Delete(id); err != nil {
		RespondError(c, err, ctl.production)
		return
	}

	Success(c, http.StatusOK, T(c, "success.deleted"), nil)
}

// Stats returns the status breakdown with derived percentages.
// @Summary      Status breakdown
// @Produce      json
// @Success      200 {object} Envelope
// @Router       /solicitacoes/stats [get]
func (ctl *SolicitacaoController) Stats(c *gin.Context) {
	result, err := ctl.stats.StatusBreakdown()
	if err != nil {
		RespondError(c, err, ctl.production)
		return
	}

	Success(c, http.StatusOK, "", result)
}

// Export downloads the filtered record set as a spreadsheet.
// @Summary      Export purchase requests
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        format query string false "xlsx or csv" default(xlsx)
// @Success      200 {file} binary
// @Failure      400 {object} ErrorEnvelope
// @Router       /solicitacoes/export [get]
func (ctl *SolicitacaoController) Export(c *gin.Context) {
	filter := parseFilter(c)
	orderBy := c.Query("orderBy")

	var (
		data        []byte
		filename    string
		contentType string
		err         error
	)
	switch c.DefaultQuery("format", "xlsx") {
	case "csv":
		data, filename, err = ctl.export.ExportCSV(filter, orderBy)
		contentType = "text/csv"
	case "xlsx":
		data, filename, err = ctl.export.ExportXLSX(filter, orderBy)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		Fail(c, http.StatusBadRequest, T(c, "error.validation"), []string{"format must be xlsx or csv"})
		return
	}
	if err != nil {
		RespondError(c, err, ctl.production)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, contentType, data)
}

func parsePositiveInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
