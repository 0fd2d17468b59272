package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DashboardController serves the server-rendered dashboard shell. The
// page body is populated client-side against the JSON API.
type DashboardController struct{}

func NewDashboardController() *DashboardController {
	return &DashboardController{}
}

func (ctl *DashboardController) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"title": "Controle de Compras",
	})
}
