package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockbook/internal/domain/reports"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles HTTP requests for reports.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// GetStockMovement handles GET /reports/stock-movement
// A missing bound stays nil so the service rejects the range as a whole
// with a consistent error; garbage input fails here.
func (h *ReportsHandler) GetStockMovement(c *gin.Context) {
	ctx := c.Request.Context()

	from, ok := h.parseDateQuery(c, "fromDate")
	if !ok {
		return
	}
	to, ok := h.parseEndDateQuery(c, "toDate")
	if !ok {
		return
	}

	report, err := h.service.StockMovement(ctx, from, to)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromStockMovementReport(report))
}
