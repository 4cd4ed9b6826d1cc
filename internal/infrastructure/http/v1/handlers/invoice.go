package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/domain/documents/invoice"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// InvoiceHandler handles HTTP requests for one invoice direction.
type InvoiceHandler struct {
	*BaseHandler
	service *invoice.Service
}

// NewInvoiceHandler creates an invoice handler for the service's direction.
func NewInvoiceHandler(base *BaseHandler, service *invoice.Service) *InvoiceHandler {
	return &InvoiceHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /invoices/{direction}
func (h *InvoiceHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := invoice.ListFilter{
		Search:         c.Query("search"),
		Limit:          h.ParseIntQuery(c, "limit", 50),
		Offset:         h.ParseIntQuery(c, "offset", 0),
		OrderBy:        c.Query("orderBy"),
		IncludeDeleted: c.Query("includeDeleted") == "true",
	}

	if from, ok := h.parseDateQuery(c, "fromDate"); ok {
		filter.DateFrom = from
	} else {
		return
	}
	if to, ok := h.parseEndDateQuery(c, "toDate"); ok {
		filter.DateTo = to
	} else {
		return
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, inv := range result.Items {
		items[i] = dto.FromInvoiceHeader(inv)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /invoices/{direction}/:id
func (h *InvoiceHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	inv, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromInvoice(inv))
}

// Create handles POST /invoices/{direction}
func (h *InvoiceHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateInvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	inv := req.ToEntity(h.service.Direction())

	if err := h.service.Create(ctx, inv); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromInvoice(inv))
}

// Update handles PUT /invoices/{direction}/:id
func (h *InvoiceHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateInvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	inv, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(inv)

	if err := h.service.Update(ctx, inv); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromInvoice(inv))
}

// Delete handles DELETE /invoices/{direction}/:id
func (h *InvoiceHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(ctx, docID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// AddLine handles POST /invoices/{direction}/:id/lines
func (h *InvoiceHandler) AddLine(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.AddLineRequest
	if !h.BindJSON(c, &req) {
		return
	}

	productID, err := id.Parse(req.ProductID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid product id format").
			WithDetail("field", "productId"))
		return
	}

	line, err := h.service.AddLine(ctx, docID, productID, req.Quantity, req.UnitPrice)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromInvoiceLine(line))
}

// UpdateLine handles PUT /invoices/{direction}/:id/lines/:lineId
// The line id alone identifies the line; the parent id in the path is
// resolved from storage, not trusted from the URL.
func (h *InvoiceHandler) UpdateLine(c *gin.Context) {
	ctx := c.Request.Context()

	lineID, err := id.Parse(c.Param("lineId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid line id format"))
		return
	}

	var req dto.UpdateLineRequest
	if !h.BindJSON(c, &req) {
		return
	}

	line, err := h.service.UpdateLine(ctx, lineID, req.Quantity, req.UnitPrice)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromInvoiceLine(line))
}

// DeleteLine handles DELETE /invoices/{direction}/:id/lines/:lineId
func (h *InvoiceHandler) DeleteLine(c *gin.Context) {
	ctx := c.Request.Context()

	lineID, err := id.Parse(c.Param("lineId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid line id format"))
		return
	}

	if err := h.service.DeleteLine(ctx, lineID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// parseDateQuery parses an optional date query param. Accepts date-only and
// RFC3339 formats. Returns ok=false after registering an error.
func (h *BaseHandler) parseDateQuery(c *gin.Context, key string) (*time.Time, bool) {
	return h.parseDateQueryBound(c, key, false)
}

// parseEndDateQuery parses the upper bound of a closed date range. A
// date-only value covers its entire day, so the bound moves to the last
// instant of that day; business dates are full timestamps and would
// otherwise fall out of the range after midnight.
func (h *BaseHandler) parseEndDateQuery(c *gin.Context, key string) (*time.Time, bool) {
	return h.parseDateQueryBound(c, key, true)
}

func (h *BaseHandler) parseDateQueryBound(c *gin.Context, key string, endOfDay bool) (*time.Time, bool) {
	val := c.Query(key)
	if val == "" {
		return nil, true
	}

	if t, err := time.Parse("2006-01-02", val); err == nil {
		if endOfDay {
			t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		return &t, true
	}
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return &t, true
	}

	h.Error(c, apperror.NewInvalidRange("invalid date format").
		WithDetail("field", key).
		WithDetail("value", val))
	return nil, false
}

// RegisterInvoiceRoutes registers the invoice routes for one direction.
func RegisterInvoiceRoutes(rg *gin.RouterGroup, h *InvoiceHandler) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/lines", h.AddLine)
	rg.PUT("/:id/lines/:lineId", h.UpdateLine)
	rg.DELETE("/:id/lines/:lineId", h.DeleteLine)
}
