package dto

import (
	"time"

	"stockbook/internal/core/id"
	"stockbook/internal/domain/documents/invoice"
)

// --- Request DTOs ---

// InvoiceLineRequest is one line item in a create/update invoice body.
type InvoiceLineRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

// CreateInvoiceRequest is the request body for creating an invoice.
type CreateInvoiceRequest struct {
	Name            string               `json:"name" binding:"required"`
	CustomerName    string               `json:"customerName"`
	CustomerAddress string               `json:"customerAddress"`
	Date            *time.Time           `json:"date"`
	Comment         string               `json:"comment"`
	Lines           []InvoiceLineRequest `json:"lines"`
}

// ToEntity converts DTO to domain entity. Line product ids are parsed here;
// an unparseable id surfaces as a nil product and fails validation later.
func (r *CreateInvoiceRequest) ToEntity(direction invoice.Direction) *invoice.Invoice {
	inv := invoice.NewInvoice(direction, r.Name, r.CustomerName, r.CustomerAddress)
	if r.Date != nil {
		inv.Date = *r.Date
	}
	inv.Comment = r.Comment

	for _, line := range r.Lines {
		productID, _ := id.Parse(line.ProductID)
		inv.AddLine(productID, line.Quantity, line.UnitPrice)
	}

	return inv
}

// UpdateInvoiceRequest is the request body for updating an invoice.
type UpdateInvoiceRequest struct {
	Name            string               `json:"name" binding:"required"`
	CustomerName    string               `json:"customerName"`
	CustomerAddress string               `json:"customerAddress"`
	Date            *time.Time           `json:"date"`
	Comment         string               `json:"comment"`
	Lines           []InvoiceLineRequest `json:"lines"`
	Version         int                  `json:"version" binding:"required"`
}

// ApplyTo maps the update onto an existing entity, replacing its lines.
func (r *UpdateInvoiceRequest) ApplyTo(inv *invoice.Invoice) {
	inv.Name = r.Name
	inv.CustomerName = r.CustomerName
	inv.CustomerAddress = r.CustomerAddress
	if r.Date != nil {
		inv.Date = *r.Date
	}
	inv.Comment = r.Comment
	inv.Version = r.Version

	inv.Lines = inv.Lines[:0]
	for _, line := range r.Lines {
		productID, _ := id.Parse(line.ProductID)
		inv.AddLine(productID, line.Quantity, line.UnitPrice)
	}
}

// AddLineRequest is the request body for adding a line to an invoice.
type AddLineRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

// UpdateLineRequest is the request body for editing a line.
type UpdateLineRequest struct {
	Quantity  int64 `json:"quantity"`
	UnitPrice int64 `json:"unitPrice"`
}

// --- Response DTOs ---

// InvoiceLineResponse is the API representation of an invoice line.
type InvoiceLineResponse struct {
	LineID     string `json:"lineId"`
	LineNo     int    `json:"lineNo"`
	ProductID  string `json:"productId"`
	Quantity   int64  `json:"quantity"`
	UnitPrice  int64  `json:"unitPrice"`
	TotalPrice int64  `json:"totalPrice"`
}

// FromInvoiceLine converts a domain line to response DTO.
func FromInvoiceLine(l invoice.Line) InvoiceLineResponse {
	return InvoiceLineResponse{
		LineID:     l.LineID.String(),
		LineNo:     l.LineNo,
		ProductID:  l.ProductID.String(),
		Quantity:   l.Quantity,
		UnitPrice:  l.UnitPrice,
		TotalPrice: l.TotalPrice,
	}
}

// InvoiceResponse is the API representation of an invoice with its lines.
type InvoiceResponse struct {
	ID              string                `json:"id"`
	Direction       string                `json:"direction"`
	Number          string                `json:"number"`
	Name            string                `json:"name"`
	CustomerName    string                `json:"customerName,omitempty"`
	CustomerAddress string                `json:"customerAddress,omitempty"`
	Date            time.Time             `json:"date"`
	Comment         string                `json:"comment,omitempty"`
	TotalQuantity   int64                 `json:"totalQuantity"`
	TotalAmount     int64                 `json:"totalAmount"`
	Lines           []InvoiceLineResponse `json:"lines"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
	DeletionMark    bool                  `json:"deletionMark"`
	Version         int                   `json:"version"`
}

// FromInvoice converts domain entity to response DTO.
func FromInvoice(inv *invoice.Invoice) InvoiceResponse {
	lines := make([]InvoiceLineResponse, len(inv.Lines))
	for i, l := range inv.Lines {
		lines[i] = FromInvoiceLine(l)
	}

	return InvoiceResponse{
		ID:              inv.ID.String(),
		Direction:       string(inv.Direction),
		Number:          inv.Number,
		Name:            inv.Name,
		CustomerName:    inv.CustomerName,
		CustomerAddress: inv.CustomerAddress,
		Date:            inv.Date,
		Comment:         inv.Comment,
		TotalQuantity:   inv.TotalQuantity,
		TotalAmount:     inv.TotalAmount,
		Lines:           lines,
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.UpdatedAt,
		DeletionMark:    inv.DeletionMark,
		Version:         inv.Version,
	}
}

// FromInvoiceHeader converts a header-only entity (no lines loaded).
func FromInvoiceHeader(inv *invoice.Invoice) InvoiceResponse {
	resp := FromInvoice(inv)
	if resp.Lines == nil {
		resp.Lines = []InvoiceLineResponse{}
	}
	return resp
}
