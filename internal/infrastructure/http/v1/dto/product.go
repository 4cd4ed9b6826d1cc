package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"stockbook/internal/domain/catalogs/product"
)

// --- Request DTOs ---

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	Code           string          `json:"code" binding:"required"`
	Name           string          `json:"name" binding:"required"`
	Description    string          `json:"description" binding:"required"`
	Unit           string          `json:"unit"`
	CategoryID     *string         `json:"categoryId"`
	OnHandQuantity decimal.Decimal `json:"onHandQuantity"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateProductRequest) ToEntity() *product.Product {
	p := product.NewProduct(r.Code, r.Name, r.Description)
	p.Unit = r.Unit
	p.CategoryID = r.CategoryID
	if !r.OnHandQuantity.IsZero() {
		p.OnHandQuantity = r.OnHandQuantity
	}
	return p
}

// UpdateProductRequest is the request body for updating a product.
type UpdateProductRequest struct {
	Code           string          `json:"code" binding:"required"`
	Name           string          `json:"name" binding:"required"`
	Description    string          `json:"description" binding:"required"`
	Unit           string          `json:"unit"`
	CategoryID     *string         `json:"categoryId"`
	OnHandQuantity decimal.Decimal `json:"onHandQuantity"`
	Version        int             `json:"version" binding:"required"`
}

// ApplyTo maps the update onto an existing entity.
// CreatedBy and CreatedAt are immutable and deliberately not touched.
func (r *UpdateProductRequest) ApplyTo(p *product.Product) {
	p.Code = r.Code
	p.Name = r.Name
	p.Description = r.Description
	p.Unit = r.Unit
	p.CategoryID = r.CategoryID
	p.OnHandQuantity = r.OnHandQuantity
	p.Version = r.Version
}

// --- Response DTOs ---

// ProductResponse is the API representation of a product.
type ProductResponse struct {
	ID             string          `json:"id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Unit           string          `json:"unit,omitempty"`
	CategoryID     *string         `json:"categoryId,omitempty"`
	OnHandQuantity decimal.Decimal `json:"onHandQuantity"`
	CreatedBy      string          `json:"createdBy,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	DeletionMark   bool            `json:"deletionMark"`
	Version        int             `json:"version"`
}

// FromProduct converts domain entity to response DTO.
func FromProduct(p *product.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID.String(),
		Code:           p.Code,
		Name:           p.Name,
		Description:    p.Description,
		Unit:           p.Unit,
		CategoryID:     p.CategoryID,
		OnHandQuantity: p.OnHandQuantity,
		CreatedBy:      p.CreatedBy,
		CreatedAt:      p.CreatedAt,
		DeletionMark:   p.DeletionMark,
		Version:        p.Version,
	}
}
