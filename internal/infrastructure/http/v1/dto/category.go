package dto

import (
	"stockbook/internal/domain/catalogs/category"
)

// --- Request DTOs ---

// CreateCategoryRequest is the request body for creating a category.
type CreateCategoryRequest struct {
	Code        string  `json:"code" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateCategoryRequest) ToEntity() *category.Category {
	c := category.NewCategory(r.Code, r.Name)
	c.Description = r.Description
	return c
}

// UpdateCategoryRequest is the request body for updating a category.
type UpdateCategoryRequest struct {
	Code        string  `json:"code" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Version     int     `json:"version" binding:"required"`
}

// ApplyTo maps the update onto an existing entity.
func (r *UpdateCategoryRequest) ApplyTo(c *category.Category) {
	c.Code = r.Code
	c.Name = r.Name
	c.Description = r.Description
	c.Version = r.Version
}

// --- Response DTOs ---

// CategoryResponse is the API representation of a category.
type CategoryResponse struct {
	ID           string  `json:"id"`
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	DeletionMark bool    `json:"deletionMark"`
	Version      int     `json:"version"`
}

// FromCategory converts domain entity to response DTO.
func FromCategory(c *category.Category) CategoryResponse {
	return CategoryResponse{
		ID:           c.ID.String(),
		Code:         c.Code,
		Name:         c.Name,
		Description:  c.Description,
		DeletionMark: c.DeletionMark,
		Version:      c.Version,
	}
}
