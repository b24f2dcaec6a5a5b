package dto

import (
	"financetracker/internal/models"
)

// CreateCategoryRequest represents the request payload for creating a category
type CreateCategoryRequest struct {
	Name             string `json:"name" validate:"required,min=1,max=100"`
	CategoryType     string `json:"category_type" validate:"required,category_type"`
	ParentCategoryID string `json:"parent_category_id" validate:"omitempty,uuid"`
	Icon             string `json:"icon" validate:"omitempty,max=50"`
	Color            string `json:"color" validate:"omitempty,max=20"`
}

// CategoryListResponse represents the list of categories for a user
type CategoryListResponse struct {
	Categories []models.Category `json:"categories"`
	Total      int               `json:"total"`
}
