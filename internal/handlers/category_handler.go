package handlers

import (
	"net/http"

	"financetracker/internal/dto"
	"financetracker/internal/errors"
	"financetracker/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryService services.CategoryServiceInterface
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService services.CategoryServiceInterface) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategory creates a new transaction category for the authenticated user
//
// Method: POST /api/v1/categories
// Authentication: Required (JWT)
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	parentCategoryID, err := parseOptionalUUID(req.ParentCategoryID)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid parent category ID"))
	}

	category, err := h.categoryService.CreateCategory(services.CreateCategoryInput{
		UserID:           userID,
		Name:             req.Name,
		CategoryType:     req.CategoryType,
		ParentCategoryID: parentCategoryID,
		Icon:             req.Icon,
		Color:            req.Color,
	})
	if err != nil {
		switch err {
		case services.ErrInvalidCategoryType:
			return SendError(c, errors.CategoryInvalid, errors.WithDetails(err.Error()))
		case services.ErrCategoryNotFound:
			return SendError(c, errors.CategoryNotFound, errors.WithDetails("Parent category not found"))
		case services.ErrNestedSubcategory, services.ErrParentTypeMismatch:
			return SendError(c, errors.CategoryInvalid, errors.WithDetails(err.Error()))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, category)
}

// GetCategory retrieves a specific category by ID
//
// Method: GET /api/v1/categories/:categoryId
// Authentication: Required (JWT)
func (h *CategoryHandler) GetCategory(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	categoryID, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid category ID"))
	}

	category, err := h.categoryService.GetCategory(userID, categoryID)
	if err != nil {
		if err == services.ErrCategoryNotFound {
			return SendError(c, errors.CategoryNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, category)
}

// ListCategories retrieves the user's categories, optionally filtered by type
//
// Method: GET /api/v1/categories?type=income|expense
// Authentication: Required (JWT)
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	categories, err := h.categoryService.ListCategories(userID, c.QueryParam("type"))
	if err != nil {
		if err == services.ErrInvalidCategoryType {
			return SendError(c, errors.CategoryInvalid, errors.WithDetails(err.Error()))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.CategoryListResponse{
		Categories: categories,
		Total:      len(categories),
	})
}

// DeleteCategory removes a category. System categories and categories still
// referenced by transactions, budgets or subcategories cannot be deleted.
//
// Method: DELETE /api/v1/categories/:categoryId
// Authentication: Required (JWT)
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	categoryID, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid category ID"))
	}

	if err := h.categoryService.DeleteCategory(userID, categoryID); err != nil {
		switch err {
		case services.ErrCategoryNotFound:
			return SendError(c, errors.CategoryNotFound)
		case services.ErrCategoryInUse:
			return SendError(c, errors.CategoryInUse)
		case services.ErrSystemCategory:
			return SendError(c, errors.CategoryInvalid, errors.WithDetails(err.Error()))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Category deleted successfully"})
}
