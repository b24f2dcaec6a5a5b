package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CategoryTypeIncome  = "income"
	CategoryTypeExpense = "expense"
)

var ErrInvalidCategoryType = errors.New("invalid category type")

// Category represents a user-defined transaction category. Categories form a
// tree one level deep: a category may reference a parent but grandchildren are
// not allowed.
type Category struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID           uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Name             string     `gorm:"type:varchar(100);not null" json:"name"`
	CategoryType     string     `gorm:"type:varchar(10);not null" json:"category_type"`
	ParentCategoryID *uuid.UUID `gorm:"type:uuid;index" json:"parent_category_id,omitempty"`
	Icon             string     `gorm:"type:varchar(50)" json:"icon,omitempty"`
	Color            string     `gorm:"type:varchar(20)" json:"color,omitempty"`
	IsSystem         bool       `gorm:"not null;default:false" json:"is_system"`
	SortOrder        int        `gorm:"default:0" json:"sort_order"`
	CreatedAt        time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for Category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}

	return c.Validate()
}

// BeforeUpdate hook for Category
func (c *Category) BeforeUpdate(tx *gorm.DB) error {
	c.UpdatedAt = time.Now()
	return nil
}

// Validate validates the category fields
func (c *Category) Validate() error {
	if c.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if c.Name == "" {
		return errors.New("category name is required")
	}

	if !IsValidCategoryType(c.CategoryType) {
		return ErrInvalidCategoryType
	}

	return nil
}

// TableName returns the table name for Category
func (c *Category) TableName() string {
	return "categories"
}

// IsValidCategoryType checks if the category type is valid
func IsValidCategoryType(categoryType string) bool {
	switch categoryType {
	case CategoryTypeIncome, CategoryTypeExpense:
		return true
	default:
		return false
	}
}
