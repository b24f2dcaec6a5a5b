package services

import (
	"log/slog"
	"testing"
	"time"

	"financetracker/internal/database"
	"financetracker/internal/models"
	"financetracker/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// CategoryServiceSuite defines the test suite for the category service
type CategoryServiceSuite struct {
	suite.Suite
	db      *database.DB
	service CategoryServiceInterface
	userID  uuid.UUID
}

// SetupTest runs before each test in the suite
func (s *CategoryServiceSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.service = NewCategoryService(repositories.NewCategoryRepository(s.db.DB), slog.Default())
	s.userID = uuid.New()
}

// TearDownTest runs after each test in the suite
func (s *CategoryServiceSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// TestCategoryServiceSuite runs the test suite
func TestCategoryServiceSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceSuite))
}

func (s *CategoryServiceSuite) createCategory(name, categoryType string) *models.Category {
	category, err := s.service.CreateCategory(CreateCategoryInput{
		UserID:       s.userID,
		Name:         name,
		CategoryType: categoryType,
	})
	s.Require().NoError(err)
	return category
}

func (s *CategoryServiceSuite) TestCreateCategory() {
	category := s.createCategory("Groceries", models.CategoryTypeExpense)

	s.NotEqual(uuid.Nil, category.ID)
	s.Equal(models.CategoryTypeExpense, category.CategoryType)
	s.False(category.IsSystem)
}

func (s *CategoryServiceSuite) TestCreateCategory_InvalidType() {
	_, err := s.service.CreateCategory(CreateCategoryInput{
		UserID:       s.userID,
		Name:         "Misc",
		CategoryType: "savings",
	})

	s.ErrorIs(err, ErrInvalidCategoryType)
}

func (s *CategoryServiceSuite) TestCreateCategory_Subcategory() {
	parent := s.createCategory("Food", models.CategoryTypeExpense)

	child, err := s.service.CreateCategory(CreateCategoryInput{
		UserID:           s.userID,
		Name:             "Restaurants",
		CategoryType:     models.CategoryTypeExpense,
		ParentCategoryID: &parent.ID,
	})

	s.NoError(err)
	s.Equal(parent.ID, *child.ParentCategoryID)
}

func (s *CategoryServiceSuite) TestCreateCategory_NestedSubcategoryRejected() {
	parent := s.createCategory("Food", models.CategoryTypeExpense)
	child, err := s.service.CreateCategory(CreateCategoryInput{
		UserID:           s.userID,
		Name:             "Restaurants",
		CategoryType:     models.CategoryTypeExpense,
		ParentCategoryID: &parent.ID,
	})
	s.Require().NoError(err)

	_, err = s.service.CreateCategory(CreateCategoryInput{
		UserID:           s.userID,
		Name:             "Fast Food",
		CategoryType:     models.CategoryTypeExpense,
		ParentCategoryID: &child.ID,
	})

	s.ErrorIs(err, ErrNestedSubcategory)
}

func (s *CategoryServiceSuite) TestCreateCategory_ParentTypeMismatch() {
	parent := s.createCategory("Salary", models.CategoryTypeIncome)

	_, err := s.service.CreateCategory(CreateCategoryInput{
		UserID:           s.userID,
		Name:             "Groceries",
		CategoryType:     models.CategoryTypeExpense,
		ParentCategoryID: &parent.ID,
	})

	s.ErrorIs(err, ErrParentTypeMismatch)
}

func (s *CategoryServiceSuite) TestListCategories_FilteredByType() {
	s.createCategory("Groceries", models.CategoryTypeExpense)
	s.createCategory("Salary", models.CategoryTypeIncome)

	categories, err := s.service.ListCategories(s.userID, models.CategoryTypeExpense)
	s.NoError(err)
	s.Require().Len(categories, 1)
	s.Equal("Groceries", categories[0].Name)

	categories, err = s.service.ListCategories(s.userID, "")
	s.NoError(err)
	s.Len(categories, 2)
}

func (s *CategoryServiceSuite) TestListCategories_InvalidTypeFilter() {
	_, err := s.service.ListCategories(s.userID, "savings")

	s.ErrorIs(err, ErrInvalidCategoryType)
}

func (s *CategoryServiceSuite) TestDeleteCategory() {
	category := s.createCategory("Groceries", models.CategoryTypeExpense)

	s.NoError(s.service.DeleteCategory(s.userID, category.ID))

	_, err := s.service.GetCategory(s.userID, category.ID)
	s.ErrorIs(err, ErrCategoryNotFound)
}

func (s *CategoryServiceSuite) TestDeleteCategory_System() {
	category := &models.Category{
		UserID:       s.userID,
		Name:         "Uncategorized",
		CategoryType: models.CategoryTypeExpense,
		IsSystem:     true,
	}
	s.Require().NoError(s.db.DB.Create(category).Error)

	s.ErrorIs(s.service.DeleteCategory(s.userID, category.ID), ErrSystemCategory)
}

func (s *CategoryServiceSuite) TestDeleteCategory_WithSubcategories() {
	parent := s.createCategory("Food", models.CategoryTypeExpense)
	_, err := s.service.CreateCategory(CreateCategoryInput{
		UserID:           s.userID,
		Name:             "Restaurants",
		CategoryType:     models.CategoryTypeExpense,
		ParentCategoryID: &parent.ID,
	})
	s.Require().NoError(err)

	s.ErrorIs(s.service.DeleteCategory(s.userID, parent.ID), ErrCategoryInUse)
}

func (s *CategoryServiceSuite) TestDeleteCategory_ReferencedByTransaction() {
	category := s.createCategory("Groceries", models.CategoryTypeExpense)
	account := database.CreateTestAccount(s.T(), s.db, s.userID, "Checking", decimal.NewFromFloat(500))

	tx := database.CreateTestTransaction(s.T(), s.db, s.userID, account.ID, models.TransactionTypeExpense, decimal.NewFromFloat(30), time.Now())
	tx.CategoryID = &category.ID
	s.Require().NoError(s.db.DB.Save(tx).Error)

	s.ErrorIs(s.service.DeleteCategory(s.userID, category.ID), ErrCategoryInUse)
}
