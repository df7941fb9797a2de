package lmsController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/serializers"
	lmsValidator "lms/validators/lms"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func activeCourseCount(categoryID uint) int64 {
	var count int64
	database.Database.Db.Model(&models.Course{}).
		Where("category_id = ? AND is_active = ?", categoryID, true).
		Count(&count)
	return count
}

func ListCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := database.Database.Db.Order("name asc").Find(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}

	result := make([]serializers.CategoryResponse, len(categories))
	for i := range categories {
		result[i] = serializers.NewCategoryResponse(&categories[i], activeCourseCount(categories[i].ID))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", result)
}

func GetCategory(c *fiber.Ctx) error {
	categoryID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid category id!", nil)
	}

	var category models.Category
	if err := database.Database.Db.First(&category, categoryID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category fetched successfully!", serializers.NewCategoryResponse(&category, activeCourseCount(category.ID)))
}

func CreateCategory(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCategory").(*lmsValidator.CategoryRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Duplicate names surface as a field error, backed by the unique index
	if err := database.Database.Db.Where("name = ?", reqData.Name).First(&models.Category{}).Error; err == nil {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"name": "Category with this name already exists!",
		})
	}

	category := models.Category{
		Name:        reqData.Name,
		Description: reqData.Description,
	}
	if err := database.Database.Db.Create(&category).Error; err != nil {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"name": "Category with this name already exists!",
		})
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Category created successfully!", serializers.NewCategoryResponse(&category, 0))
}

func UpdateCategory(c *fiber.Ctx) error {
	categoryID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid category id!", nil)
	}

	reqData, ok := c.Locals("validatedCategory").(*lmsValidator.CategoryRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var category models.Category
	if err := database.Database.Db.First(&category, categoryID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	var existing models.Category
	if err := database.Database.Db.Where("name = ? AND id <> ?", reqData.Name, category.ID).First(&existing).Error; err == nil {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"name": "Category with this name already exists!",
		})
	}

	category.Name = reqData.Name
	category.Description = reqData.Description
	if err := database.Database.Db.Save(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category updated successfully!", serializers.NewCategoryResponse(&category, activeCourseCount(category.ID)))
}

// DeleteCategory detaches courses from the category before removing it.
// Courses are never deleted with their category.
func DeleteCategory(c *fiber.Ctx) error {
	categoryID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid category id!", nil)
	}

	var category models.Category
	if err := database.Database.Db.First(&category, categoryID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Course{}).Where("category_id = ?", category.ID).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category deleted successfully!", nil)
}
