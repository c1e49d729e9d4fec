package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thusha-optical/optical-shop-api/db"
	"github.com/thusha-optical/optical-shop-api/models"
	"github.com/thusha-optical/optical-shop-api/utils"
)

// GetCategories lists categories, newest first
func GetCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := db.DB.Order("created_at DESC").Find(&categories).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch categories",
			Error:   err.Error(),
		})
	}
	return c.JSON(categories)
}

// CreateCategory creates a category
func CreateCategory(c *fiber.Ctx) error {
	category := new(models.Category)
	if err := c.BodyParser(category); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if category.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name is required",
		})
	}

	if err := db.DB.Create(category).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "A category with this name already exists",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// UpdateCategory updates a category's name or description
func UpdateCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := db.DB.First(&category, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Category not found",
		})
	}

	input := new(models.Category)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	input.ID = category.ID

	if err := db.DB.Model(&category).Updates(input).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update category",
			Error:   err.Error(),
		})
	}
	return c.JSON(category)
}

// DeleteCategory removes a category
func DeleteCategory(c *fiber.Ctx) error {
	if err := db.DB.Delete(&models.Category{}, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete category",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
