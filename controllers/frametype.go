package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thusha-optical/optical-shop-api/db"
	"github.com/thusha-optical/optical-shop-api/models"
	"github.com/thusha-optical/optical-shop-api/utils"
)

// GetFrameTypes lists frame types, newest first
func GetFrameTypes(c *fiber.Ctx) error {
	var frameTypes []models.FrameType
	if err := db.DB.Order("created_at DESC").Find(&frameTypes).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch frame types",
			Error:   err.Error(),
		})
	}
	return c.JSON(frameTypes)
}

// CreateFrameType creates a frame type
func CreateFrameType(c *fiber.Ctx) error {
	frameType := new(models.FrameType)
	if err := c.BodyParser(frameType); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if frameType.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name is required",
		})
	}

	if err := db.DB.Create(frameType).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "A frame type with this name already exists",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(frameType)
}

// UpdateFrameType updates a frame type's name or description
func UpdateFrameType(c *fiber.Ctx) error {
	var frameType models.FrameType
	if err := db.DB.First(&frameType, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Frame type not found",
		})
	}

	input := new(models.FrameType)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	input.ID = frameType.ID

	if err := db.DB.Model(&frameType).Updates(input).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update frame type",
			Error:   err.Error(),
		})
	}
	return c.JSON(frameType)
}

// DeleteFrameType removes a frame type
func DeleteFrameType(c *fiber.Ctx) error {
	if err := db.DB.Delete(&models.FrameType{}, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete frame type",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
