package controllers

import (
	"encoding/base64"
	"io"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/thusha-optical/optical-shop-api/db"
	"github.com/thusha-optical/optical-shop-api/models"
	"github.com/thusha-optical/optical-shop-api/storage"
	"github.com/thusha-optical/optical-shop-api/utils"
)

// DetectFaceShape classifies an uploaded face image through the
// external inference service and records the result.
func DetectFaceShape(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No image uploaded",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read uploaded image",
		})
	}
	imageBytes, err := io.ReadAll(file)
	file.Close()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read uploaded image",
		})
	}

	relPath := "faceshape/" + uuid.NewString() + filepath.Ext(fileHeader.Filename)
	if err := storage.Save(fileHeader, relPath); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to store uploaded image",
			Error:   err.Error(),
		})
	}

	imageBase64 := base64.StdEncoding.EncodeToString(imageBytes)
	faceShape, err := utils.DetectFaceShape(imageBase64)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Face shape detection failed",
			Error:   err.Error(),
		})
	}

	result := models.FaceShapeResult{
		Image:     relPath,
		FaceShape: faceShape,
	}
	if err := db.DB.Create(&result).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save detection result",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"face_shape": faceShape,
	})
}
