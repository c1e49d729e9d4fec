package controllers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/thusha-optical/optical-shop-api/db"
	"github.com/thusha-optical/optical-shop-api/models"
	"github.com/thusha-optical/optical-shop-api/storage"
	"github.com/thusha-optical/optical-shop-api/utils"
)

// GetAccessories lists the accessory catalog, newest first
func GetAccessories(c *fiber.Ctx) error {
	query := db.DB.Preload("Category").Order("created_at DESC")
	if categoryID := c.Query("category"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	var accessories []models.Accessory
	if err := query.Find(&accessories).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch accessories",
			Error:   err.Error(),
		})
	}
	return c.JSON(accessories)
}

// GetAccessory returns one accessory with resolved image URLs
func GetAccessory(c *fiber.Ctx) error {
	var accessory models.Accessory
	if err := db.DB.Preload("Category").Preload("Manufacturer").
		First(&accessory, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Accessory not found",
		})
	}

	if accessory.Manufacturer != nil {
		accessory.Manufacturer.Password = ""
	}
	return c.JSON(fiber.Map{
		"accessory":  accessory,
		"image_urls": imageURLs(accessory.Images),
	})
}

// CreateAccessory creates an accessory from a multipart form
func CreateAccessory(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Expected multipart form data",
		})
	}

	name := formValue(form, "name")
	price, priceErr := strconv.ParseFloat(formValue(form, "price"), 64)
	if name == "" || priceErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name and a valid price are required",
		})
	}

	accessory := models.Accessory{
		Name:        name,
		Price:       price,
		Description: formValue(form, "description"),
	}

	if stock, err := strconv.Atoi(formValue(form, "stock")); err == nil {
		accessory.Stock = stock
	}
	if id, err := strconv.ParseUint(formValue(form, "category_id"), 10, 32); err == nil {
		categoryID := uint(id)
		accessory.CategoryID = &categoryID
	}

	manufacturerID, err := resolveManufacturer(formValue(form, "manufacturer_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	accessory.ManufacturerID = manufacturerID

	if err := db.DB.Create(&accessory).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create accessory",
			Error:   err.Error(),
		})
	}

	paths, err := storeUploads(form.File["images"], fmt.Sprintf("accessories/%d", accessory.ID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to store accessory images",
			Error:   err.Error(),
		})
	}
	accessory.Images = paths
	if err := db.DB.Model(&accessory).Update("images", accessory.Images).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save accessory images",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(accessory)
}

// UpdateAccessory applies a partial multipart update with image diffing
func UpdateAccessory(c *fiber.Ctx) error {
	var accessory models.Accessory
	if err := db.DB.First(&accessory, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Accessory not found",
		})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Expected multipart form data",
		})
	}

	if name := formValue(form, "name"); name != "" {
		accessory.Name = name
	}
	if price, err := strconv.ParseFloat(formValue(form, "price"), 64); err == nil {
		accessory.Price = price
	}
	if description := formValue(form, "description"); description != "" {
		accessory.Description = description
	}
	if stock, err := strconv.Atoi(formValue(form, "stock")); err == nil {
		accessory.Stock = stock
	}
	if id, err := strconv.ParseUint(formValue(form, "category_id"), 10, 32); err == nil {
		categoryID := uint(id)
		accessory.CategoryID = &categoryID
	}
	if idStr := formValue(form, "manufacturer_id"); idStr != "" {
		manufacturerID, err := resolveManufacturer(idStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		accessory.ManufacturerID = manufacturerID
	}

	existingImages, declared := formList(form, "existing_images")
	newPaths, err := storeUploads(form.File["images"], fmt.Sprintf("accessories/%d", accessory.ID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to store accessory images",
			Error:   err.Error(),
		})
	}

	if declared || len(newPaths) > 0 {
		if !declared {
			existingImages = accessory.Images
		}
		images, err := diffImages(accessory.Images, existingImages, newPaths)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to update accessory images",
				Error:   err.Error(),
			})
		}
		accessory.Images = images
	}

	if err := db.DB.Save(&accessory).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update accessory",
			Error:   err.Error(),
		})
	}

	return c.JSON(accessory)
}

// UpdateAccessoryStock sets the stock level of an accessory
func UpdateAccessoryStock(c *fiber.Ctx) error {
	var accessory models.Accessory
	if err := db.DB.First(&accessory, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Accessory not found",
		})
	}

	type StockInput struct {
		Stock *int `json:"stock"`
	}
	input := new(StockInput)
	if err := c.BodyParser(input); err != nil || input.Stock == nil || *input.Stock < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "A non-negative stock value is required",
		})
	}

	accessory.Stock = *input.Stock
	if err := db.DB.Save(&accessory).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update stock",
			Error:   err.Error(),
		})
	}

	return c.JSON(accessory)
}

// DeleteAccessory removes an accessory and its stored images
func DeleteAccessory(c *fiber.Ctx) error {
	var accessory models.Accessory
	if err := db.DB.First(&accessory, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Accessory not found",
		})
	}

	for _, path := range accessory.Images {
		if err := storage.Delete(path); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to delete accessory images",
				Error:   err.Error(),
			})
		}
	}

	if err := db.DB.Delete(&accessory).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete accessory",
			Error:   err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
