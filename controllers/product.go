package controllers

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/thusha-optical/optical-shop-api/db"
	"github.com/thusha-optical/optical-shop-api/models"
	"github.com/thusha-optical/optical-shop-api/storage"
	"github.com/thusha-optical/optical-shop-api/utils"
)

// formValue returns the first value of a multipart field, or "".
func formValue(form *multipart.Form, key string) string {
	if values, ok := form.Value[key]; ok && len(values) > 0 {
		return values[0]
	}
	return ""
}

// formList decodes a JSON-array multipart field into a string list.
func formList(form *multipart.Form, key string) (models.StringList, bool) {
	raw := formValue(form, key)
	if raw == "" {
		return nil, false
	}
	var list models.StringList
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, false
	}
	return list, true
}

// resolveManufacturer validates that the referenced user is a manufacturer.
func resolveManufacturer(idStr string) (*uint, error) {
	if idStr == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid manufacturer id")
	}
	var manufacturer models.User
	if err := db.DB.Where("id = ? AND role = ?", id, models.RoleManufacturer).First(&manufacturer).Error; err != nil {
		return nil, fmt.Errorf("manufacturer not found")
	}
	uid := uint(id)
	return &uid, nil
}

// storeUploads saves uploaded files under the given prefix and returns
// their storage-relative paths in upload order.
func storeUploads(files []*multipart.FileHeader, prefix string) ([]string, error) {
	paths := make([]string, 0, len(files))
	for _, file := range files {
		relPath := prefix + "/" + filepath.Base(file.Filename)
		if err := storage.Save(file, relPath); err != nil {
			return nil, err
		}
		paths = append(paths, relPath)
	}
	return paths, nil
}

// diffImages applies the keep/delete/add image update: paths the client
// did not re-declare in existingImages are removed from storage, new
// uploads are appended after the kept ones.
func diffImages(stored models.StringList, existingImages []string, newPaths []string) (models.StringList, error) {
	declared := make(map[string]bool, len(existingImages))
	for _, p := range existingImages {
		declared[p] = true
	}

	keep := models.StringList{}
	for _, p := range stored {
		if declared[p] {
			keep = append(keep, p)
			continue
		}
		if err := storage.Delete(p); err != nil {
			return nil, err
		}
	}

	return append(keep, newPaths...), nil
}

func imageURLs(images models.StringList) []string {
	urls := make([]string, 0, len(images))
	for _, p := range images {
		urls = append(urls, storage.URL(p))
	}
	return urls
}

// GetProducts lists the product catalog, newest first
func GetProducts(c *fiber.Ctx) error {
	query := db.DB.Preload("Category").Preload("FrameType").Order("created_at DESC")
	if categoryID := c.Query("category"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch products",
			Error:   err.Error(),
		})
	}
	return c.JSON(products)
}

// GetProduct returns one product with resolved image URLs
func GetProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := db.DB.Preload("Category").Preload("FrameType").Preload("Manufacturer").
		First(&product, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}

	if product.Manufacturer != nil {
		product.Manufacturer.Password = ""
	}
	return c.JSON(fiber.Map{
		"product":    product,
		"image_urls": imageURLs(product.Images),
	})
}

// CreateProduct creates a product from a multipart form with uploads
func CreateProduct(c *fiber.Ctx) error {
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

	product := models.Product{
		Name:          name,
		Price:         price,
		Description:   formValue(form, "description"),
		Size:          formValue(form, "size"),
		FrameMaterial: formValue(form, "frame_material"),
	}

	if weight, err := strconv.ParseFloat(formValue(form, "weight"), 64); err == nil {
		product.Weight = weight
	}
	if stock, err := strconv.Atoi(formValue(form, "stock")); err == nil {
		product.Stock = stock
	}
	if id, err := strconv.ParseUint(formValue(form, "category_id"), 10, 32); err == nil {
		categoryID := uint(id)
		product.CategoryID = &categoryID
	}
	if id, err := strconv.ParseUint(formValue(form, "frame_type_id"), 10, 32); err == nil {
		frameTypeID := uint(id)
		product.FrameTypeID = &frameTypeID
	}

	manufacturerID, err := resolveManufacturer(formValue(form, "manufacturer_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	product.ManufacturerID = manufacturerID

	for key, target := range map[string]*models.StringList{
		"face_shapes":     &product.FaceShapes,
		"vision_problems": &product.VisionProblems,
		"features":        &product.Features,
		"colors":          &product.Colors,
	} {
		if list, ok := formList(form, key); ok {
			*target = list
		}
	}

	if err := db.DB.Create(&product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create product",
			Error:   err.Error(),
		})
	}

	// Image paths are keyed by product id, so files are stored after
	// the row exists. A crash here can leave the row without images;
	// file writes are not transactional with the DB.
	paths, err := storeUploads(form.File["images"], fmt.Sprintf("products/%d", product.ID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to store product images",
			Error:   err.Error(),
		})
	}
	product.Images = paths
	if err := db.DB.Model(&product).Update("images", product.Images).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save product images",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(product)
}

// UpdateProduct applies a partial multipart update. Images follow the
// keep/delete/add diff: stored paths missing from existing_images are
// deleted, new uploads are appended.
func UpdateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := db.DB.First(&product, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Expected multipart form data",
		})
	}

	if name := formValue(form, "name"); name != "" {
		product.Name = name
	}
	if price, err := strconv.ParseFloat(formValue(form, "price"), 64); err == nil {
		product.Price = price
	}
	if description := formValue(form, "description"); description != "" {
		product.Description = description
	}
	if size := formValue(form, "size"); size != "" {
		product.Size = size
	}
	if material := formValue(form, "frame_material"); material != "" {
		product.FrameMaterial = material
	}
	if weight, err := strconv.ParseFloat(formValue(form, "weight"), 64); err == nil {
		product.Weight = weight
	}
	if stock, err := strconv.Atoi(formValue(form, "stock")); err == nil {
		product.Stock = stock
	}
	if id, err := strconv.ParseUint(formValue(form, "category_id"), 10, 32); err == nil {
		categoryID := uint(id)
		product.CategoryID = &categoryID
	}
	if id, err := strconv.ParseUint(formValue(form, "frame_type_id"), 10, 32); err == nil {
		frameTypeID := uint(id)
		product.FrameTypeID = &frameTypeID
	}
	if idStr := formValue(form, "manufacturer_id"); idStr != "" {
		manufacturerID, err := resolveManufacturer(idStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		product.ManufacturerID = manufacturerID
	}

	for key, target := range map[string]*models.StringList{
		"face_shapes":     &product.FaceShapes,
		"vision_problems": &product.VisionProblems,
		"features":        &product.Features,
		"colors":          &product.Colors,
	} {
		if list, ok := formList(form, key); ok {
			*target = list
		}
	}

	existingImages, declared := formList(form, "existing_images")
	newPaths, err := storeUploads(form.File["images"], fmt.Sprintf("products/%d", product.ID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to store product images",
			Error:   err.Error(),
		})
	}

	if declared || len(newPaths) > 0 {
		if !declared {
			existingImages = product.Images
		}
		images, err := diffImages(product.Images, existingImages, newPaths)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to update product images",
				Error:   err.Error(),
			})
		}
		product.Images = images
	}

	if err := db.DB.Save(&product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update product",
			Error:   err.Error(),
		})
	}

	return c.JSON(product)
}

// UpdateProductStock sets the stock level of a product
func UpdateProductStock(c *fiber.Ctx) error {
	var product models.Product
	if err := db.DB.First(&product, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
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

	product.Stock = *input.Stock
	if err := db.DB.Save(&product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update stock",
			Error:   err.Error(),
		})
	}

	return c.JSON(product)
}

// DeleteProduct removes a product and its stored images
func DeleteProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := db.DB.First(&product, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}

	for _, path := range product.Images {
		if err := storage.Delete(path); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to delete product images",
				Error:   err.Error(),
			})
		}
	}

	if err := db.DB.Delete(&product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete product",
			Error:   err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
