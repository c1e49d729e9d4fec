package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thusha-optical/optical-shop-api/db"
	"github.com/thusha-optical/optical-shop-api/models"
	"github.com/thusha-optical/optical-shop-api/utils"
)

// SubmitContactMessage records a message from the contact form
func SubmitContactMessage(c *fiber.Ctx) error {
	message := new(models.ContactMessage)
	if err := c.BodyParser(message); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if message.Name == "" || message.Email == "" || message.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name, email and message are required",
		})
	}

	if err := db.DB.Create(message).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save message",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Message sent successfully",
	})
}

// GetContactMessages lists submitted messages, newest first
func GetContactMessages(c *fiber.Ctx) error {
	var messages []models.ContactMessage
	if err := db.DB.Order("created_at DESC").Find(&messages).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch messages",
			Error:   err.Error(),
		})
	}
	return c.JSON(messages)
}
