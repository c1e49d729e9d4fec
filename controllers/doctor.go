package controllers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/thusha-optical/optical-shop-api/db"
	"github.com/thusha-optical/optical-shop-api/models"
	"github.com/thusha-optical/optical-shop-api/utils"
)

// GetDoctors lists the doctor directory. Supports ?specialization=,
// ?search= and ?date=YYYY-MM-DD (filters to doctors available on that
// weekday).
func GetDoctors(c *fiber.Ctx) error {
	query := db.DB.Preload("User")
	if specialization := c.Query("specialization"); specialization != "" {
		query = query.Where("specialization = ?", specialization)
	}

	var doctors []models.DoctorProfile
	if err := query.Find(&doctors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch doctors",
			Error:   err.Error(),
		})
	}

	if search := strings.ToLower(c.Query("search")); search != "" {
		filtered := doctors[:0]
		for _, d := range doctors {
			if strings.Contains(strings.ToLower(d.User.Name), search) ||
				strings.Contains(strings.ToLower(d.Specialization), search) {
				filtered = append(filtered, d)
			}
		}
		doctors = filtered
	}

	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.Parse(models.DateLayout, dateStr)
		if err == nil {
			weekday := models.CanonicalWeekday(date)
			filtered := doctors[:0]
			for _, d := range doctors {
				if d.IsAvailableOn(weekday) {
					filtered = append(filtered, d)
				}
			}
			doctors = filtered
		}
	}

	for i := range doctors {
		doctors[i].User.Password = ""
	}
	return c.JSON(doctors)
}

// GetAvailableDoctors lists doctors bookable on a date: available on
// that weekday and not already holding an appointment that day. A
// malformed date yields an empty list, not an error.
func GetAvailableDoctors(c *fiber.Ctx) error {
	dateStr := c.Query("date")
	date, err := time.Parse(models.DateLayout, dateStr)
	if err != nil {
		return c.JSON([]models.DoctorProfile{})
	}
	weekday := models.CanonicalWeekday(date)

	var doctors []models.DoctorProfile
	if err := db.DB.Preload("User").Find(&doctors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch doctors",
			Error:   err.Error(),
		})
	}

	// Doctors holding any pending/confirmed appointment that day are
	// treated as fully booked for the day.
	var bookedIDs []uint
	if err := db.DB.Model(&models.Appointment{}).
		Where("date = ? AND status IN ?", date.Format(models.DateLayout), models.ActiveStatuses).
		Pluck("doctor_id", &bookedIDs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}
	booked := make(map[uint]bool, len(bookedIDs))
	for _, id := range bookedIDs {
		booked[id] = true
	}

	available := []models.DoctorProfile{}
	for _, d := range doctors {
		if d.IsAvailableOn(weekday) && !booked[d.ID] {
			d.User.Password = ""
			available = append(available, d)
		}
	}

	return c.JSON(available)
}

// GetAvailableSlots returns the free time slots for a doctor on a date.
func GetAvailableSlots(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid doctor ID",
		})
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Date required",
		})
	}
	date, err := time.Parse(models.DateLayout, dateStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid date format, expected YYYY-MM-DD",
		})
	}

	var doctor models.DoctorProfile
	if err := db.DB.First(&doctor, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Doctor not found",
		})
	}

	slots, err := utils.AvailableSlots(doctor.ID, date.Format(models.DateLayout))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch slots",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"available_slots": slots,
	})
}

// GetDoctorProfile returns the calling doctor's own profile
func GetDoctorProfile(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	var profile models.DoctorProfile
	if db.DB.Preload("User").Where("user_id = ?", user.ID).First(&profile).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Doctor profile not found",
		})
	}

	profile.User.Password = ""
	return c.JSON(profile)
}

// UpdateDoctorProfile partially updates the calling doctor's profile
func UpdateDoctorProfile(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	var profile models.DoctorProfile
	if db.DB.Where("user_id = ?", user.ID).First(&profile).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Doctor profile not found",
		})
	}

	input := new(models.DoctorProfile)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	input.ID = profile.ID
	input.UserID = profile.UserID

	if err := db.DB.Model(&profile).Updates(input).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update doctor profile",
			Error:   err.Error(),
		})
	}

	return c.JSON(profile)
}
