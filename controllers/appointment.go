package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/thusha-optical/optical-shop-api/db"
	"github.com/thusha-optical/optical-shop-api/models"
	"github.com/thusha-optical/optical-shop-api/utils"
)

// validateBooking runs the booking rules in order and returns a client
// error message when a rule fails. The conflict check excludes the
// appointment being updated so it cannot conflict with itself.
func validateBooking(doctorID uint, date, timeSlot, reason, phone string, excludeID uint) (int, string) {
	parsed, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return fiber.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD"
	}

	today := time.Now().Format(models.DateLayout)
	if parsed.Format(models.DateLayout) < today {
		return fiber.StatusBadRequest, "Appointment date cannot be in the past"
	}

	maxDate := time.Now().AddDate(0, 0, models.MaxAdvanceBookingDays).Format(models.DateLayout)
	if parsed.Format(models.DateLayout) > maxDate {
		return fiber.StatusBadRequest, "Cannot book more than 60 days in advance"
	}

	if len(reason) < 10 {
		return fiber.StatusBadRequest, "Reason must be at least 10 characters"
	}
	if len(phone) < 10 {
		return fiber.StatusBadRequest, "Phone must be at least 10 characters"
	}

	if !models.IsValidSlot(timeSlot) {
		return fiber.StatusBadRequest, "Invalid time slot"
	}

	available, err := utils.CheckSlotAvailability(doctorID, date, timeSlot, excludeID)
	if err != nil {
		return fiber.StatusInternalServerError, "Failed to check slot availability"
	}
	if !available {
		return fiber.StatusConflict, "This time slot is already booked"
	}

	return 0, ""
}

// sendAppointmentEmails notifies the patient and the doctor. Failures
// are returned to the caller rather than swallowed.
func sendAppointmentEmails(appointment *models.Appointment, doctor *models.DoctorProfile) error {
	display := models.TimeSlotDisplay[appointment.Time]

	patientBody := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your appointment with Dr. %s has been %s.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
			<li><strong>Specialization:</strong> %s</li>
			<li><strong>Reason:</strong> %s</li>
		</ul>
		<p>Thusha Optical, Hospital Road, Jaffna — (123) 456-7890</p>
	`, appointment.Patient.Name, doctor.User.Name, appointment.Status,
		appointment.Date, display, doctor.Specialization, appointment.Reason)

	subject := fmt.Sprintf("Your appointment with Dr. %s", doctor.User.Name)
	if err := utils.SendEmail(appointment.Patient.Email, subject, patientBody); err != nil {
		return err
	}

	if doctor.User.Email == "" {
		return nil
	}

	doctorBody := fmt.Sprintf(`
		<p>Dear Dr. %s,</p>
		<p>Appointment update for patient %s (%s).</p>
		<ul>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
			<li><strong>Phone:</strong> %s</li>
			<li><strong>Reason:</strong> %s</li>
			<li><strong>Status:</strong> %s</li>
		</ul>
	`, doctor.User.Name, appointment.Patient.Name, appointment.Patient.Email,
		appointment.Date, display, appointment.Phone, appointment.Reason, appointment.Status)

	return utils.SendEmail(doctor.User.Email, fmt.Sprintf("Appointment: %s", appointment.Patient.Name), doctorBody)
}

// canAccessAppointment allows only the patient or the assigned doctor.
func canAccessAppointment(user *models.User, appointment *models.Appointment) bool {
	if appointment.PatientID == user.ID {
		return true
	}
	return appointment.Doctor.UserID == user.ID
}

// GetAppointments lists the caller's appointments (as patient or as the
// assigned doctor), filterable by status, doctor and date.
func GetAppointments(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	query := db.DB.Preload("Doctor").Preload("Doctor.User").Preload("Patient")

	var doctorProfile models.DoctorProfile
	if db.DB.Where("user_id = ?", user.ID).First(&doctorProfile).RowsAffected > 0 {
		query = query.Where("patient_id = ? OR doctor_id = ?", user.ID, doctorProfile.ID)
	} else {
		query = query.Where("patient_id = ?", user.ID)
	}

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if doctorID := c.Query("doctor"); doctorID != "" {
		query = query.Where("doctor_id = ?", doctorID)
	}
	if date := c.Query("date"); date != "" {
		query = query.Where("date = ?", date)
	}

	var appointments []models.Appointment
	if err := query.Order("date DESC, time ASC").Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}

	for i := range appointments {
		appointments[i].Patient.Password = ""
		appointments[i].Doctor.User.Password = ""
	}
	return c.JSON(appointments)
}

// GetAppointment returns one appointment to its patient or doctor
func GetAppointment(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	var appointment models.Appointment
	if err := db.DB.Preload("Doctor").Preload("Doctor.User").Preload("Patient").
		First(&appointment, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Appointment not found",
		})
	}

	if !canAccessAppointment(user, &appointment) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have access to this appointment",
		})
	}

	appointment.Patient.Password = ""
	appointment.Doctor.User.Password = ""
	return c.JSON(appointment)
}

// CreateAppointment books a slot for the calling patient
func CreateAppointment(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	type BookingInput struct {
		DoctorID uint   `json:"doctor_id"`
		Date     string `json:"date"`
		Time     string `json:"time"`
		Reason   string `json:"reason"`
		Phone    string `json:"phone"`
	}

	input := new(BookingInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	input.Time = utils.NormalizeSlot(input.Time)

	var doctor models.DoctorProfile
	if err := db.DB.Preload("User").First(&doctor, input.DoctorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Doctor not found",
		})
	}

	if status, msg := validateBooking(doctor.ID, input.Date, input.Time, input.Reason, input.Phone, 0); status != 0 {
		return c.Status(status).JSON(fiber.Map{
			"error": msg,
		})
	}

	appointment := models.Appointment{
		PatientID: user.ID,
		DoctorID:  doctor.ID,
		Date:      input.Date,
		Time:      input.Time,
		Reason:    input.Reason,
		Phone:     input.Phone,
		Status:    models.StatusConfirmed,
	}

	// The unique index on (doctor, date, time) rejects a racing insert
	// that slipped past the pre-check.
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		available, err := utils.CheckSlotAvailability(doctor.ID, appointment.Date, appointment.Time, 0)
		if err != nil {
			return err
		}
		if !available {
			return fmt.Errorf("time slot not available")
		}
		return tx.Create(&appointment).Error
	})
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "This time slot is already booked",
			Error:   err.Error(),
		})
	}

	appointment.Patient = *user
	appointment.Doctor = doctor

	// The appointment is already persisted at this point; a failed send
	// is surfaced, not masked.
	if err := sendAppointmentEmails(&appointment, &doctor); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Appointment booked but confirmation email failed",
			Error:   err.Error(),
		})
	}

	appointment.Patient.Password = ""
	appointment.Doctor.User.Password = ""
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Appointment booked successfully. Confirmation sent to your email.",
		"appointment": appointment,
	})
}

// UpdateAppointment reschedules or changes the status of an appointment
func UpdateAppointment(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	var appointment models.Appointment
	if err := db.DB.Preload("Doctor").Preload("Doctor.User").Preload("Patient").
		First(&appointment, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Appointment not found",
		})
	}

	if !canAccessAppointment(user, &appointment) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have access to this appointment",
		})
	}

	type UpdateInput struct {
		Date   *string                   `json:"date"`
		Time   *string                   `json:"time"`
		Reason *string                   `json:"reason"`
		Phone  *string                   `json:"phone"`
		Status *models.AppointmentStatus `json:"status"`
	}

	input := new(UpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	statusChanged := false
	rescheduled := false
	if input.Date != nil {
		appointment.Date = *input.Date
		rescheduled = true
	}
	if input.Time != nil {
		appointment.Time = utils.NormalizeSlot(*input.Time)
		rescheduled = true
	}
	if input.Reason != nil {
		appointment.Reason = *input.Reason
	}
	if input.Phone != nil {
		appointment.Phone = *input.Phone
	}
	if input.Status != nil && *input.Status != appointment.Status {
		switch *input.Status {
		case models.StatusPending, models.StatusConfirmed, models.StatusCancelled, models.StatusCompleted:
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid status",
			})
		}
		appointment.Status = *input.Status
		statusChanged = true
	}

	// Changed dates and times revalidate like a fresh booking; a pure
	// status change does not reject an appointment whose date has since
	// passed (the lazy completed transition handles that on save).
	if rescheduled {
		if status, msg := validateBooking(appointment.DoctorID, appointment.Date, appointment.Time,
			appointment.Reason, appointment.Phone, appointment.ID); status != 0 {
			return c.Status(status).JSON(fiber.Map{
				"error": msg,
			})
		}
	} else {
		if len(appointment.Reason) < 10 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Reason must be at least 10 characters",
			})
		}
		if len(appointment.Phone) < 10 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Phone must be at least 10 characters",
			})
		}
	}

	if err := db.DB.Save(&appointment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update appointment",
			Error:   err.Error(),
		})
	}

	if statusChanged {
		if err := sendAppointmentEmails(&appointment, &appointment.Doctor); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Appointment updated but notification email failed",
				Error:   err.Error(),
			})
		}
	}

	appointment.Patient.Password = ""
	appointment.Doctor.User.Password = ""
	return c.JSON(appointment)
}

// CancelAppointment cancels an appointment. Rows are kept; cancellation
// is a status, not a deletion.
func CancelAppointment(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	var appointment models.Appointment
	if err := db.DB.Preload("Doctor").Preload("Doctor.User").Preload("Patient").
		First(&appointment, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Appointment not found",
		})
	}

	if !canAccessAppointment(user, &appointment) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have access to this appointment",
		})
	}

	appointment.Status = models.StatusCancelled
	if err := db.DB.Save(&appointment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to cancel appointment",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Appointment cancelled",
	})
}
