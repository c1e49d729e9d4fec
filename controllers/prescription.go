package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/thusha-optical/optical-shop-api/db"
	"github.com/thusha-optical/optical-shop-api/models"
	"github.com/thusha-optical/optical-shop-api/utils"
)

// GetPrescriptions lists prescriptions for the caller. Doctors see
// everything they issued; patients see only their active prescriptions.
func GetPrescriptions(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	query := db.DB.Preload("Doctor").Preload("Patient")
	if user.Role == models.RoleDoctor {
		query = query.Where("doctor_id = ?", user.ID)
	} else {
		query = query.Where("patient_id = ? AND status = ?", user.ID, models.PrescriptionActive)
	}

	var prescriptions []models.Prescription
	if err := query.Order("date_issued DESC").Find(&prescriptions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch prescriptions",
			Error:   err.Error(),
		})
	}

	for i := range prescriptions {
		prescriptions[i].Doctor.Password = ""
		prescriptions[i].Patient.Password = ""
	}
	return c.JSON(prescriptions)
}

// GetPrescription returns one prescription to its doctor or patient.
// Expired prescriptions stay retrievable by id for both owners.
func GetPrescription(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	var prescription models.Prescription
	if err := db.DB.Preload("Doctor").Preload("Patient").
		First(&prescription, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Prescription not found",
		})
	}

	if prescription.DoctorID != user.ID && prescription.PatientID != user.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have access to this prescription",
		})
	}

	prescription.Doctor.Password = ""
	prescription.Patient.Password = ""
	return c.JSON(prescription)
}

type prescriptionInput struct {
	PatientName       string     `json:"patient_name"`
	RightSphere       *float64   `json:"right_sphere"`
	RightCylinder     *float64   `json:"right_cylinder"`
	RightAxis         *int       `json:"right_axis"`
	LeftSphere        *float64   `json:"left_sphere"`
	LeftCylinder      *float64   `json:"left_cylinder"`
	LeftAxis          *int       `json:"left_axis"`
	PupillaryDistance *int       `json:"pupillary_distance"`
	AdditionalNotes   *string    `json:"additional_notes"`
	ExpiryDate        *time.Time `json:"expiry_date"`
}

// resolvePatient finds the customer account a prescription is issued to.
func resolvePatient(name string) (*models.User, error) {
	var patient models.User
	err := db.DB.Where("name = ? AND role = ?", name, models.RoleCustomer).First(&patient).Error
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

// CreatePrescription issues a new prescription. Any still-active
// prescription of the patient is expired in the same transaction, so a
// patient never holds two live prescriptions.
func CreatePrescription(c *fiber.Ctx) error {
	doctor, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User not found",
		})
	}
	if doctor.Role != models.RoleDoctor {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only doctors can create prescriptions",
		})
	}

	input := new(prescriptionInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	patient, err := resolvePatient(input.PatientName)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Patient with this name does not exist",
		})
	}

	prescription := models.Prescription{
		DoctorID:    doctor.ID,
		PatientID:   patient.ID,
		PatientName: patient.Name,
		Status:      models.PrescriptionActive,
	}
	applyPrescriptionFields(&prescription, input)

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		// Cascade expiry: supersede every live prescription first.
		if err := tx.Model(&models.Prescription{}).
			Where("patient_id = ? AND status = ? AND expiry_date > ?",
				patient.ID, models.PrescriptionActive, time.Now()).
			Updates(map[string]interface{}{
				"status":      models.PrescriptionExpired,
				"expiry_date": time.Now(),
			}).Error; err != nil {
			return err
		}
		return tx.Create(&prescription).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create prescription",
			Error:   err.Error(),
		})
	}

	prescription.Doctor = *doctor
	prescription.Patient = *patient
	prescription.Doctor.Password = ""
	prescription.Patient.Password = ""
	return c.Status(fiber.StatusCreated).JSON(prescription)
}

// UpdatePrescription lets the issuing doctor amend a prescription.
// Changing the patient re-resolves the reference; the expiry cascade
// fires only on creation, never here.
func UpdatePrescription(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	var prescription models.Prescription
	if err := db.DB.First(&prescription, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Prescription not found",
		})
	}

	if prescription.DoctorID != user.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You can only update your own prescriptions",
		})
	}

	input := new(prescriptionInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.PatientName != "" && input.PatientName != prescription.PatientName {
		patient, err := resolvePatient(input.PatientName)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Patient with this name does not exist",
			})
		}
		prescription.PatientID = patient.ID
		prescription.PatientName = patient.Name
	}
	applyPrescriptionFields(&prescription, input)

	if err := db.DB.Save(&prescription).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update prescription",
			Error:   err.Error(),
		})
	}

	return c.JSON(prescription)
}

func applyPrescriptionFields(p *models.Prescription, input *prescriptionInput) {
	if input.RightSphere != nil {
		p.RightSphere = *input.RightSphere
	}
	if input.RightCylinder != nil {
		p.RightCylinder = *input.RightCylinder
	}
	if input.RightAxis != nil {
		p.RightAxis = *input.RightAxis
	}
	if input.LeftSphere != nil {
		p.LeftSphere = *input.LeftSphere
	}
	if input.LeftCylinder != nil {
		p.LeftCylinder = *input.LeftCylinder
	}
	if input.LeftAxis != nil {
		p.LeftAxis = *input.LeftAxis
	}
	if input.PupillaryDistance != nil {
		p.PupillaryDistance = *input.PupillaryDistance
	}
	if input.AdditionalNotes != nil {
		p.AdditionalNotes = *input.AdditionalNotes
	}
	if input.ExpiryDate != nil {
		p.ExpiryDate = *input.ExpiryDate
	}
}
