package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

type PrescriptionStatus string

const (
	PrescriptionActive  PrescriptionStatus = "active"
	PrescriptionExpired PrescriptionStatus = "expired"
)

// PrescriptionValidity is the default lifetime of a new prescription.
const PrescriptionValidity = 365 * 24 * time.Hour

type Prescription struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	PrescriptionID string `json:"prescription_id" gorm:"size:10;unique"`

	DoctorID uint `json:"doctor_id"`
	Doctor   User `json:"doctor" gorm:"foreignKey:DoctorID"`

	PatientID uint `json:"patient_id"`
	Patient   User `json:"patient" gorm:"foreignKey:PatientID"`

	// PatientName is a snapshot taken at issuance; it does not track
	// later renames of the patient account.
	PatientName string `json:"patient_name" gorm:"size:255"`

	RightSphere   float64 `json:"right_sphere" gorm:"default:0"`
	RightCylinder float64 `json:"right_cylinder" gorm:"default:0"`
	RightAxis     int     `json:"right_axis" gorm:"default:0"`
	LeftSphere    float64 `json:"left_sphere" gorm:"default:0"`
	LeftCylinder  float64 `json:"left_cylinder" gorm:"default:0"`
	LeftAxis      int     `json:"left_axis" gorm:"default:0"`

	PupillaryDistance int    `json:"pupillary_distance"`
	AdditionalNotes   string `json:"additional_notes"`

	DateIssued time.Time          `json:"date_issued"`
	ExpiryDate time.Time          `json:"expiry_date"`
	Status     PrescriptionStatus `json:"status" gorm:"size:10;default:active"`
}

// BeforeCreate assigns the next sequential PC-### id and fills defaults.
// Ids keep growing past PC-999 without re-padding.
func (p *Prescription) BeforeCreate(tx *gorm.DB) error {
	if p.PrescriptionID == "" {
		var last Prescription
		next := 1
		if err := tx.Order("id DESC").First(&last).Error; err == nil {
			parts := strings.SplitN(last.PrescriptionID, "-", 2)
			if len(parts) == 2 {
				if n, err := strconv.Atoi(parts[1]); err == nil {
					next = n + 1
				}
			}
		}
		p.PrescriptionID = fmt.Sprintf("PC-%03d", next)
	}

	if p.DateIssued.IsZero() {
		p.DateIssued = time.Now()
	}
	if p.ExpiryDate.IsZero() {
		p.ExpiryDate = time.Now().Add(PrescriptionValidity)
	}
	if p.Status == "" {
		p.Status = PrescriptionActive
	}
	return nil
}
