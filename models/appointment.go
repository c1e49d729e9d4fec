package models

import (
	"time"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// TimeSlots are the four bookable clock times per day.
var TimeSlots = []string{"09:00", "10:30", "13:00", "15:30"}

// TimeSlotDisplay maps canonical slots to their 12-hour labels.
var TimeSlotDisplay = map[string]string{
	"09:00": "09:00 AM",
	"10:30": "10:30 AM",
	"13:00": "01:00 PM",
	"15:30": "03:30 PM",
}

// DateLayout is the wire format for appointment dates.
const DateLayout = "2006-01-02"

// MaxAdvanceBookingDays bounds how far ahead an appointment may be booked.
const MaxAdvanceBookingDays = 60

// IsValidSlot reports whether t is one of the canonical time slots.
func IsValidSlot(t string) bool {
	for _, slot := range TimeSlots {
		if slot == t {
			return true
		}
	}
	return false
}

// ActiveStatuses are the statuses that hold a slot against rebooking.
var ActiveStatuses = []AppointmentStatus{StatusPending, StatusConfirmed}

type Appointment struct {
	ID           uint              `json:"id" gorm:"primaryKey"`
	PatientID    uint              `json:"patient_id"`
	Patient      User              `json:"patient" gorm:"foreignKey:PatientID"`
	DoctorID     uint              `json:"doctor_id" gorm:"uniqueIndex:idx_booking_slot"`
	Doctor       DoctorProfile     `json:"doctor" gorm:"foreignKey:DoctorID"`
	Date         string            `json:"date" gorm:"size:10;uniqueIndex:idx_booking_slot"`
	Time         string            `json:"time" gorm:"size:5;uniqueIndex:idx_booking_slot"`
	Reason       string            `json:"reason" gorm:"size:100"`
	Phone        string            `json:"phone" gorm:"size:20"`
	Status       AppointmentStatus `json:"status" gorm:"size:10;default:pending"`
	ReminderSent bool              `json:"-" gorm:"default:false"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusPending
	}
	return nil
}

// BeforeSave forces past appointments to completed. The transition is
// evaluated on every write path rather than by a background sweep.
func (a *Appointment) BeforeSave(tx *gorm.DB) error {
	if a.IsPastDue() {
		a.Status = StatusCompleted
	}
	return nil
}

// IsPastDue reports whether the appointment date is before today.
func (a *Appointment) IsPastDue() bool {
	date, err := time.Parse(DateLayout, a.Date)
	if err != nil {
		return false
	}
	today := time.Now().Format(DateLayout)
	return date.Format(DateLayout) < today
}
