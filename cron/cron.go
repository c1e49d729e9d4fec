package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/thusha-optical/optical-shop-api/db"
	"github.com/thusha-optical/optical-shop-api/models"
	"github.com/thusha-optical/optical-shop-api/utils"
)

// StartCronJobs initializes and starts the cron scheduler for appointment reminders
func StartCronJobs() {
	fmt.Println("Starting cron job scheduler...")
	c := cron.New()
	// Run hourly, reminders go out the day before the visit
	_, err := c.AddFunc("0 * * * *", sendAppointmentReminders)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for appointment reminders")
}

// sendAppointmentReminders finds confirmed appointments scheduled for
// tomorrow that have not been reminded yet and emails the patients.
func sendAppointmentReminders() {
	tomorrow := time.Now().AddDate(0, 0, 1).Format(models.DateLayout)

	var appointments []models.Appointment
	err := db.DB.Preload("Patient").Preload("Doctor.User").
		Where("status = ? AND date = ? AND reminder_sent = ?", models.StatusConfirmed, tomorrow, false).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	for _, appointment := range appointments {
		if err := sendReminderEmail(&appointment); err != nil {
			log.Printf("Failed to send reminder for appointment %d: %v", appointment.ID, err)
			continue
		}
		if err := db.DB.Model(&appointment).Update("reminder_sent", true).Error; err != nil {
			log.Printf("Failed to mark reminder sent for appointment %d: %v", appointment.ID, err)
			continue
		}
		log.Printf("Sent reminder for appointment %d to %s", appointment.ID, appointment.Patient.Email)
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(appointment *models.Appointment) error {
	slot := models.TimeSlotDisplay[appointment.Time]
	if slot == "" {
		slot = appointment.Time
	}
	subject := "Reminder: Your Appointment Tomorrow"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your appointment scheduled tomorrow.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Doctor:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
		</ul>
		<p>Please arrive on time. If you need to reschedule or cancel, contact us as soon as possible.</p>
		<p>Best regards,</p>
		<p>Thusha Optical</p>
	`, appointment.Patient.Name, appointment.Doctor.User.Name, appointment.Date, slot)

	return utils.SendEmail(appointment.Patient.Email, subject, body)
}
