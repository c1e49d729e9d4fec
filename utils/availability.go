package utils

import (
	"strings"

	"github.com/thusha-optical/optical-shop-api/db"
	"github.com/thusha-optical/optical-shop-api/models"
)

// NormalizeSlot strips 12-hour suffixes so "09:00 AM" compares equal to
// the canonical "09:00".
func NormalizeSlot(t string) string {
	t = strings.ReplaceAll(t, " AM", "")
	t = strings.ReplaceAll(t, " PM", "")
	return strings.TrimSpace(t)
}

// BookedSlots returns the times held for a doctor on a date by
// appointments whose status still blocks the slot.
func BookedSlots(doctorID uint, date string) ([]string, error) {
	var booked []string
	err := db.DB.Model(&models.Appointment{}).
		Where("doctor_id = ? AND date = ? AND status IN ?", doctorID, date, models.ActiveStatuses).
		Pluck("time", &booked).Error
	return booked, err
}

// AvailableSlots returns the canonical slot set minus the conflict set
// for a doctor on a date.
func AvailableSlots(doctorID uint, date string) ([]string, error) {
	booked, err := BookedSlots(doctorID, date)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]bool, len(booked))
	for _, t := range booked {
		taken[t] = true
	}

	available := []string{}
	for _, slot := range models.TimeSlots {
		if !taken[slot] {
			available = append(available, slot)
		}
	}
	return available, nil
}

// CheckSlotAvailability reports whether a (doctor, date, time) slot is
// free. excludeID skips the appointment being updated so it does not
// conflict with itself.
func CheckSlotAvailability(doctorID uint, date, slot string, excludeID uint) (bool, error) {
	query := db.DB.Model(&models.Appointment{}).
		Where("doctor_id = ? AND date = ? AND time = ? AND status IN ?", doctorID, date, slot, models.ActiveStatuses)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}
