package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// StringList stores an ordered list of strings as a JSON column.
type StringList []string

// Value implements the driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	jsonData, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal StringList: unsupported type %T", value)
	}

	return json.Unmarshal(data, l)
}

// Contains reports whether the list holds s (case-insensitive).
func (l StringList) Contains(s string) bool {
	for _, item := range l {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}

// CanonicalWeekday returns the lowercase full weekday name used as the
// availability key, e.g. "monday".
func CanonicalWeekday(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// DoctorProfile is the public directory entry of a doctor account.
// Availability lists the weekdays that accept bookings.
type DoctorProfile struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	UserID          uint       `json:"user_id" gorm:"uniqueIndex"`
	User            User       `json:"user" gorm:"foreignKey:UserID"`
	Specialization  string     `json:"specialization"`
	ExperienceYears int        `json:"experience_years"`
	Qualifications  string     `json:"qualifications"`
	Biography       string     `json:"biography"`
	Availability    StringList `json:"availability" gorm:"type:text"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// BeforeSave normalizes availability entries to canonical weekday form.
func (d *DoctorProfile) BeforeSave(tx *gorm.DB) error {
	for i, day := range d.Availability {
		d.Availability[i] = strings.ToLower(strings.TrimSpace(day))
	}
	return nil
}

// IsAvailableOn reports whether the doctor takes bookings on the given day.
func (d *DoctorProfile) IsAvailableOn(day string) bool {
	return d.Availability.Contains(day)
}
