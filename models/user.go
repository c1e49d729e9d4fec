package models

import (
	"time"
)

type Role string

const (
	RoleCustomer     Role = "customer"
	RoleDoctor       Role = "doctor"
	RoleAdmin        Role = "admin"
	RoleDelivery     Role = "delivery"
	RoleManufacturer Role = "manufacturer"
)

// IsValid reports whether r is one of the known account roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleDoctor, RoleAdmin, RoleDelivery, RoleManufacturer:
		return true
	}
	return false
}

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name"`
	Email     string    `json:"email" gorm:"unique"`
	Password  string    `json:"password,omitempty"`
	Role      Role      `json:"role" gorm:"size:20;default:customer"`
	IsActive  bool      `json:"is_active" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomerProfile holds the contact and delivery details of a customer
// account. An empty profile is created when the account is activated.
type CustomerProfile struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         uint      `json:"user_id" gorm:"uniqueIndex"`
	User           User      `json:"-" gorm:"foreignKey:UserID"`
	PhoneNumber    string    `json:"phone_number"`
	ProfilePicture string    `json:"profile_picture"`
	AddressLine1   string    `json:"address_line1"`
	AddressLine2   string    `json:"address_line2"`
	City           string    `json:"city"`
	State          string    `json:"state"`
	ZipCode        string    `json:"zip_code"`
	Country        string    `json:"country"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// OTPTTL is how long a verification code stays valid.
const OTPTTL = 5 * time.Minute

type OTP struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
	Code      string    `json:"code" gorm:"size:6"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired reports whether the code is past its validity window.
func (o *OTP) IsExpired() bool {
	return time.Now().After(o.ExpiresAt)
}
