package db

import (
	"fmt"
	"log"

	"github.com/thusha-optical/optical-shop-api/models"
)

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.CustomerProfile{},
		&models.OTP{},
		&models.DoctorProfile{},
		&models.Appointment{},
		&models.Prescription{},
		&models.Category{},
		&models.FrameType{},
		&models.Product{},
		&models.Accessory{},
		&models.ContactMessage{},
		&models.FaceShapeResult{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
