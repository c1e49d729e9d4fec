package models

import (
	"time"
)

type ContactMessage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone" gorm:"size:20"`
	Subject   string    `json:"subject" gorm:"size:200"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// FaceShapeResult records one classification of an uploaded face image.
type FaceShapeResult struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Image     string    `json:"image"` // storage-relative path
	FaceShape string    `json:"face_shape" gorm:"size:50"`
	CreatedAt time.Time `json:"created_at"`
}
