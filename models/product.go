package models

import (
	"time"
)

type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:100;unique"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type FrameType struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:100;unique"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type Product struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"size:200"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`

	CategoryID  *uint      `json:"category_id"`
	Category    *Category  `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	FrameTypeID *uint      `json:"frame_type_id"`
	FrameType   *FrameType `json:"frame_type,omitempty" gorm:"foreignKey:FrameTypeID"`

	Size          string  `json:"size" gorm:"size:5"` // S / M / L
	Weight        float64 `json:"weight"`
	Stock         int     `json:"stock"`
	FrameMaterial string  `json:"frame_material" gorm:"size:100"`

	ManufacturerID *uint `json:"manufacturer_id"`
	Manufacturer   *User `json:"manufacturer,omitempty" gorm:"foreignKey:ManufacturerID"`

	// Images holds storage-relative paths in upload order.
	Images         StringList `json:"images" gorm:"type:text"`
	FaceShapes     StringList `json:"face_shapes" gorm:"type:text"`
	VisionProblems StringList `json:"vision_problems" gorm:"type:text"`
	Features       StringList `json:"features" gorm:"type:text"`
	Colors         StringList `json:"colors" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Accessory struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"size:200"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`

	CategoryID *uint     `json:"category_id"`
	Category   *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`

	Stock int `json:"stock"`

	ManufacturerID *uint `json:"manufacturer_id"`
	Manufacturer   *User `json:"manufacturer,omitempty" gorm:"foreignKey:ManufacturerID"`

	Images StringList `json:"images" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
