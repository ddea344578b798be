package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Customer is the persistence record for the person a booking is made for.
type Customer struct {
	ID                string         `gorm:"type:uuid;primary_key;" json:"id"`
	Name              string         `gorm:"type:varchar(255);not null" json:"name"`
	Phone             string         `gorm:"type:varchar(32)" json:"phone"`
	Email             string         `gorm:"type:varchar(255);index" json:"email"`
	Priority          int            `gorm:"not null" json:"priority"`
	PreferredStaffIDs pq.StringArray `gorm:"type:text[]" json:"preferredStaffIds"`
	Notes             string         `gorm:"type:text" json:"notes"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

func (Customer) TableName() string {
	return "customers"
}
