package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Staff is the persistence record for a salon worker. It is converted to and
// from domain.Staff at the repository boundary; the optimizer never sees it.
type Staff struct {
	ID                   string         `gorm:"type:uuid;primary_key;" json:"id"`
	Name                 string         `gorm:"type:varchar(255);not null" json:"name"`
	HourlyRate           string         `gorm:"type:varchar(32);not null" json:"hourlyRate"`
	MaxHoursPerDay       int            `gorm:"not null" json:"maxHoursPerDay"`
	MaxHoursPerWeek      int            `gorm:"not null" json:"maxHoursPerWeek"`
	MinBreakMinutes      int            `gorm:"not null" json:"minBreakMinutes"`
	ConsecutiveWorkLimit int            `gorm:"not null" json:"consecutiveWorkLimit"`
	CreatedAt            time.Time      `json:"createdAt"`
	UpdatedAt            time.Time      `json:"updatedAt"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`

	Skills       []Skill       `gorm:"foreignKey:StaffID" json:"skills"`
	Availability []Availability `gorm:"foreignKey:StaffID" json:"availability"`
}

// BeforeCreate assigns a UUID if the caller did not supply one.
func (s *Staff) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// TableName explicitly sets the table name.
func (Staff) TableName() string {
	return "staff"
}

// Skill is one (service_type, level) competency row for a staff member.
type Skill struct {
	ID                string     `gorm:"type:uuid;primary_key;" json:"id"`
	StaffID           string     `gorm:"index;type:uuid;not null" json:"staffId"`
	ServiceType       string     `gorm:"type:varchar(32);not null" json:"serviceType"`
	Level             int        `gorm:"not null" json:"level"`
	CertificationDate *time.Time `json:"certificationDate,omitempty"`
	YearsExperience   int        `gorm:"not null" json:"yearsExperience"`
}

func (s *Skill) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

func (Skill) TableName() string {
	return "staff_skills"
}

// Availability is one recurring window a staff member can work.
type Availability struct {
	ID          string `gorm:"type:uuid;primary_key;" json:"id"`
	StaffID     string `gorm:"index;type:uuid;not null" json:"staffId"`
	DayOfWeek   int    `gorm:"not null" json:"dayOfWeek"`
	StartMinute int    `gorm:"not null" json:"startMinute"`
	EndMinute   int    `gorm:"not null" json:"endMinute"`
	IsPreferred bool   `gorm:"not null" json:"isPreferred"`
}

func (a *Availability) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

func (Availability) TableName() string {
	return "staff_availability"
}
