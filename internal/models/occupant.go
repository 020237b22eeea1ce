package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssignmentType classifies an occupant's claim on a seat.
type AssignmentType string

const (
	AssignmentPrimary    AssignmentType = "primary"
	AssignmentActing     AssignmentType = "acting"
	AssignmentSecondment AssignmentType = "secondment"
	AssignmentShared     AssignmentType = "shared"
)

// Occupant is one employee's time-bounded claim on one seat. A row with a
// nil EndDate is open (currently occupying). Rows are closed by setting
// EndDate, never hard-deleted.
type Occupant struct {
	OccupantID          uuid.UUID      `gorm:"column:occupant_id;type:uuid;primaryKey" json:"occupant_id"`
	SeatID              uuid.UUID      `gorm:"column:seat_id;type:uuid;not null;index" json:"seat_id"`
	EmployeeID          uuid.UUID      `gorm:"column:employee_id;type:uuid;not null;index" json:"employee_id"`
	EmployeePositionID  *uuid.UUID     `gorm:"column:employee_position_id;type:uuid" json:"employee_position_id"`
	FtePercentage       float64        `gorm:"column:fte_percentage;not null;default:100" json:"fte_percentage"`
	BudgetPercentage    float64        `gorm:"column:budget_percentage;not null;default:100" json:"budget_percentage"`
	AssignmentType      AssignmentType `gorm:"column:assignment_type;not null;default:primary" json:"assignment_type"`
	IsPrimaryOccupant   bool           `gorm:"column:is_primary_occupant;not null;default:false" json:"is_primary_occupant"`
	StartDate           time.Time      `gorm:"column:start_date;not null" json:"start_date"`
	EndDate             *time.Time     `gorm:"column:end_date" json:"end_date"`
	SourceTransactionID *uuid.UUID     `gorm:"column:source_transaction_id;type:uuid" json:"source_transaction_id"`
	Notes               string         `gorm:"column:notes" json:"notes"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
}

func (Occupant) TableName() string {
	return "Occupants"
}

// BeforeCreate sets UUID if not set (for DBs without gen_random_uuid).
func (o *Occupant) BeforeCreate(tx *gorm.DB) error {
	if o.OccupantID == uuid.Nil {
		o.OccupantID = uuid.New()
	}
	return nil
}
