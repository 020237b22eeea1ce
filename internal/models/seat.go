package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeatStatus is the live fill state of a seat. It is derived data: the
// occupancy mutator recomputes it from the open-occupant set on every write.
type SeatStatus string

const (
	SeatVacant SeatStatus = "VACANT"
	SeatFilled SeatStatus = "FILLED"
)

// Seat is one budgeted slot under a position. Seats are provisioned outside
// this service and never deleted here; only the occupancy mutator writes
// Status and CurrentEmployeeID.
type Seat struct {
	SeatID                 uuid.UUID      `gorm:"column:seat_id;type:uuid;primaryKey" json:"seat_id"`
	PositionID             uuid.UUID      `gorm:"column:position_id;type:uuid;not null;index" json:"position_id"`
	Status                 SeatStatus     `gorm:"column:status;not null;default:VACANT" json:"status"`
	IsShared               bool           `gorm:"column:is_shared;not null;default:false" json:"is_shared"`
	MaxOccupants           int            `gorm:"column:max_occupants;not null;default:1" json:"max_occupants"`
	CurrentEmployeeID      *uuid.UUID     `gorm:"column:current_employee_id;type:uuid" json:"current_employee_id"`
	SecondmentOriginSeatID *uuid.UUID     `gorm:"column:secondment_origin_seat_id;type:uuid" json:"secondment_origin_seat_id"`
	SecondmentReturnDate   *time.Time     `gorm:"column:secondment_return_date" json:"secondment_return_date"`
	CreatedAt              time.Time      `json:"createdAt"`
	UpdatedAt              time.Time      `json:"updatedAt"`
	DeletedAt              gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Seat) TableName() string {
	return "Seats"
}

// BeforeCreate sets UUID if not set (for DBs without gen_random_uuid).
func (s *Seat) BeforeCreate(tx *gorm.DB) error {
	if s.SeatID == uuid.Nil {
		s.SeatID = uuid.New()
	}
	return nil
}
