package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Position is the budgeted role a seat hangs off. Provisioned by the wider
// HR suite; this service only reads it for directory views.
type Position struct {
	PositionID uuid.UUID      `gorm:"column:position_id;type:uuid;primaryKey" json:"position_id"`
	Title      string         `gorm:"column:title;not null" json:"title"`
	Department string         `gorm:"column:department" json:"department"`
	Metadata   datatypes.JSON `gorm:"column:metadata" json:"metadata"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Position) TableName() string {
	return "Positions"
}

// BeforeCreate sets UUID if not set (for DBs without gen_random_uuid).
func (p *Position) BeforeCreate(tx *gorm.DB) error {
	if p.PositionID == uuid.Nil {
		p.PositionID = uuid.New()
	}
	return nil
}
