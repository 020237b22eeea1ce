package seating

import (
	"time"

	"hrcore-backend/internal/models"

	"github.com/google/uuid"
)

// AssignOptions configures a single occupancy insert. Nil pointer fields
// fall back to their defaults: FtePercentage 100, BudgetPercentage = FTE,
// AssignmentType primary, StartDate today.
type AssignOptions struct {
	EmployeePositionID  *uuid.UUID
	FtePercentage       *float64
	BudgetPercentage    *float64
	AssignmentType      models.AssignmentType
	StartDate           time.Time
	EndDate             *time.Time
	SourceTransactionID *uuid.UUID
	Notes               string
}

// TransactionOptions carries the optional parameters of an HR transaction.
type TransactionOptions struct {
	FromPositionID       *uuid.UUID
	FtePercentage        *float64
	SecondmentReturnDate *time.Time
	// HoldOriginSeat keeps the origin occupancy open at 0% FTE during a
	// secondment. Defaults to true when nil.
	HoldOriginSeat *bool
}

// TransactionRequest is the orchestrator entry payload: one already-approved
// HR transaction to execute against the seat directory.
type TransactionRequest struct {
	Type          models.TransactionType
	TransactionID uuid.UUID
	EmployeeID    uuid.UUID
	PositionID    uuid.UUID
	EffectiveDate time.Time
	Options       TransactionOptions
}

// Result reports what an orchestration changed. OccupantID is set when a new
// occupancy row was opened; ReleasedSeatIDs lists seats whose occupancy for
// the employee was closed.
type Result struct {
	OccupantID      *uuid.UUID  `json:"occupant_id,omitempty"`
	ReleasedSeatIDs []uuid.UUID `json:"released_seat_ids,omitempty"`
}
