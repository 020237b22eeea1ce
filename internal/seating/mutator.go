package seating

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hrcore-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Mutator is the sole writer of seat status, the cached current employee and
// occupant rows. Each operation runs under the seat's lock and inside one
// store transaction, so the per-seat invariants (at most one open primary,
// open count within capacity) hold under concurrent orchestrations.
type Mutator struct {
	DB    *gorm.DB
	locks *seatLocks
}

func NewMutator(db *gorm.DB) *Mutator {
	return &Mutator{DB: db, locks: newSeatLocks()}
}

// Assign opens a new occupant row on the seat. Primary-ness is granted only
// when the caller asked for a primary assignment and no open primary exists.
// The seat record is only touched after the insert succeeds.
func (m *Mutator) Assign(ctx context.Context, seatID, employeeID uuid.UUID, opts AssignOptions) (uuid.UUID, error) {
	unlock := m.locks.lock(seatID)
	defer unlock()

	fte := 100.0
	if opts.FtePercentage != nil {
		fte = *opts.FtePercentage
	}
	budget := fte
	if opts.BudgetPercentage != nil {
		budget = *opts.BudgetPercentage
	}
	assignmentType := opts.AssignmentType
	if assignmentType == "" {
		assignmentType = models.AssignmentPrimary
	}
	startDate := opts.StartDate
	if startDate.IsZero() {
		startDate = time.Now().UTC().Truncate(24 * time.Hour)
	}

	var occupantID uuid.UUID
	err := m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seat models.Seat
		if err := tx.Where("seat_id = ?", seatID).First(&seat).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSeatNotFound
			}
			return err
		}

		var open int64
		if err := tx.Model(&models.Occupant{}).
			Where("seat_id = ? AND end_date IS NULL", seatID).
			Count(&open).Error; err != nil {
			return err
		}
		capacity := int64(1)
		if seat.IsShared {
			capacity = int64(seat.MaxOccupants)
		}
		if open >= capacity {
			return ErrSeatAtCapacity
		}

		var openPrimary int64
		if err := tx.Model(&models.Occupant{}).
			Where("seat_id = ? AND end_date IS NULL AND is_primary_occupant = ?", seatID, true).
			Count(&openPrimary).Error; err != nil {
			return err
		}
		isPrimary := assignmentType == models.AssignmentPrimary && openPrimary == 0

		occupant := models.Occupant{
			SeatID:              seatID,
			EmployeeID:          employeeID,
			EmployeePositionID:  opts.EmployeePositionID,
			FtePercentage:       fte,
			BudgetPercentage:    budget,
			AssignmentType:      assignmentType,
			IsPrimaryOccupant:   isPrimary,
			StartDate:           startDate,
			EndDate:             opts.EndDate,
			SourceTransactionID: opts.SourceTransactionID,
			Notes:               opts.Notes,
		}
		if err := tx.Create(&occupant).Error; err != nil {
			return err
		}
		occupantID = occupant.OccupantID

		return recomputeSeat(tx, seatID)
	})
	if err != nil {
		if errors.Is(err, ErrSeatNotFound) || errors.Is(err, ErrSeatAtCapacity) {
			return uuid.Nil, err
		}
		return uuid.Nil, fmt.Errorf("%w: %v", ErrAssignmentFailed, err)
	}
	return occupantID, nil
}

// Release closes every open occupant row matching (seat, employee) and
// recomputes the seat. Releasing an employee with no open occupancy on the
// seat is a no-op, not an error, so retries are safe.
func (m *Mutator) Release(ctx context.Context, seatID, employeeID uuid.UUID, endDate time.Time, reason string) error {
	unlock := m.locks.lock(seatID)
	defer unlock()

	err := m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Occupant{}).
			Where("seat_id = ? AND employee_id = ? AND end_date IS NULL", seatID, employeeID).
			Updates(map[string]interface{}{"end_date": endDate, "notes": reason})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return recomputeSeat(tx, seatID)
	})
	if err != nil {
		if errors.Is(err, ErrSeatNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrReleaseFailed, err)
	}
	return nil
}

// HoldForSecondment keeps the employee's open rows on the origin seat alive
// at 0% FTE so the original assignment survives the secondment, annotated
// with the scheduled return date.
func (m *Mutator) HoldForSecondment(ctx context.Context, seatID, employeeID uuid.UUID, returnDate time.Time) error {
	unlock := m.locks.lock(seatID)
	defer unlock()

	err := m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(&models.Occupant{}).
			Where("seat_id = ? AND employee_id = ? AND end_date IS NULL", seatID, employeeID).
			Updates(map[string]interface{}{
				"fte_percentage": 0,
				"notes":          fmt.Sprintf("On secondment until %s", returnDate.Format("2006-01-02")),
			}).Error
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReleaseFailed, err)
	}
	return nil
}

// LinkSecondmentDestination records the origin seat and scheduled return
// date on the destination seat.
func (m *Mutator) LinkSecondmentDestination(ctx context.Context, destSeatID, originSeatID uuid.UUID, returnDate time.Time) error {
	unlock := m.locks.lock(destSeatID)
	defer unlock()

	err := m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Seat{}).
			Where("seat_id = ?", destSeatID).
			Updates(map[string]interface{}{
				"secondment_origin_seat_id": originSeatID,
				"secondment_return_date":    returnDate,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrSeatNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSeatNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrAssignmentFailed, err)
	}
	return nil
}

// recomputeSeat re-derives the seat's status and cached current employee
// from the open-occupant set: FILLED with the open primary's employee when
// one exists, VACANT otherwise. The cache is never a second source of truth.
func recomputeSeat(tx *gorm.DB, seatID uuid.UUID) error {
	var seat models.Seat
	if err := tx.Where("seat_id = ?", seatID).First(&seat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSeatNotFound
		}
		return err
	}

	var primary models.Occupant
	err := tx.Where("seat_id = ? AND end_date IS NULL AND is_primary_occupant = ?", seatID, true).
		Order("start_date, occupant_id").
		First(&primary).Error
	switch {
	case err == nil:
		employeeID := primary.EmployeeID
		seat.Status = models.SeatFilled
		seat.CurrentEmployeeID = &employeeID
	case errors.Is(err, gorm.ErrRecordNotFound):
		seat.Status = models.SeatVacant
		seat.CurrentEmployeeID = nil
	default:
		return err
	}

	return tx.Save(&seat).Error
}
