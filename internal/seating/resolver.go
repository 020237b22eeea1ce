package seating

import (
	"context"
	"errors"

	"hrcore-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Resolver selects seats for assignment. Read-only: it never writes seat or
// occupant state.
type Resolver struct {
	DB *gorm.DB
}

// FindSeatForPosition picks the seat a new occupant should land on. Priority:
// first vacant seat, else first shared seat with spare capacity, else nil.
// Seats are scanned in creation order so the tie-break is deterministic.
// A position with no seats is not an error; the caller branches on nil.
func (r *Resolver) FindSeatForPosition(ctx context.Context, positionID uuid.UUID) (*models.Seat, error) {
	var seats []models.Seat
	if err := r.DB.WithContext(ctx).
		Where("position_id = ?", positionID).
		Order("created_at, seat_id").
		Find(&seats).Error; err != nil {
		return nil, err
	}

	for i := range seats {
		if seats[i].Status == models.SeatVacant {
			return &seats[i], nil
		}
	}

	for i := range seats {
		seat := &seats[i]
		if !seat.IsShared {
			continue
		}
		var open int64
		if err := r.DB.WithContext(ctx).Model(&models.Occupant{}).
			Where("seat_id = ? AND end_date IS NULL", seat.SeatID).
			Count(&open).Error; err != nil {
			return nil, err
		}
		if open < int64(seat.MaxOccupants) {
			return seat, nil
		}
	}

	return nil, nil
}

// FindEmployeeSeatForPosition returns the seat under positionID that the
// employee currently occupies (has an open occupant row on), or nil. Used by
// transfer and secondment to locate the origin seat.
func (r *Resolver) FindEmployeeSeatForPosition(ctx context.Context, employeeID, positionID uuid.UUID) (*models.Seat, error) {
	openSeats := r.DB.Model(&models.Occupant{}).
		Select("seat_id").
		Where("employee_id = ? AND end_date IS NULL", employeeID)

	var seat models.Seat
	err := r.DB.WithContext(ctx).
		Where("position_id = ? AND seat_id IN (?)", positionID, openSeats).
		Order("created_at, seat_id").
		First(&seat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &seat, nil
}

// FindEmployeeOpenSeats lists the distinct seats on which the employee has
// any open occupancy, across all positions. Used by termination.
func (r *Resolver) FindEmployeeOpenSeats(ctx context.Context, employeeID uuid.UUID) ([]uuid.UUID, error) {
	var seatIDs []uuid.UUID
	if err := r.DB.WithContext(ctx).Model(&models.Occupant{}).
		Distinct("seat_id").
		Where("employee_id = ? AND end_date IS NULL", employeeID).
		Order("seat_id").
		Pluck("seat_id", &seatIDs).Error; err != nil {
		return nil, err
	}
	return seatIDs, nil
}
