package directory

import (
	"context"
	"errors"

	"hrcore-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPositionNotFound = errors.New("Position not found")
	ErrSeatNotFound     = errors.New("Seat not found")
)

// Service answers read-only queries over the seat directory and occupancy
// ledger. It never writes; all mutation goes through the seating package.
type Service struct {
	DB *gorm.DB
}

// PositionSeats is the directory view of one position and its seats.
type PositionSeats struct {
	Position models.Position `json:"position"`
	Seats    []models.Seat   `json:"seats"`
}

// SeatOccupancy is one seat plus its currently-open occupant rows.
type SeatOccupancy struct {
	Seat      models.Seat       `json:"seat"`
	Occupants []models.Occupant `json:"occupants"`
}

func (s *Service) PositionSeats(ctx context.Context, positionID uuid.UUID) (*PositionSeats, error) {
	var position models.Position
	if err := s.DB.WithContext(ctx).Where("position_id = ?", positionID).First(&position).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPositionNotFound
		}
		return nil, err
	}

	var seats []models.Seat
	if err := s.DB.WithContext(ctx).
		Where("position_id = ?", positionID).
		Order("created_at, seat_id").
		Find(&seats).Error; err != nil {
		return nil, err
	}

	return &PositionSeats{Position: position, Seats: seats}, nil
}

func (s *Service) SeatOccupants(ctx context.Context, seatID uuid.UUID) (*SeatOccupancy, error) {
	var seat models.Seat
	if err := s.DB.WithContext(ctx).Where("seat_id = ?", seatID).First(&seat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}

	var occupants []models.Occupant
	if err := s.DB.WithContext(ctx).
		Where("seat_id = ? AND end_date IS NULL", seatID).
		Order("start_date, occupant_id").
		Find(&occupants).Error; err != nil {
		return nil, err
	}

	return &SeatOccupancy{Seat: seat, Occupants: occupants}, nil
}

// EmployeeOccupancy returns the employee's full occupancy history, open rows
// first, newest first within each group.
func (s *Service) EmployeeOccupancy(ctx context.Context, employeeID uuid.UUID) ([]models.Occupant, error) {
	var occupants []models.Occupant
	if err := s.DB.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("end_date IS NULL DESC, start_date DESC").
		Find(&occupants).Error; err != nil {
		return nil, err
	}
	return occupants, nil
}
