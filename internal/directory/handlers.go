package directory

import (
	"errors"

	"hrcore-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers bundles directory handlers.
type Handlers struct {
	Service *Service
}

// ViewPositionSeats GET /api/v1/directory/view-position-seats/:position_id
func (h *Handlers) ViewPositionSeats(c *fiber.Ctx) error {
	positionID, err := uuid.Parse(c.Params("position_id"))
	if err != nil {
		return response.Error(c, "Invalid position ID format (must be a valid UUID)", 400, nil)
	}

	data, err := h.Service.PositionSeats(c.Context(), positionID)
	if err != nil {
		if errors.Is(err, ErrPositionNotFound) {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Position seats fetched successfully", data, nil)
}

// ViewSeatOccupants GET /api/v1/directory/view-seat-occupants/:seat_id
func (h *Handlers) ViewSeatOccupants(c *fiber.Ctx) error {
	seatID, err := uuid.Parse(c.Params("seat_id"))
	if err != nil {
		return response.Error(c, "Invalid seat ID format (must be a valid UUID)", 400, nil)
	}

	data, err := h.Service.SeatOccupants(c.Context(), seatID)
	if err != nil {
		if errors.Is(err, ErrSeatNotFound) {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Seat occupants fetched successfully", data, nil)
}

// ViewEmployeeOccupancy GET /api/v1/directory/view-employee-occupancy/:employee_id
func (h *Handlers) ViewEmployeeOccupancy(c *fiber.Ctx) error {
	employeeID, err := uuid.Parse(c.Params("employee_id"))
	if err != nil {
		return response.Error(c, "Invalid employee ID format (must be a valid UUID)", 400, nil)
	}

	data, err := h.Service.EmployeeOccupancy(c.Context(), employeeID)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Employee occupancy fetched successfully", data, nil)
}
