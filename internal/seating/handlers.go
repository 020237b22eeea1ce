package seating

import (
	"errors"
	"time"

	"hrcore-backend/internal/models"
	"hrcore-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// Handlers bundles the seating HTTP handlers.
type Handlers struct {
	Orchestrator *Orchestrator
}

type executeTransactionRequest struct {
	TransactionType string                    `json:"transaction_type"`
	TransactionID   string                    `json:"transaction_id"`
	EmployeeID      string                    `json:"employee_id"`
	PositionID      string                    `json:"position_id"`
	EffectiveDate   string                    `json:"effective_date"`
	Options         executeTransactionOptions `json:"options"`
}

type executeTransactionOptions struct {
	FromPositionID       *string  `json:"from_position_id"`
	FtePercentage        *float64 `json:"fte_percentage"`
	SecondmentReturnDate *string  `json:"secondment_return_date"`
	HoldOriginSeat       *bool    `json:"hold_origin_seat"`
}

// ExecuteTransaction POST /api/v1/seating/execute-transaction
func (h *Handlers) ExecuteTransaction(c *fiber.Ctx) error {
	var req executeTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}

	transactionType := models.TransactionType(req.TransactionType)
	if !transactionType.Valid() {
		return response.Error(c, ErrUnsupportedTransactionType.Error(), 400, map[string]interface{}{
			"transaction_type": req.TransactionType,
		})
	}

	transactionID, err := uuid.Parse(req.TransactionID)
	if err != nil {
		return response.Error(c, "Invalid transaction ID format (must be a valid UUID)", 400, nil)
	}
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return response.Error(c, "Invalid employee ID format (must be a valid UUID)", 400, nil)
	}

	var positionID uuid.UUID
	if transactionType != models.TransactionTermination {
		positionID, err = uuid.Parse(req.PositionID)
		if err != nil {
			return response.Error(c, "Invalid position ID format (must be a valid UUID)", 400, nil)
		}
	}

	effectiveDate, err := time.Parse(dateLayout, req.EffectiveDate)
	if err != nil {
		return response.Error(c, "Invalid effective date (must be YYYY-MM-DD)", 400, nil)
	}

	opts := TransactionOptions{
		FtePercentage:  req.Options.FtePercentage,
		HoldOriginSeat: req.Options.HoldOriginSeat,
	}
	if req.Options.FromPositionID != nil {
		fromPositionID, err := uuid.Parse(*req.Options.FromPositionID)
		if err != nil {
			return response.Error(c, "Invalid from-position ID format (must be a valid UUID)", 400, nil)
		}
		opts.FromPositionID = &fromPositionID
	}
	if req.Options.SecondmentReturnDate != nil {
		returnDate, err := time.Parse(dateLayout, *req.Options.SecondmentReturnDate)
		if err != nil {
			return response.Error(c, "Invalid secondment return date (must be YYYY-MM-DD)", 400, nil)
		}
		opts.SecondmentReturnDate = &returnDate
	}

	result, err := h.Orchestrator.Execute(c.Context(), TransactionRequest{
		Type:          transactionType,
		TransactionID: transactionID,
		EmployeeID:    employeeID,
		PositionID:    positionID,
		EffectiveDate: effectiveDate,
		Options:       opts,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNoSeatAvailable):
			return response.Error(c, err.Error(), 404, nil)
		case errors.Is(err, ErrSeatAtCapacity):
			return response.Error(c, err.Error(), 409, nil)
		case errors.Is(err, ErrUnsupportedTransactionType), errors.Is(err, ErrReturnDateRequired):
			return response.Error(c, err.Error(), 400, nil)
		case errors.Is(err, ErrSeatNotFound):
			return response.Error(c, err.Error(), 404, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}

	return response.Success(c, "Transaction executed successfully", result, nil)
}
