package seating

import (
	"context"
	"fmt"

	"hrcore-backend/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Orchestrator maps an approved HR transaction to a sequence of resolver and
// mutator calls. It holds no state of its own; the seat's VACANT/FILLED
// status before and after the call is the state machine.
type Orchestrator struct {
	Resolver *Resolver
	Mutator  *Mutator
}

func NewOrchestrator(db *gorm.DB) *Orchestrator {
	return &Orchestrator{
		Resolver: &Resolver{DB: db},
		Mutator:  NewMutator(db),
	}
}

// Execute runs one transaction. All failures come back as typed errors;
// nothing is thrown past this boundary. Composite flows (transfer,
// secondment) are not atomic across steps: a failure after the origin
// release is logged for manual reconciliation, not compensated.
func (o *Orchestrator) Execute(ctx context.Context, req TransactionRequest) (*Result, error) {
	switch req.Type {
	case models.TransactionHire, models.TransactionActing:
		return o.executeHire(ctx, req)
	case models.TransactionPromotion, models.TransactionTransfer:
		return o.executeTransfer(ctx, req)
	case models.TransactionSecondment:
		return o.executeSecondment(ctx, req)
	case models.TransactionTermination:
		return o.executeTermination(ctx, req)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedTransactionType, string(req.Type))
	}
}

func (o *Orchestrator) executeHire(ctx context.Context, req TransactionRequest) (*Result, error) {
	seat, err := o.resolveTarget(ctx, req)
	if err != nil {
		return nil, err
	}

	assignmentType := models.AssignmentPrimary
	if req.Type == models.TransactionActing {
		assignmentType = models.AssignmentActing
	}
	transactionID := req.TransactionID
	occupantID, err := o.Mutator.Assign(ctx, seat.SeatID, req.EmployeeID, AssignOptions{
		AssignmentType:      assignmentType,
		FtePercentage:       req.Options.FtePercentage,
		StartDate:           req.EffectiveDate,
		SourceTransactionID: &transactionID,
	})
	if err != nil {
		return nil, err
	}
	return &Result{OccupantID: &occupantID}, nil
}

func (o *Orchestrator) executeTransfer(ctx context.Context, req TransactionRequest) (*Result, error) {
	// Resolve the destination before touching the origin so a NoSeatAvailable
	// abort leaves the employee where they are.
	toSeat, err := o.resolveTarget(ctx, req)
	if err != nil {
		return nil, err
	}

	var released []uuid.UUID
	if req.Options.FromPositionID != nil {
		fromSeat, err := o.Resolver.FindEmployeeSeatForPosition(ctx, req.EmployeeID, *req.Options.FromPositionID)
		if err != nil {
			return nil, err
		}
		if fromSeat != nil {
			if err := o.Mutator.Release(ctx, fromSeat.SeatID, req.EmployeeID, req.EffectiveDate, "Transferred"); err != nil {
				return nil, err
			}
			released = append(released, fromSeat.SeatID)
		}
	}

	transactionID := req.TransactionID
	occupantID, err := o.Mutator.Assign(ctx, toSeat.SeatID, req.EmployeeID, AssignOptions{
		AssignmentType:      models.AssignmentPrimary,
		FtePercentage:       req.Options.FtePercentage,
		StartDate:           req.EffectiveDate,
		SourceTransactionID: &transactionID,
	})
	if err != nil {
		if len(released) > 0 {
			// Origin already vacated and there is no compensating rollback;
			// the employee is seatless until reconciled.
			log.Error().
				Str("transaction_id", req.TransactionID.String()).
				Str("employee_id", req.EmployeeID.String()).
				Str("to_seat_id", toSeat.SeatID.String()).
				Err(err).
				Msg("Assign failed after origin release; manual reconciliation required")
		}
		return nil, err
	}
	return &Result{OccupantID: &occupantID, ReleasedSeatIDs: released}, nil
}

func (o *Orchestrator) executeSecondment(ctx context.Context, req TransactionRequest) (*Result, error) {
	if req.Options.SecondmentReturnDate == nil {
		return nil, ErrReturnDateRequired
	}
	returnDate := *req.Options.SecondmentReturnDate

	destSeat, err := o.resolveTarget(ctx, req)
	if err != nil {
		return nil, err
	}

	holdOrigin := true
	if req.Options.HoldOriginSeat != nil {
		holdOrigin = *req.Options.HoldOriginSeat
	}

	var released []uuid.UUID
	if req.Options.FromPositionID != nil {
		originSeat, err := o.Resolver.FindEmployeeSeatForPosition(ctx, req.EmployeeID, *req.Options.FromPositionID)
		if err != nil {
			return nil, err
		}
		if originSeat != nil {
			if holdOrigin {
				if err := o.Mutator.HoldForSecondment(ctx, originSeat.SeatID, req.EmployeeID, returnDate); err != nil {
					return nil, err
				}
			} else {
				if err := o.Mutator.Release(ctx, originSeat.SeatID, req.EmployeeID, req.EffectiveDate, "Seconded"); err != nil {
					return nil, err
				}
				released = append(released, originSeat.SeatID)
			}
			if err := o.Mutator.LinkSecondmentDestination(ctx, destSeat.SeatID, originSeat.SeatID, returnDate); err != nil {
				return nil, err
			}
		}
	}

	transactionID := req.TransactionID
	endDate := returnDate
	occupantID, err := o.Mutator.Assign(ctx, destSeat.SeatID, req.EmployeeID, AssignOptions{
		AssignmentType:      models.AssignmentSecondment,
		FtePercentage:       req.Options.FtePercentage,
		StartDate:           req.EffectiveDate,
		EndDate:             &endDate,
		SourceTransactionID: &transactionID,
	})
	if err != nil {
		log.Error().
			Str("transaction_id", req.TransactionID.String()).
			Str("employee_id", req.EmployeeID.String()).
			Err(err).
			Msg("Secondment assign failed after origin was held; manual reconciliation required")
		return nil, err
	}
	return &Result{OccupantID: &occupantID, ReleasedSeatIDs: released}, nil
}

func (o *Orchestrator) executeTermination(ctx context.Context, req TransactionRequest) (*Result, error) {
	seatIDs, err := o.Resolver.FindEmployeeOpenSeats(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	released := make([]uuid.UUID, 0, len(seatIDs))
	for _, seatID := range seatIDs {
		if err := o.Mutator.Release(ctx, seatID, req.EmployeeID, req.EffectiveDate, "Terminated"); err != nil {
			return nil, err
		}
		released = append(released, seatID)
	}
	return &Result{ReleasedSeatIDs: released}, nil
}

// resolveTarget finds the seat to assign to under req.PositionID. A nil
// resolver result aborts the transaction with ErrNoSeatAvailable instead of
// creating an occupancy on a non-existent seat.
func (o *Orchestrator) resolveTarget(ctx context.Context, req TransactionRequest) (*models.Seat, error) {
	seat, err := o.Resolver.FindSeatForPosition(ctx, req.PositionID)
	if err != nil {
		return nil, err
	}
	if seat == nil {
		log.Warn().
			Str("transaction_id", req.TransactionID.String()).
			Str("position_id", req.PositionID.String()).
			Str("transaction_type", string(req.Type)).
			Msg("No seat available for position")
		return nil, ErrNoSeatAvailable
	}
	return seat, nil
}
