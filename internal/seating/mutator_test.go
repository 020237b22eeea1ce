package seating

import (
	"context"
	"sync"
	"testing"
	"time"

	"hrcore-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func fetchSeat(t *testing.T, db *gorm.DB, seatID uuid.UUID) models.Seat {
	var seat models.Seat
	require.NoError(t, db.First(&seat, "seat_id = ?", seatID).Error)
	return seat
}

func openCount(t *testing.T, db *gorm.DB, seatID uuid.UUID) int64 {
	var n int64
	require.NoError(t, db.Model(&models.Occupant{}).
		Where("seat_id = ? AND end_date IS NULL", seatID).Count(&n).Error)
	return n
}

func TestAssign_PrimaryFillsSeat(t *testing.T) {
	db := setupSeatingTest(t)
	m := NewMutator(db)
	seat := createSeat(t, db, uuid.New(), models.SeatVacant, false, 1, time.Now().UTC())
	employeeID := uuid.New()

	occupantID, err := m.Assign(context.Background(), seat.SeatID, employeeID, AssignOptions{
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, occupantID)

	got := fetchSeat(t, db, seat.SeatID)
	assert.Equal(t, models.SeatFilled, got.Status)
	require.NotNil(t, got.CurrentEmployeeID)
	assert.Equal(t, employeeID, *got.CurrentEmployeeID)

	var occ models.Occupant
	require.NoError(t, db.First(&occ, "occupant_id = ?", occupantID).Error)
	assert.True(t, occ.IsPrimaryOccupant)
	assert.Equal(t, models.AssignmentPrimary, occ.AssignmentType)
	assert.Equal(t, 100.0, occ.FtePercentage)
	assert.Equal(t, 100.0, occ.BudgetPercentage)
	assert.Nil(t, occ.EndDate)
}

// Defaults: budget follows an explicit FTE, start date defaults to today.
func TestAssign_Defaults(t *testing.T) {
	db := setupSeatingTest(t)
	m := NewMutator(db)
	seat := createSeat(t, db, uuid.New(), models.SeatVacant, false, 1, time.Now().UTC())

	fte := 60.0
	occupantID, err := m.Assign(context.Background(), seat.SeatID, uuid.New(), AssignOptions{
		FtePercentage: &fte,
	})
	require.NoError(t, err)

	var occ models.Occupant
	require.NoError(t, db.First(&occ, "occupant_id = ?", occupantID).Error)
	assert.Equal(t, 60.0, occ.FtePercentage)
	assert.Equal(t, 60.0, occ.BudgetPercentage)
	assert.False(t, occ.StartDate.IsZero())
}

// A second primary request on a shared seat is granted non-primary and does
// not flip the existing primary or the seat cache.
func TestAssign_SecondPrimaryRequestNotGranted(t *testing.T) {
	db := setupSeatingTest(t)
	m := NewMutator(db)
	seat := createSeat(t, db, uuid.New(), models.SeatVacant, true, 2, time.Now().UTC())
	emp1 := uuid.New()
	emp2 := uuid.New()

	_, err := m.Assign(context.Background(), seat.SeatID, emp1, AssignOptions{AssignmentType: models.AssignmentPrimary})
	require.NoError(t, err)
	secondID, err := m.Assign(context.Background(), seat.SeatID, emp2, AssignOptions{AssignmentType: models.AssignmentPrimary})
	require.NoError(t, err)

	var second models.Occupant
	require.NoError(t, db.First(&second, "occupant_id = ?", secondID).Error)
	assert.False(t, second.IsPrimaryOccupant)

	got := fetchSeat(t, db, seat.SeatID)
	assert.Equal(t, models.SeatFilled, got.Status)
	require.NotNil(t, got.CurrentEmployeeID)
	assert.Equal(t, emp1, *got.CurrentEmployeeID)
}

// Non-shared seats accept at most one open occupant, ever.
func TestAssign_NonSharedCapacity(t *testing.T) {
	db := setupSeatingTest(t)
	m := NewMutator(db)
	seat := createSeat(t, db, uuid.New(), models.SeatVacant, false, 1, time.Now().UTC())

	_, err := m.Assign(context.Background(), seat.SeatID, uuid.New(), AssignOptions{})
	require.NoError(t, err)
	_, err = m.Assign(context.Background(), seat.SeatID, uuid.New(), AssignOptions{AssignmentType: models.AssignmentActing})
	assert.ErrorIs(t, err, ErrSeatAtCapacity)
	assert.Equal(t, int64(1), openCount(t, db, seat.SeatID))
}

func TestAssign_SharedCapacity(t *testing.T) {
	db := setupSeatingTest(t)
	m := NewMutator(db)
	seat := createSeat(t, db, uuid.New(), models.SeatVacant, true, 2, time.Now().UTC())

	_, err := m.Assign(context.Background(), seat.SeatID, uuid.New(), AssignOptions{})
	require.NoError(t, err)
	_, err = m.Assign(context.Background(), seat.SeatID, uuid.New(), AssignOptions{AssignmentType: models.AssignmentShared})
	require.NoError(t, err)
	_, err = m.Assign(context.Background(), seat.SeatID, uuid.New(), AssignOptions{AssignmentType: models.AssignmentShared})
	assert.ErrorIs(t, err, ErrSeatAtCapacity)
}

func TestAssign_SeatNotFound(t *testing.T) {
	db := setupSeatingTest(t)
	m := NewMutator(db)

	_, err := m.Assign(context.Background(), uuid.New(), uuid.New(), AssignOptions{})
	assert.ErrorIs(t, err, ErrSeatNotFound)
}

// Assign then release returns the seat to its pre-assign state; a second
// release is a no-op, not an error.
func TestRelease_RoundTripAndIdempotent(t *testing.T) {
	db := setupSeatingTest(t)
	m := NewMutator(db)
	seat := createSeat(t, db, uuid.New(), models.SeatVacant, false, 1, time.Now().UTC())
	employeeID := uuid.New()
	endDate := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	_, err := m.Assign(context.Background(), seat.SeatID, employeeID, AssignOptions{})
	require.NoError(t, err)
	require.NoError(t, m.Release(context.Background(), seat.SeatID, employeeID, endDate, "Transferred"))

	got := fetchSeat(t, db, seat.SeatID)
	assert.Equal(t, models.SeatVacant, got.Status)
	assert.Nil(t, got.CurrentEmployeeID)
	assert.Equal(t, int64(0), openCount(t, db, seat.SeatID))

	// Closed row is kept for the audit trail
	var total int64
	require.NoError(t, db.Model(&models.Occupant{}).Where("seat_id = ?", seat.SeatID).Count(&total).Error)
	assert.Equal(t, int64(1), total)

	require.NoError(t, m.Release(context.Background(), seat.SeatID, employeeID, endDate, "Transferred"))
	got = fetchSeat(t, db, seat.SeatID)
	assert.Equal(t, models.SeatVacant, got.Status)
}

// Releasing the primary on a shared seat with a non-primary remaining leaves
// no open primary, so the seat recomputes to VACANT with a cleared cache.
func TestRelease_PrimaryLeavesSharedSeat(t *testing.T) {
	db := setupSeatingTest(t)
	m := NewMutator(db)
	seat := createSeat(t, db, uuid.New(), models.SeatVacant, true, 2, time.Now().UTC())
	emp1 := uuid.New()
	emp2 := uuid.New()

	_, err := m.Assign(context.Background(), seat.SeatID, emp1, AssignOptions{AssignmentType: models.AssignmentPrimary})
	require.NoError(t, err)
	_, err = m.Assign(context.Background(), seat.SeatID, emp2, AssignOptions{AssignmentType: models.AssignmentShared})
	require.NoError(t, err)

	require.NoError(t, m.Release(context.Background(), seat.SeatID, emp1, time.Now().UTC(), "Transferred"))

	got := fetchSeat(t, db, seat.SeatID)
	assert.Equal(t, models.SeatVacant, got.Status)
	assert.Nil(t, got.CurrentEmployeeID)
	assert.Equal(t, int64(1), openCount(t, db, seat.SeatID))
}

func TestHoldForSecondment(t *testing.T) {
	db := setupSeatingTest(t)
	m := NewMutator(db)
	seat := createSeat(t, db, uuid.New(), models.SeatVacant, false, 1, time.Now().UTC())
	employeeID := uuid.New()

	occupantID, err := m.Assign(context.Background(), seat.SeatID, employeeID, AssignOptions{})
	require.NoError(t, err)

	returnDate := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, m.HoldForSecondment(context.Background(), seat.SeatID, employeeID, returnDate))

	var occ models.Occupant
	require.NoError(t, db.First(&occ, "occupant_id = ?", occupantID).Error)
	assert.Equal(t, 0.0, occ.FtePercentage)
	assert.Contains(t, occ.Notes, "2026-09-01")
	assert.Nil(t, occ.EndDate)

	// Seat state untouched: the original assignment survives
	got := fetchSeat(t, db, seat.SeatID)
	assert.Equal(t, models.SeatFilled, got.Status)
	require.NotNil(t, got.CurrentEmployeeID)
	assert.Equal(t, employeeID, *got.CurrentEmployeeID)
}

// Two concurrent primary assigns on one vacant non-shared seat: exactly one
// succeeds, and exactly one open primary exists afterwards.
func TestAssign_ConcurrentPrimaryRace(t *testing.T) {
	db := setupSeatingTest(t)
	m := NewMutator(db)
	seat := createSeat(t, db, uuid.New(), models.SeatVacant, false, 1, time.Now().UTC())

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = m.Assign(context.Background(), seat.SeatID, uuid.New(), AssignOptions{
				AssignmentType: models.AssignmentPrimary,
			})
		}(i)
	}
	wg.Wait()

	failures := 0
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, ErrSeatAtCapacity)
			failures++
		}
	}
	assert.Equal(t, 1, failures)

	var openPrimary int64
	require.NoError(t, db.Model(&models.Occupant{}).
		Where("seat_id = ? AND end_date IS NULL AND is_primary_occupant = ?", seat.SeatID, true).
		Count(&openPrimary).Error)
	assert.Equal(t, int64(1), openPrimary)
	assert.Equal(t, models.SeatFilled, fetchSeat(t, db, seat.SeatID).Status)
}
