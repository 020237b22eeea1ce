package seating

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"hrcore-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupHandlersTest(t *testing.T) (*fiber.App, *gorm.DB) {
	db := setupSeatingTest(t)
	h := &Handlers{Orchestrator: NewOrchestrator(db)}
	app := fiber.New()
	app.Post("/api/v1/seating/execute-transaction", h.ExecuteTransaction)
	return app, db
}

func TestExecuteTransaction_Hire(t *testing.T) {
	app, db := setupHandlersTest(t)
	positionID := uuid.New()
	seat := createSeat(t, db, positionID, models.SeatVacant, false, 1, time.Now().UTC())

	body, _ := json.Marshal(map[string]interface{}{
		"transaction_type": "HIRE",
		"transaction_id":   uuid.New().String(),
		"employee_id":      uuid.New().String(),
		"position_id":      positionID.String(),
		"effective_date":   "2026-04-01",
	})
	req := httptest.NewRequest("POST", "/api/v1/seating/execute-transaction", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		Status string `json:"status"`
		Data   struct {
			OccupantID string `json:"occupant_id"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "success", out.Status)
	assert.NotEmpty(t, out.Data.OccupantID)

	got := fetchSeat(t, db, seat.SeatID)
	assert.Equal(t, models.SeatFilled, got.Status)
}

func TestExecuteTransaction_UnsupportedType(t *testing.T) {
	app, _ := setupHandlersTest(t)

	body, _ := json.Marshal(map[string]interface{}{
		"transaction_type": "DEMOTION",
		"transaction_id":   uuid.New().String(),
		"employee_id":      uuid.New().String(),
		"position_id":      uuid.New().String(),
		"effective_date":   "2026-04-01",
	})
	req := httptest.NewRequest("POST", "/api/v1/seating/execute-transaction", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestExecuteTransaction_NoSeatAvailable(t *testing.T) {
	app, _ := setupHandlersTest(t)

	body, _ := json.Marshal(map[string]interface{}{
		"transaction_type": "HIRE",
		"transaction_id":   uuid.New().String(),
		"employee_id":      uuid.New().String(),
		"position_id":      uuid.New().String(),
		"effective_date":   "2026-04-01",
	})
	req := httptest.NewRequest("POST", "/api/v1/seating/execute-transaction", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestExecuteTransaction_InvalidEmployeeID(t *testing.T) {
	app, _ := setupHandlersTest(t)

	body, _ := json.Marshal(map[string]interface{}{
		"transaction_type": "HIRE",
		"transaction_id":   uuid.New().String(),
		"employee_id":      "not-a-uuid",
		"position_id":      uuid.New().String(),
		"effective_date":   "2026-04-01",
	})
	req := httptest.NewRequest("POST", "/api/v1/seating/execute-transaction", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

// Termination accepts an empty position id.
func TestExecuteTransaction_TerminationWithoutPosition(t *testing.T) {
	app, _ := setupHandlersTest(t)

	body, _ := json.Marshal(map[string]interface{}{
		"transaction_type": "TERMINATION",
		"transaction_id":   uuid.New().String(),
		"employee_id":      uuid.New().String(),
		"effective_date":   "2026-04-01",
	})
	req := httptest.NewRequest("POST", "/api/v1/seating/execute-transaction", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
