package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success   bool           `json:"success"`
	Message   string         `json:"message"`
	ErrorCode string         `json:"error_code"`
	Details   map[string]any `json:"details"`
}

func respondWith(t *testing.T, err error) (int, envelope) {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return Respond(c, err) })

	resp, e := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, e)
	defer resp.Body.Close()

	raw, e := io.ReadAll(resp.Body)
	require.NoError(t, e)
	var body envelope
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestRespond_AllocationExceeded(t *testing.T) {
	status, body := respondWith(t, AllocationExceeded(40))

	assert.Equal(t, fiber.StatusConflict, status)
	assert.False(t, body.Success)
	assert.Equal(t, "ALLOCATION_EXCEEDED", body.ErrorCode)
	assert.EqualValues(t, 40, body.Details["remaining"])
}

func TestRespond_DetailsNotMutated(t *testing.T) {
	err := AllocationExceeded(5).WithDetail("job_role_id", "x")
	_, body := respondWith(t, err)

	assert.Equal(t, "x", body.Details["job_role_id"])
	assert.EqualValues(t, 5, body.Details["remaining"])
	assert.NotContains(t, err.Details, "remaining")
}

func TestRespond_WrappedDomainError(t *testing.T) {
	err := fmt.Errorf("provision: %w", New(KindDuplicateSDCName, "SDC_PUNE already exists"))
	status, body := respondWith(t, err)

	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "DUPLICATE_SDC_NAME", body.ErrorCode)
	assert.Equal(t, "SDC_PUNE already exists", body.Message)
}

func TestRespond_InvariantViolationIsHidden(t *testing.T) {
	status, body := respondWith(t, InvariantViolation("allocated 120 exceeds target 100"))

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_ERROR", body.ErrorCode)
	assert.NotContains(t, body.Message, "120")
}

func TestRespond_FiberErrorPassthrough(t *testing.T) {
	status, body := respondWith(t, fiber.NewError(fiber.StatusBadRequest, "invalid id"))

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "BAD_REQUEST", body.ErrorCode)
	assert.Equal(t, "invalid id", body.Message)
}

func TestRespond_UnknownError(t *testing.T) {
	status, body := respondWith(t, errors.New("connection reset"))

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "internal server error", body.Message)
}

func TestStatusOf(t *testing.T) {
	cases := map[Kind]int{
		KindNotFound:             fiber.StatusNotFound,
		KindValidation:           fiber.StatusUnprocessableEntity,
		KindTargetMismatch:       fiber.StatusUnprocessableEntity,
		KindInvalidDistrict:      fiber.StatusUnprocessableEntity,
		KindWorkOrderClosed:      fiber.StatusConflict,
		KindDistrictQuotaReached: fiber.StatusConflict,
		KindInvalidTransition:    fiber.StatusConflict,
		KindInvariantViolation:   fiber.StatusInternalServerError,
		Kind("SOMETHING_ELSE"):   fiber.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, StatusOf(kind), kind)
	}
}

func TestErrorsIs_MatchesOnKind(t *testing.T) {
	err := fmt.Errorf("wrap: %w", NotFound("sdc %d", 1))

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrConflict)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
}
