package apperr

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	helper "sdc_backend/internals/helpers"
)

// StatusOf maps a domain error kind to an HTTP status.
func StatusOf(kind Kind) int {
	switch kind {
	case KindNotFound:
		return fiber.StatusNotFound
	case KindValidation, KindTargetMismatch, KindInvalidJobRole, KindInvalidDistrict:
		return fiber.StatusUnprocessableEntity
	case KindConflict,
		KindWorkOrderClosed,
		KindAllocationExceeded,
		KindResourceUnavailable,
		KindDuplicateSDCName,
		KindAlreadyCompleted,
		KindAlreadyAssigned,
		KindNotAssigned,
		KindDistrictQuotaReached,
		KindInvalidTransition:
		return fiber.StatusConflict
	case KindInvariantViolation:
		return fiber.StatusInternalServerError
	}
	return fiber.StatusInternalServerError
}

// Respond writes err using the standard error envelope.
// InvariantViolation and unknown errors are logged and hidden behind a generic 500.
func Respond(c *fiber.Ctx, err error) error {
	var e *Error
	if !errors.As(err, &e) {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		log.Printf("[ERROR] %s %s: %v", c.Method(), c.OriginalURL(), err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "internal server error")
	}

	if e.Kind == KindInvariantViolation {
		log.Printf("[ALERT] invariant violation on %s %s: %s", c.Method(), c.OriginalURL(), e.Message)
		return helper.JsonErrorWithCode(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", nil)
	}

	details := e.Details
	if e.Remaining != nil {
		details = make(map[string]any, len(e.Details)+1)
		for k, v := range e.Details {
			details[k] = v
		}
		details["remaining"] = *e.Remaining
	}
	return helper.JsonErrorWithCode(c, StatusOf(e.Kind), string(e.Kind), e.Message, details)
}
