package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"sncs-coopledger/internal/core/domain"
	"sncs-coopledger/internal/pkg/response"
)

// domainError maps core sentinels onto HTTP responses so every handler
// reports the same status for the same failure
func domainError(c *fiber.Ctx, err error) error {
	var mismatch *domain.SplitMismatchError
	switch {
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrMemberNotFound):
		return response.NotFound(c, err.Error())
	case errors.As(err, &mismatch),
		errors.Is(err, domain.ErrMissingUTR),
		errors.Is(err, domain.ErrGuarantorRequired),
		errors.Is(err, domain.ErrTermRequired),
		errors.Is(err, domain.ErrRateRequired):
		return response.UnprocessableEntity(c, err.Error())
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidDirection),
		errors.Is(err, domain.ErrInvalidProduct),
		errors.Is(err, domain.ErrInvalidLoanSubtype),
		errors.Is(err, domain.ErrInvalidTerm),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidPaymentMode),
		errors.Is(err, domain.ErrInvalidEntryDirection),
		errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, err.Error())
	}
	return response.InternalServerError(c, "Internal server error")
}

// idParam parses a numeric path parameter
func idParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// parseDate parses an optional YYYY-MM-DD value; empty means zero time
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", value)
}
