package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"sncs-coopledger/internal/core/domain"
	"sncs-coopledger/internal/core/services"
	"sncs-coopledger/internal/pkg/pagination"
	"sncs-coopledger/internal/pkg/response"
	"sncs-coopledger/internal/pkg/validation"
)

// SocietyHandler handles society ledger endpoints
type SocietyHandler struct {
	societyService *services.SocietyService
}

// NewSocietyHandler creates a new society handler
func NewSocietyHandler(societyService *services.SocietyService) *SocietyHandler {
	return &SocietyHandler{
		societyService: societyService,
	}
}

// AppendEntryRequest represents append society entry request
type AppendEntryRequest struct {
	MemberID    *uint           `json:"member_id,omitempty"`
	Date        string          `json:"date,omitempty"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Direction   string          `json:"direction" validate:"required"`
	Payment     PaymentRequest  `json:"payment"`
}

// Append appends a society ledger entry
// @Summary Append society entry
// @Description Append an income or expense entry to the society ledger
// @Tags Society
// @Accept json
// @Produce json
// @Param body body AppendEntryRequest true "Entry data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /society/entries [post]
func (h *SocietyHandler) Append(c *fiber.Ctx) error {
	var req AppendEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return response.BadRequest(c, "date must be YYYY-MM-DD")
	}

	entry, err := h.societyService.Append(c.Context(), &services.AppendLedgerEntryInput{
		MemberID:    req.MemberID,
		Date:        date,
		Description: req.Description,
		Category:    req.Category,
		Amount:      req.Amount,
		Direction:   domain.EntryDirection(req.Direction),
		Payment:     req.Payment.toInput(),
	})
	if err != nil {
		return domainError(c, err)
	}

	return response.Created(c, "Entry appended successfully", fiber.Map{
		"entry": entry,
	})
}

// List lists society ledger entries
// @Summary List society entries
// @Description List society ledger entries with pagination
// @Tags Society
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /society/entries [get]
func (h *SocietyHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	entries, total, err := h.societyService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list entries")
	}

	return response.Success(c, "Entries retrieved successfully",
		pagination.NewResponse(entries, params, total))
}
