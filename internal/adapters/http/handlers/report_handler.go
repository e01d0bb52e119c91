package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"sncs-coopledger/internal/core/services"
	"sncs-coopledger/internal/pkg/response"
)

// ReportHandler handles collection and passbook reporting endpoints
type ReportHandler struct {
	collectionService *services.CollectionService
}

// NewReportHandler creates a new report handler
func NewReportHandler(collectionService *services.CollectionService) *ReportHandler {
	return &ReportHandler{
		collectionService: collectionService,
	}
}

// Daywise returns the day-wise collection report
// @Summary Day-wise collection report
// @Description Aggregate all money collected on a day across account credits and society income
// @Tags Reports
// @Produce json
// @Param date query string false "Report date (YYYY-MM-DD, defaults to today)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /reports/collections/daywise [get]
func (h *ReportHandler) Daywise(c *fiber.Ctx) error {
	date := time.Now()
	if q := c.Query("date"); q != "" {
		parsed, err := parseDate(q)
		if err != nil {
			return response.BadRequest(c, "date must be YYYY-MM-DD")
		}
		date = parsed
	}

	report, err := h.collectionService.Daywise(c.Context(), date)
	if err != nil {
		return domainError(c, err)
	}

	return response.Success(c, "Collection report generated successfully", report)
}

// Passbook returns a member's flattened passbook
// @Summary Member passbook
// @Description All of a member's transactions across accounts in print order
// @Tags Reports
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id}/passbook [get]
func (h *ReportHandler) Passbook(c *fiber.Ctx) error {
	memberID, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	txns, err := h.collectionService.Passbook(c.Context(), memberID)
	if err != nil {
		return domainError(c, err)
	}

	return response.Success(c, "Passbook retrieved successfully", fiber.Map{
		"transactions": txns,
	})
}

// Backlog returns how many passbook lines are waiting to be printed
// @Summary Passbook backlog
// @Description Count of transactions after the member's last printed entry
// @Tags Reports
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id}/passbook/backlog [get]
func (h *ReportHandler) Backlog(c *fiber.Ctx) error {
	memberID, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	backlog, err := h.collectionService.PassbookBacklog(c.Context(), memberID)
	if err != nil {
		return domainError(c, err)
	}

	return response.Success(c, "Backlog retrieved successfully", fiber.Map{
		"member_id": memberID,
		"backlog":   backlog,
	})
}

// MarkPrinted advances the member's passbook print anchor
// @Summary Mark passbook printed
// @Description Move the print anchor to the member's latest transaction
// @Tags Reports
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id}/passbook/printed [post]
func (h *ReportHandler) MarkPrinted(c *fiber.Ctx) error {
	memberID, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	if err := h.collectionService.MarkPassbookPrinted(c.Context(), memberID); err != nil {
		return domainError(c, err)
	}

	return response.Success(c, "Passbook marked printed", nil)
}
