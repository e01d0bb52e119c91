package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"sncs-coopledger/internal/core/domain"
	"sncs-coopledger/internal/core/services"
	"sncs-coopledger/internal/pkg/response"
	"sncs-coopledger/internal/pkg/validation"
)

// SimulationHandler handles what-if calculator endpoints
type SimulationHandler struct {
	simulationService *services.SimulationService
}

// NewSimulationHandler creates a new simulation handler
func NewSimulationHandler(simulationService *services.SimulationService) *SimulationHandler {
	return &SimulationHandler{
		simulationService: simulationService,
	}
}

// SimulateRequest represents simulate request
type SimulateRequest struct {
	Product      string          `json:"product" validate:"required"`
	LoanSubtype  string          `json:"loan_subtype,omitempty"`
	Principal    decimal.Decimal `json:"principal" validate:"required"`
	InterestRate decimal.Decimal `json:"interest_rate,omitempty"`
	TermMonths   int             `json:"term_months,omitempty"`
	TermDays     int             `json:"term_days,omitempty"`
	Frequency    string          `json:"frequency,omitempty"`
	OpeningDate  string          `json:"opening_date,omitempty"`
}

// Simulate runs a product calculator without touching any account
// @Summary Simulate product
// @Description Project maturity value or repayment schedule for the given product terms
// @Tags Simulations
// @Accept json
// @Produce json
// @Param body body SimulateRequest true "Simulation input"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /simulations [post]
func (h *SimulationHandler) Simulate(c *fiber.Ctx) error {
	var req SimulateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	opening, err := parseDate(req.OpeningDate)
	if err != nil {
		return response.BadRequest(c, "opening_date must be YYYY-MM-DD")
	}

	result, err := h.simulationService.Simulate(c.Context(), &services.SimulateInput{
		Product:      domain.ProductType(req.Product),
		LoanSubtype:  domain.LoanSubtype(req.LoanSubtype),
		Principal:    req.Principal,
		InterestRate: req.InterestRate,
		TermMonths:   req.TermMonths,
		TermDays:     req.TermDays,
		Frequency:    domain.InstallmentFrequency(req.Frequency),
		OpeningDate:  opening,
	})
	if err != nil {
		return domainError(c, err)
	}

	return response.Success(c, "Simulation completed successfully", result)
}
