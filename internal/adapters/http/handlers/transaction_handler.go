package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"sncs-coopledger/internal/core/domain"
	"sncs-coopledger/internal/core/services"
	"sncs-coopledger/internal/pkg/response"
	"sncs-coopledger/internal/pkg/validation"
)

// TransactionHandler handles transaction ledger endpoints
type TransactionHandler struct {
	ledgerService *services.LedgerService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(ledgerService *services.LedgerService) *TransactionHandler {
	return &TransactionHandler{
		ledgerService: ledgerService,
	}
}

// AppendTransactionRequest represents append transaction request
type AppendTransactionRequest struct {
	Date        string          `json:"date,omitempty"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Direction   string          `json:"direction" validate:"required"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description,omitempty"`
	DueDate     string          `json:"due_date,omitempty"`
	Payment     PaymentRequest  `json:"payment"`
}

// Append appends a transaction to an account's ledger
// @Summary Append transaction
// @Description Append an immutable transaction and re-derive the account balance
// @Tags Transactions
// @Accept json
// @Produce json
// @Param id path int true "Account ID"
// @Param body body AppendTransactionRequest true "Transaction data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /accounts/{id}/transactions [post]
func (h *TransactionHandler) Append(c *fiber.Ctx) error {
	accountID, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid account ID")
	}

	var req AppendTransactionRequest
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

	input := &services.AppendTransactionInput{
		AccountID:   accountID,
		Date:        date,
		Amount:      req.Amount,
		Direction:   domain.Direction(req.Direction),
		Category:    req.Category,
		Description: req.Description,
		Payment:     req.Payment.toInput(),
	}
	if req.DueDate != "" {
		due, err := parseDate(req.DueDate)
		if err != nil {
			return response.BadRequest(c, "due_date must be YYYY-MM-DD")
		}
		input.DueDate = &due
	}

	txn, err := h.ledgerService.Append(c.Context(), input)
	if err != nil {
		return domainError(c, err)
	}

	return response.Created(c, "Transaction appended successfully", fiber.Map{
		"transaction": txn,
	})
}

// List lists an account's transactions
// @Summary List transactions
// @Description List all transactions of an account in stored order
// @Tags Transactions
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /accounts/{id}/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	accountID, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid account ID")
	}

	txns, err := h.ledgerService.Transactions(c.Context(), accountID)
	if err != nil {
		return domainError(c, err)
	}

	return response.Success(c, "Transactions retrieved successfully", fiber.Map{
		"transactions": txns,
	})
}
