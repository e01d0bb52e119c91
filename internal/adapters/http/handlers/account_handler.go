package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"sncs-coopledger/internal/core/domain"
	"sncs-coopledger/internal/core/services"
	"sncs-coopledger/internal/pkg/response"
	"sncs-coopledger/internal/pkg/validation"
)

// AccountHandler handles account endpoints
type AccountHandler struct {
	accountService *services.AccountService
	ledgerService  *services.LedgerService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService *services.AccountService, ledgerService *services.LedgerService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		ledgerService:  ledgerService,
	}
}

// PaymentRequest represents the payment settlement part of a request
type PaymentRequest struct {
	Mode         string          `json:"payment_mode"`
	CashAmount   decimal.Decimal `json:"cash_amount"`
	OnlineAmount decimal.Decimal `json:"online_amount"`
	UTRReference string          `json:"utr_reference"`
}

func (p PaymentRequest) toInput() services.PaymentInput {
	return services.PaymentInput{
		Mode:         domain.PaymentMode(p.Mode),
		CashAmount:   p.CashAmount,
		OnlineAmount: p.OnlineAmount,
		UTRReference: p.UTRReference,
	}
}

// OpenAccountRequest represents open account request
type OpenAccountRequest struct {
	MemberID        uint               `json:"member_id" validate:"required"`
	Product         string             `json:"product" validate:"required"`
	LoanSubtype     string             `json:"loan_subtype,omitempty"`
	Principal       decimal.Decimal    `json:"principal" validate:"required"`
	InterestRate    decimal.Decimal    `json:"interest_rate,omitempty"`
	TermMonths      int                `json:"term_months,omitempty"`
	TermDays        int                `json:"term_days,omitempty"`
	Frequency       string             `json:"frequency,omitempty"`
	OpeningDate     string             `json:"opening_date,omitempty"`
	Guarantors      []domain.Guarantor `json:"guarantors,omitempty"`
	LowBalanceAlert *decimal.Decimal   `json:"low_balance_alert,omitempty"`
	Payment         PaymentRequest     `json:"payment"`
}

// Open opens a new account
// @Summary Open account
// @Description Open a member account and seed its opening transaction
// @Tags Accounts
// @Accept json
// @Produce json
// @Param body body OpenAccountRequest true "Account data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /accounts [post]
func (h *AccountHandler) Open(c *fiber.Ctx) error {
	var req OpenAccountRequest
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

	input := &services.OpenAccountInput{
		MemberID:        req.MemberID,
		Product:         domain.ProductType(req.Product),
		LoanSubtype:     domain.LoanSubtype(req.LoanSubtype),
		Principal:       req.Principal,
		InterestRate:    req.InterestRate,
		TermMonths:      req.TermMonths,
		TermDays:        req.TermDays,
		Frequency:       domain.InstallmentFrequency(req.Frequency),
		OpeningDate:     opening,
		Guarantors:      req.Guarantors,
		LowBalanceAlert: req.LowBalanceAlert,
		Payment:         req.Payment.toInput(),
	}

	account, err := h.accountService.Open(c.Context(), input)
	if err != nil {
		return domainError(c, err)
	}

	return response.Created(c, "Account opened successfully", fiber.Map{
		"account": account,
	})
}

// Get gets an account
// @Summary Get account
// @Description Get an account with member and guarantors
// @Tags Accounts
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /accounts/{id} [get]
func (h *AccountHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid account ID")
	}

	account, err := h.accountService.GetByID(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}

	return response.Success(c, "Account retrieved successfully", fiber.Map{
		"account": account,
	})
}

// GetByNumber gets an account by the number printed on its passbook
// @Summary Get account by number
// @Description Look an account up by its human-readable number, e.g. M0042-FD-01
// @Tags Accounts
// @Produce json
// @Param number path string true "Account number"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /accounts/by-number/{number} [get]
func (h *AccountHandler) GetByNumber(c *fiber.Ctx) error {
	account, err := h.accountService.GetByNumber(c.Context(), c.Params("number"))
	if err != nil {
		return domainError(c, err)
	}

	return response.Success(c, "Account retrieved successfully", fiber.Map{
		"account": account,
	})
}

// Balance returns the replayed, authoritative balance
// @Summary Account balance
// @Description Replay the transaction log and return the authoritative balance
// @Tags Accounts
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /accounts/{id}/balance [get]
func (h *AccountHandler) Balance(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid account ID")
	}

	balance, err := h.ledgerService.Balance(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}

	return response.Success(c, "Balance retrieved successfully", fiber.Map{
		"account_id": id,
		"balance":    balance,
	})
}

// MinimumBalance returns the lowest balance held during a calendar year
// @Summary Minimum yearly balance
// @Description Lowest balance the account held during the given year (defaults to the current year)
// @Tags Accounts
// @Produce json
// @Param id path int true "Account ID"
// @Param year query int false "Calendar year"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /accounts/{id}/minimum-balance [get]
func (h *AccountHandler) MinimumBalance(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid account ID")
	}

	year := time.Now().Year()
	if q := c.Query("year"); q != "" {
		year, err = strconv.Atoi(q)
		if err != nil {
			return response.BadRequest(c, "Invalid year")
		}
	}

	minimum, err := h.ledgerService.MinimumBalanceInYear(c.Context(), id, year)
	if err != nil {
		return domainError(c, err)
	}

	return response.Success(c, "Minimum balance retrieved successfully", fiber.Map{
		"account_id":      id,
		"year":            year,
		"minimum_balance": minimum,
	})
}

// UpdateStatusRequest represents update status request
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus updates the account lifecycle status
// @Summary Update account status
// @Description Explicit administrator edit of the account status
// @Tags Accounts
// @Accept json
// @Produce json
// @Param id path int true "Account ID"
// @Param body body UpdateStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /accounts/{id}/status [patch]
func (h *AccountHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid account ID")
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	account, err := h.accountService.UpdateStatus(c.Context(), id, domain.AccountStatus(req.Status))
	if err != nil {
		return domainError(c, err)
	}

	return response.Success(c, "Account status updated successfully", fiber.Map{
		"account": account,
	})
}

// UpdateRateRequest represents update interest rate request
type UpdateRateRequest struct {
	InterestRate decimal.Decimal `json:"interest_rate" validate:"required"`
}

// UpdateRate updates the account interest rate
// @Summary Update interest rate
// @Description Explicit administrator edit of the interest rate; loan EMI is recomputed
// @Tags Accounts
// @Accept json
// @Produce json
// @Param id path int true "Account ID"
// @Param body body UpdateRateRequest true "New rate"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /accounts/{id}/rate [patch]
func (h *AccountHandler) UpdateRate(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid account ID")
	}

	var req UpdateRateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	account, err := h.accountService.UpdateInterestRate(c.Context(), id, req.InterestRate)
	if err != nil {
		return domainError(c, err)
	}

	return response.Success(c, "Interest rate updated successfully", fiber.Map{
		"account": account,
	})
}

// ListByMember lists a member's accounts
// @Summary List member accounts
// @Description List all accounts a member holds
// @Tags Accounts
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id}/accounts [get]
func (h *AccountHandler) ListByMember(c *fiber.Ctx) error {
	memberID, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	accounts, err := h.accountService.ListByMember(c.Context(), memberID)
	if err != nil {
		return domainError(c, err)
	}

	return response.Success(c, "Accounts retrieved successfully", fiber.Map{
		"accounts": accounts,
	})
}
