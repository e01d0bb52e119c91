package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sncs-coopledger/internal/adapters/persistence/models"
	"sncs-coopledger/internal/adapters/persistence/repositories"
	"sncs-coopledger/internal/pkg/response"
	"sncs-coopledger/internal/pkg/validation"
)

// MemberHandler handles member reference endpoints. Full member
// administration lives in the back-office tool; the ledger only needs
// enough to register and look members up.
type MemberHandler struct {
	memberRepo repositories.MemberRepository
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberRepo repositories.MemberRepository) *MemberHandler {
	return &MemberHandler{
		memberRepo: memberRepo,
	}
}

// CreateMemberRequest represents create member request
type CreateMemberRequest struct {
	MemberNo string `json:"member_no" validate:"required"`
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone,omitempty"`
}

// Create registers a member
// @Summary Create member
// @Description Register a member reference record
// @Tags Members
// @Accept json
// @Produce json
// @Param body body CreateMemberRequest true "Member data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /members [post]
func (h *MemberHandler) Create(c *fiber.Ctx) error {
	var req CreateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	if _, err := h.memberRepo.GetByMemberNo(c.Context(), req.MemberNo); err == nil {
		return response.Conflict(c, "Member number already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return response.InternalServerError(c, "Failed to create member")
	}

	member := &models.Member{
		MemberNo: req.MemberNo,
		FullName: req.FullName,
		Phone:    req.Phone,
	}
	if err := h.memberRepo.Create(c.Context(), member); err != nil {
		return response.InternalServerError(c, "Failed to create member")
	}

	return response.Created(c, "Member created successfully", fiber.Map{
		"member": member,
	})
}

// Get gets a member
// @Summary Get member
// @Description Get a member by ID
// @Tags Members
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id} [get]
func (h *MemberHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	member, err := h.memberRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to get member")
	}

	return response.Success(c, "Member retrieved successfully", fiber.Map{
		"member": member,
	})
}
