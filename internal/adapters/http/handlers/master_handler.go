package handlers

import (
	"github.com/gofiber/fiber/v2"

	"sncs-coopledger/internal/adapters/persistence/repositories"
	"sncs-coopledger/internal/pkg/response"
)

// MasterHandler handles master data endpoints
type MasterHandler struct {
	rateRepo repositories.ProductRateRepository
}

// NewMasterHandler creates a new master handler
func NewMasterHandler(rateRepo repositories.ProductRateRepository) *MasterHandler {
	return &MasterHandler{
		rateRepo: rateRepo,
	}
}

// ListProductRates lists the product rate catalog
// @Summary List product rates
// @Description Get all active product rates
// @Tags Master
// @Produce json
// @Success 200 {object} response.Response
// @Router /master/product-rates [get]
func (h *MasterHandler) ListProductRates(c *fiber.Ctx) error {
	rates, err := h.rateRepo.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list product rates")
	}

	return response.Success(c, "Product rates retrieved successfully", fiber.Map{
		"product_rates": rates,
	})
}
