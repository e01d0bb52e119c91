package config

import (
	"log"

	"sncs-coopledger/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// SeedMasterData seeds the product rate catalog with the society's default
// interest rates. Existing codes are left untouched so administrator edits
// survive restarts.
func SeedMasterData(db *gorm.DB) error {
	rates := []models.ProductRate{
		{Code: "SHARE", Name: "Share Capital", RatePercent: 0, IsActive: true},
		{Code: "CD", Name: "Compulsory Deposit", RatePercent: 7.00, IsActive: true},
		{Code: "OD", Name: "Optional Deposit", RatePercent: 4.00, IsActive: true},
		{Code: "FD", Name: "Fixed Deposit", RatePercent: 6.50, IsActive: true},
		{Code: "RD", Name: "Recurring Deposit", RatePercent: 7.25, IsActive: true},
		{Code: "LOAN:PERSONAL", Name: "Personal Loan", RatePercent: 12.00, IsActive: true},
		{Code: "LOAN:HOME", Name: "Home Loan", RatePercent: 9.50, IsActive: true},
		{Code: "LOAN:GOLD", Name: "Gold Loan", RatePercent: 10.00, IsActive: true},
		{Code: "LOAN:VEHICLE", Name: "Vehicle Loan", RatePercent: 11.00, IsActive: true},
		{Code: "LOAN:AGRICULTURE", Name: "Agriculture Loan", RatePercent: 8.50, IsActive: true},
		{Code: "LOAN:EMERGENCY", Name: "Emergency Loan", RatePercent: 14.00, IsActive: true},
	}

	for _, rate := range rates {
		var count int64
		if err := db.Model(&models.ProductRate{}).Where("code = ?", rate.Code).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&rate).Error; err != nil {
			return err
		}
	}

	log.Println("✅ Master data seeded successfully")
	return nil
}
