package services

import (
	"math"
	"time"

	"roomstay/constants"
)

// Pricing kết quả tính giá cho một reservation
type Pricing struct {
	NightlyRate int     `json:"nightlyRate"`
	Nights      int     `json:"nights"`
	BasePrice   float64 `json:"basePrice"`
	TaxAmount   float64 `json:"taxAmount"`
	TotalPrice  float64 `json:"totalPrice"`
}

// ComputePrice tính giá cho một kỳ nghỉ. Hàm thuần, không I/O.
// Thuế làm tròn half-up về đơn vị tiền nguyên.
func ComputePrice(nightlyRate int, checkIn, checkOut time.Time, numberOfUnits int) Pricing {
	nights := int(math.Ceil(NormalizeDay(checkOut).Sub(NormalizeDay(checkIn)).Hours() / 24))

	basePrice := float64(nightlyRate * nights * numberOfUnits)
	taxAmount := math.Floor(basePrice*constants.TaxRate + 0.5)

	return Pricing{
		NightlyRate: nightlyRate,
		Nights:      nights,
		BasePrice:   basePrice,
		TaxAmount:   taxAmount,
		TotalPrice:  basePrice + taxAmount,
	}
}
