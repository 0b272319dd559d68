package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputePrice(t *testing.T) {
	pricing := ComputePrice(1000, day(0), day(3), 2)

	assert.Equal(t, 1000, pricing.NightlyRate)
	assert.Equal(t, 3, pricing.Nights)
	assert.Equal(t, float64(6000), pricing.BasePrice)
	assert.Equal(t, float64(1080), pricing.TaxAmount)
	assert.Equal(t, float64(7080), pricing.TotalPrice)
}

func TestComputePrice_SingleNight(t *testing.T) {
	pricing := ComputePrice(750, day(0), day(1), 1)

	assert.Equal(t, 1, pricing.Nights)
	assert.Equal(t, float64(750), pricing.BasePrice)
	// 135.0 thuế, không cần làm tròn
	assert.Equal(t, float64(135), pricing.TaxAmount)
	assert.Equal(t, float64(885), pricing.TotalPrice)
}

func TestComputePrice_TaxRoundsHalfUp(t *testing.T) {
	// 125 * 0.18 = 22.5, làm tròn half-up thành 23
	pricing := ComputePrice(125, day(0), day(1), 1)

	assert.Equal(t, float64(23), pricing.TaxAmount)
	assert.Equal(t, float64(148), pricing.TotalPrice)
}

func TestComputePrice_IgnoresTimeOfDay(t *testing.T) {
	morning := ComputePrice(1000, day(0).Add(6*time.Hour), day(2).Add(23*time.Hour), 1)

	assert.Equal(t, 2, morning.Nights)
	assert.Equal(t, float64(2000), morning.BasePrice)
}
