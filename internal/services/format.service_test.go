package services

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netbar/internal/models"
)

func bytesAuto() models.FormattingConfig {
	return models.FormattingConfig{UnitType: models.UnitBytes, FixedUnit: models.FixedAuto}
}

func TestFormatRate_Bytes(t *testing.T) {
	text, unit := FormatRate(500, bytesAuto())
	assert.Equal(t, "500.00", text)
	assert.Equal(t, " B/s", unit)

	text, unit = FormatRate(2048, bytesAuto())
	assert.Equal(t, "  2.00", text)
	assert.Equal(t, "2.00", strings.TrimSpace(text))
	assert.Equal(t, "KB/s", unit)
}

func TestFormatRate_Bits(t *testing.T) {
	cfg := models.FormattingConfig{UnitType: models.UnitBits, FixedUnit: models.FixedAuto}

	text, unit := FormatRate(1_500_000, cfg)
	assert.Equal(t, "11.44", strings.TrimSpace(text))
	assert.Equal(t, "Mbps", unit)

	text, unit = FormatRate(10, cfg)
	assert.Equal(t, " 80.00", text)
	assert.Equal(t, " bps", unit)
}

func TestFormatRate_FieldWidth(t *testing.T) {
	for _, v := range []float64{0, 1, 99.5, 999.99, 2047} {
		text, _ := FormatRate(v, bytesAuto())
		assert.Len(t, text, 6, "value %v", v)
	}
}

func TestScaleRate_StrictBoundary(t *testing.T) {
	scaled, index := ScaleRate(1024, bytesAuto())
	assert.Equal(t, 0, index)
	assert.Equal(t, 1024.0, scaled)

	scaled, index = ScaleRate(1024*1024, bytesAuto())
	assert.Equal(t, 1, index)
	assert.Equal(t, 1024.0, scaled)

	_, index = ScaleRate(1024.01, bytesAuto())
	assert.Equal(t, 1, index)
}

func TestScaleRate_AutoRange(t *testing.T) {
	for _, v := range []float64{1, 512, 1025, 5e6, 3e9, 7.5e11} {
		scaled, index := ScaleRate(v, bytesAuto())
		require.Less(t, index, len(byteUnits))
		assert.Greater(t, scaled, 0.0)
		assert.LessOrEqual(t, scaled, 1024.0, "value %v", v)
	}
}

func TestScaleRate_TopUnitExhaustion(t *testing.T) {
	huge := math.Pow(1024, 6)
	scaled, index := ScaleRate(huge, bytesAuto())
	assert.Equal(t, len(byteUnits)-1, index)
	assert.Equal(t, 1024.0*1024.0, scaled)

	_, unit := FormatRate(huge, bytesAuto())
	assert.Equal(t, "TB/s", unit)
}

func TestScaleRate_FixedKB(t *testing.T) {
	for _, unitType := range []models.UnitType{models.UnitBytes, models.UnitBits} {
		cfg := models.FormattingConfig{UnitType: unitType, FixedUnit: models.FixedKB}
		for _, v := range []float64{0, 3, 1024, 1e9} {
			_, index := ScaleRate(v, cfg)
			assert.Equal(t, 1, index)
		}
	}

	cfg := models.FormattingConfig{UnitType: models.UnitBytes, FixedUnit: models.FixedKB}
	text, unit := FormatRate(1e9, cfg)
	assert.Equal(t, "976562.50", text)
	assert.Equal(t, "KB/s", unit)

	text, unit = FormatRate(3, cfg)
	assert.Equal(t, "  0.00", text)
	assert.Equal(t, "KB/s", unit)

	cfg.UnitType = models.UnitBits
	_, unit = FormatRate(3, cfg)
	assert.Equal(t, "Kbps", unit)
}

func TestScaleRate_FixedMB(t *testing.T) {
	cfg := models.FormattingConfig{UnitType: models.UnitBytes, FixedUnit: models.FixedMB}
	scaled, index := ScaleRate(5*1024*1024, cfg)
	assert.Equal(t, 2, index)
	assert.Equal(t, 5.0, scaled)

	_, unit := FormatRate(1, cfg)
	assert.Equal(t, "MB/s", unit)
}

func TestFormatTotal(t *testing.T) {
	text, unit := FormatTotal(0)
	assert.Equal(t, "0.00", text)
	assert.Equal(t, " B", unit)

	text, unit = FormatTotal(1536)
	assert.Equal(t, "1.50", text)
	assert.Equal(t, "KB", unit)

	text, unit = FormatTotal(3 * 1024 * 1024 * 1024)
	assert.Equal(t, "3.00", text)
	assert.Equal(t, "GB", unit)
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatUptime(0))
	assert.Equal(t, "00:01:05", FormatUptime(65*time.Second))
	assert.Equal(t, "26:03:07", FormatUptime(26*time.Hour+3*time.Minute+7*time.Second+400*time.Millisecond))
	assert.Equal(t, "00:00:00", FormatUptime(-time.Second))
}
