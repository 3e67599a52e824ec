// ABOUTME: Pure unit conversion helpers for weight and height display.
// ABOUTME: NaN or negative inputs return zeroed output rather than erroring.
package units

import "math"

// LbPerKg is the pounds-per-kilogram conversion factor.
const LbPerKg = 2.20462

// CmPerIn is the centimeters-per-inch conversion factor.
const CmPerIn = 2.54

// KgToLb converts kilograms to pounds.
func KgToLb(kg float64) float64 {
	if math.IsNaN(kg) || kg < 0 {
		return 0
	}
	return kg * LbPerKg
}

// LbToKg converts pounds to kilograms.
func LbToKg(lb float64) float64 {
	if math.IsNaN(lb) || lb < 0 {
		return 0
	}
	return lb / LbPerKg
}

// CmToFtIn decomposes centimeters into whole feet and rounded inches.
// Rounding that lands on 12 inches carries into the next foot.
func CmToFtIn(cm float64) (feet, inches int) {
	if math.IsNaN(cm) || cm < 0 {
		return 0, 0
	}
	totalInches := cm / CmPerIn
	feet = int(totalInches / 12)
	inches = int(math.Round(totalInches - float64(feet)*12))
	if inches == 12 {
		feet++
		inches = 0
	}
	return feet, inches
}

// FtInToCm converts feet plus inches to rounded centimeters.
func FtInToCm(feet, inches int) float64 {
	if feet < 0 || inches < 0 {
		return 0
	}
	return math.Round(float64(feet*12+inches) * CmPerIn)
}
