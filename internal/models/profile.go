// ABOUTME: UserProfile model with display-unit preferences and macro budget.
// ABOUTME: One profile per user, created with defaults on first load.
package models

import "time"

// WeightUnit is the preferred display unit for body weight.
type WeightUnit string

// HeightUnit is the preferred display unit for height.
type HeightUnit string

const (
	WeightKg WeightUnit = "kg"
	WeightLb WeightUnit = "lb"

	HeightCm   HeightUnit = "cm"
	HeightFtIn HeightUnit = "ft"
)

// UserProfile holds the user's settings and daily macro budget.
// Weight is always stored in kilograms and height in centimeters;
// the unit fields only affect display and input parsing.
type UserProfile struct {
	Name            string     `json:"name"`
	WeightKg        float64    `json:"weight_kg"`
	HeightCm        float64    `json:"height_cm"`
	WeightUnit      WeightUnit `json:"weight_unit"`
	HeightUnit      HeightUnit `json:"height_unit"`
	Goal            string     `json:"goal,omitempty"`
	ActivityLevel   string     `json:"activity_level,omitempty"`
	DailyMacroLimit Macro      `json:"daily_macro_limit"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// DefaultProfile returns the profile created on first load.
func DefaultProfile() *UserProfile {
	return &UserProfile{
		WeightUnit:      WeightKg,
		HeightUnit:      HeightCm,
		DailyMacroLimit: DefaultMacroLimit,
		UpdatedAt:       time.Now(),
	}
}

// MacroLimit returns the configured daily budget, falling back to the
// default limit when the profile has none set.
func (p *UserProfile) MacroLimit() Macro {
	if p == nil || p.DailyMacroLimit.IsZero() {
		return DefaultMacroLimit
	}
	return p.DailyMacroLimit
}
