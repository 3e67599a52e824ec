// ABOUTME: Macro value object and keto rating derivation.
// ABOUTME: All four macro fields are populated at construction time.
package models

import "math"

// Macro holds a full set of macronutrient values.
// Carbs, protein and fat are grams; calories are kcal.
// A Macro is always fully populated; there are no optional fields.
type Macro struct {
	Carbs    float64 `json:"carbs" yaml:"carbs"`
	Protein  float64 `json:"protein" yaml:"protein"`
	Fat      float64 `json:"fat" yaml:"fat"`
	Calories float64 `json:"calories" yaml:"calories"`
}

// ZeroMacro returns the zero macro vector.
func ZeroMacro() Macro {
	return Macro{}
}

// Add returns the elementwise sum of two macros.
func (m Macro) Add(o Macro) Macro {
	return Macro{
		Carbs:    m.Carbs + o.Carbs,
		Protein:  m.Protein + o.Protein,
		Fat:      m.Fat + o.Fat,
		Calories: m.Calories + o.Calories,
	}
}

// Scale returns the macro multiplied by a serving factor.
func (m Macro) Scale(factor float64) Macro {
	return Macro{
		Carbs:    m.Carbs * factor,
		Protein:  m.Protein * factor,
		Fat:      m.Fat * factor,
		Calories: m.Calories * factor,
	}
}

// Remaining returns max(0, m-consumed) per field.
// Remaining never goes negative; over-budget is visible only by
// comparing the consumed total against the limit directly.
func (m Macro) Remaining(consumed Macro) Macro {
	return Macro{
		Carbs:    math.Max(0, m.Carbs-consumed.Carbs),
		Protein:  math.Max(0, m.Protein-consumed.Protein),
		Fat:      math.Max(0, m.Fat-consumed.Fat),
		Calories: math.Max(0, m.Calories-consumed.Calories),
	}
}

// IsZero reports whether all fields are zero.
func (m Macro) IsZero() bool {
	return m == Macro{}
}

// DefaultMacroLimit is the daily budget applied when a profile has
// no configured limit.
var DefaultMacroLimit = Macro{Carbs: 20, Protein: 120, Fat: 150, Calories: 1800}

// KetoRating is an ordinal keto-suitability tier derived from net carbs.
type KetoRating string

const (
	RatingKetoFriendly  KetoRating = "Keto-Friendly"
	RatingLimit         KetoRating = "Limit"
	RatingStrictlyLimit KetoRating = "Strictly Limit"
	RatingAvoid         KetoRating = "Avoid"
)

// NetCarbs computes net carbohydrate grams: total carbs minus fiber
// minus sugar alcohols.
func NetCarbs(carbs, fiber, sugarAlcohol float64) float64 {
	return carbs - fiber - sugarAlcohol
}

// RatingFromNetCarbs maps net carb grams to a keto rating.
// Boundaries are at 6, 10 and 20 grams. Negative or NaN input defaults
// conservatively to Limit (bad data should not look Keto-Friendly).
func RatingFromNetCarbs(netCarbs float64) KetoRating {
	switch {
	case math.IsNaN(netCarbs) || netCarbs < 0:
		return RatingLimit
	case netCarbs <= 6:
		return RatingKetoFriendly
	case netCarbs <= 10:
		return RatingLimit
	case netCarbs <= 20:
		return RatingStrictlyLimit
	default:
		return RatingAvoid
	}
}
