// ABOUTME: Parses model responses into Food records.
// ABOUTME: Accepts key-value lines or a JSON object; degrades to a placeholder.
package ai

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/itstoasti/ketomate/internal/models"
)

// ParsingFailedName is the placeholder name used when a model response
// cannot be understood. The record carries zero macros so the user can
// fill it in by hand.
const ParsingFailedName = "Parsing Failed"

type foodFields struct {
	Name         string  `json:"name"`
	ServingSize  string  `json:"servingSize"`
	Calories     float64 `json:"calories"`
	Carbs        float64 `json:"carbs"`
	Fiber        float64 `json:"fiber"`
	SugarAlcohol float64 `json:"sugarAlcohol"`
	Protein      float64 `json:"protein"`
	Fat          float64 `json:"fat"`
}

// ParseFood turns a model response into a Food. It tries the key-value
// line format first, then a bare JSON object. A response with no usable
// nutrition data yields the "Parsing Failed" placeholder; fallbackName
// names the food when the response omits one.
func ParseFood(content, fallbackName string) *models.Food {
	fields, ok := parseKeyValue(content)
	if !ok {
		fields, ok = parseJSON(content)
	}
	if !ok {
		return placeholderFood()
	}

	name := strings.TrimSpace(fields.Name)
	if name == "" {
		name = fallbackName
	}
	if name == "" {
		name = ParsingFailedName
	}

	food := models.NewFood(name, models.Macro{
		Carbs:    fields.Carbs,
		Protein:  fields.Protein,
		Fat:      fields.Fat,
		Calories: fields.Calories,
	}, models.SourceAI)
	food.ServingSize = strings.TrimSpace(fields.ServingSize)
	if food.ServingSize == "" {
		food.ServingSize = "1 serving"
	}
	food.Fiber = fields.Fiber
	food.SugarAlcohol = fields.SugarAlcohol
	return food
}

func placeholderFood() *models.Food {
	f := models.NewFood(ParsingFailedName, models.ZeroMacro(), models.SourceAI)
	f.ServingSize = "1 serving"
	return f
}

// parseKeyValue reads "Key: value" lines. At least one numeric
// nutrition field must parse for the response to count.
func parseKeyValue(content string) (foodFields, bool) {
	var fields foodFields
	sawNumber := false

	for _, line := range strings.Split(content, "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "name":
			fields.Name = value
		case "servingsize", "serving size", "serving":
			fields.ServingSize = value
		case "calories":
			fields.Calories, sawNumber = parseGrams(value, sawNumber)
		case "carbs", "carbohydrates", "net carbs":
			fields.Carbs, sawNumber = parseGrams(value, sawNumber)
		case "fiber":
			fields.Fiber, sawNumber = parseGrams(value, sawNumber)
		case "sugaralcohol", "sugar alcohol", "sugar alcohols":
			fields.SugarAlcohol, sawNumber = parseGrams(value, sawNumber)
		case "protein":
			fields.Protein, sawNumber = parseGrams(value, sawNumber)
		case "fat":
			fields.Fat, sawNumber = parseGrams(value, sawNumber)
		}
	}

	return fields, sawNumber
}

// parseGrams strips a trailing unit ("12g", "90 kcal") and parses the
// number. Unparseable values read as zero and do not count as seen.
func parseGrams(value string, seen bool) (float64, bool) {
	value = strings.TrimSpace(value)
	end := len(value)
	for i, r := range value {
		if (r < '0' || r > '9') && r != '.' && r != '-' {
			end = i
			break
		}
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(value[:end]), 64)
	if err != nil {
		return 0, seen
	}
	return n, true
}

// parseJSON accepts a bare JSON object, tolerating markdown code
// fences around it.
func parseJSON(content string) (foodFields, bool) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return foodFields{}, false
	}

	var fields foodFields
	if err := json.Unmarshal([]byte(content[start:end+1]), &fields); err != nil {
		return foodFields{}, false
	}
	hasData := fields.Calories != 0 || fields.Carbs != 0 || fields.Protein != 0 || fields.Fat != 0 || fields.Name != ""
	return fields, hasData
}
