// ABOUTME: Prompt text for food analysis requests.
// ABOUTME: Instructs the model to answer in a fixed key-value format.
package ai

import "fmt"

const foodAnalysisSystemPrompt = `You are a nutrition analysis assistant. Given a food description or a photo of a nutrition label, estimate its nutrition facts for one serving. Respond with ONLY these lines, no other text:
Name: <short food name>
ServingSize: <serving description>
Calories: <number>
Carbs: <grams>
Fiber: <grams>
SugarAlcohol: <grams>
Protein: <grams>
Fat: <grams>`

const labelImagePrompt = "Read the attached nutrition label photo and report its nutrition facts per serving."

func foodTextPrompt(description string) string {
	return fmt.Sprintf("Estimate the nutrition facts for: %s", description)
}
