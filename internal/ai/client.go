// ABOUTME: Client for the hosted LLM proxy used for food analysis.
// ABOUTME: Accepts a message list plus optional base64 image, OpenAI-style response.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/itstoasti/ketomate/internal/models"
)

// analyzeTimeout is the race-against-timeout budget for text analysis.
// On expiry a canned fallback food is substituted instead of an error.
const analyzeTimeout = 8 * time.Second

// Client calls the LLM proxy edge function.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type imageContent struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	ImageURL *struct {
		URL string `json:"url"`
	} `json:"image_url,omitempty"`
}

type chatRequest struct {
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// AnalyzeFoodText asks the LLM for nutrition data on a free-text food
// description. The call races an 8-second timeout; on expiry a canned
// fallback food named after the description is returned instead of an
// error. Remote failures other than timeout are returned to the caller.
func (c *Client) AnalyzeFoodText(ctx context.Context, description string) (*models.Food, error) {
	ctx, cancel := context.WithTimeout(ctx, analyzeTimeout)
	defer cancel()

	content, err := c.complete(ctx, []chatMessage{
		{Role: "system", Content: foodAnalysisSystemPrompt},
		{Role: "user", Content: foodTextPrompt(description)},
	})
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return FallbackFood(description), nil
		}
		return nil, fmt.Errorf("analyze food text: %w", err)
	}

	return ParseFood(content, description), nil
}

// AnalyzeLabelImage asks the LLM to read a nutrition label photo,
// passed as a base64 data payload.
func (c *Client) AnalyzeLabelImage(ctx context.Context, imageBase64 string) (*models.Food, error) {
	img := &struct {
		URL string `json:"url"`
	}{URL: "data:image/jpeg;base64," + imageBase64}

	content, err := c.complete(ctx, []chatMessage{
		{Role: "system", Content: foodAnalysisSystemPrompt},
		{Role: "user", Content: []imageContent{
			{Type: "text", Text: labelImagePrompt},
			{Type: "image_url", ImageURL: img},
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("analyze label image: %w", err)
	}

	food := ParseFood(content, "Nutrition Label")
	food.Source = models.SourceLabel
	return food, nil
}

// complete posts a chat completion request and returns the first
// choice's content.
func (c *Client) complete(ctx context.Context, messages []chatMessage) (string, error) {
	if c.BaseURL == "" {
		return "", fmt.Errorf("ai client not configured (set base URL)")
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	payload, err := json.Marshal(chatRequest{Messages: messages})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("llm proxy returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("llm proxy returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// FallbackFood is the canned record substituted when analysis times
// out. It carries zero macros so a timed-out lookup never inflates the
// day's totals; the name keeps the user's description for manual edit.
func FallbackFood(description string) *models.Food {
	f := models.NewFood(description, models.ZeroMacro(), models.SourceAI)
	f.ServingSize = "1 serving"
	return f
}
