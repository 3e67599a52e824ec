// ABOUTME: MCP resource implementations for the keto tracker.
// ABOUTME: Provides ketomate://today, ketomate://recent, and ketomate://progress resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/itstoasti/ketomate/internal/ledger"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// ketomate://today - Today's macro budget and meals
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "ketomate://today",
		Name:        "Today's Macro Budget",
		Description: "Consumed and remaining macros for today, with the day's meals",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	// ketomate://recent - Recent meals and weight entries
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "ketomate://recent",
		Name:        "Recent Entries",
		Description: "Last 10 meals and last 5 weight entries",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	// ketomate://progress - Streak, XP, level, badges, open tasks
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "ketomate://progress",
		Name:        "Progress Dashboard",
		Description: "Streak, freeze tokens, XP, level, badges, and open tasks",
		MIMEType:    "application/json",
	}, s.handleProgressResource)
}

// Resource handlers

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	today := time.Now()

	profile, err := s.repo.GetProfile()
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	meals, err := s.repo.ListMealsByDate(today)
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}

	summary := ledger.ComputeDaily(meals, today, profile.MacroLimit())

	result := map[string]interface{}{
		"date":        summary.Date,
		"total":       summary.Total,
		"limit":       summary.Limit,
		"remaining":   summary.Remaining,
		"over_budget": summary.OverBudget(),
		"meals":       summary.Meals,
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "ketomate://today",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	meals, err := s.repo.ListMeals(10)
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}

	weights, err := s.repo.ListWeightEntries(5)
	if err != nil {
		return nil, fmt.Errorf("failed to list weight entries: %w", err)
	}

	result := map[string]interface{}{
		"meals":   meals,
		"weights": weights,
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "ketomate://recent",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleProgressResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	stats, err := s.repo.GetStats()
	if err != nil {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}

	tasks, err := s.repo.ListTasks()
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	open := 0
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		} else {
			open++
		}
	}

	earned := make([]string, 0)
	for _, b := range stats.Badges {
		if b.Earned {
			earned = append(earned, b.ID)
		}
	}

	result := map[string]interface{}{
		"generated_at":  time.Now().Format(time.RFC3339),
		"streak":        stats.Streak,
		"freeze_tokens": stats.FreezeTokens,
		"xp":            stats.XP,
		"level":         stats.Level,
		"badges_earned": earned,
		"tasks": map[string]int{
			"open":      open,
			"completed": completed,
		},
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "ketomate://progress",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
