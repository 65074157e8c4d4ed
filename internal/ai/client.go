// Package ai is the natural-language capture collaborator: it turns free text
// like "remind me to stretch every weekday at 9" into a structured intent
// with absolute datetimes resolved against the current clock. The planning
// core never depends on this package.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
)

type Client struct {
	client *openai.Client
	model  string
}

func New(apiKey, baseURL, model string) *Client {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL

	return &Client{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

type Intent struct {
	Action      string            `json:"action"`
	Parameters  map[string]string `json:"parameters"`
	Confidence  float64           `json:"confidence"`
	Reply       string            `json:"reply"`
	RawResponse string            `json:"-"`
}

const systemPromptTemplate = `You are the assistant of a personal planner bot. Parse the user's message into a structured intent.

Current time: %s

Available actions:
- create_task, list_task, complete_task, delete_task
- create_event, list_event, delete_event
- create_goal, list_goal, update_goal
- create_reminder, list_reminder, delete_reminder
- create_block
- show_agenda
- unknown: anything else (put a short friendly answer in "reply")

Parameters by action:
- id: numeric id for complete/delete/update actions
- title: title text (task, event, goal, block)
- message: reminder text
- due_date, start_time, end_time, target_date, remind_at: absolute datetimes, format "2006-01-02 15:04"
- estimated_minutes, priority, progress: integers
- recurrence_kind: none|daily|weekly|monthly|yearly
- recurrence_interval: integer, every N units
- days_of_week: comma-separated 0-6, 0 = Sunday (weekly only)
- day_of_month: 1-31 (monthly/yearly)
- month_of_year: 1-12 (yearly)
- project: project name
- day: "today", "week", or a date for show_agenda

Resolve every relative time phrase ("tomorrow", "next Monday", "in two hours")
against the current time and output absolute values.`

func systemPrompt() string {
	now := time.Now()
	return fmt.Sprintf(systemPromptTemplate, now.Format("2006-01-02 15:04 (Monday)"))
}

var intentSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"action": {
			"type": "string",
			"enum": ["create_task", "list_task", "complete_task", "delete_task", "create_event", "list_event", "delete_event", "create_goal", "list_goal", "update_goal", "create_reminder", "list_reminder", "delete_reminder", "create_block", "show_agenda", "unknown"],
			"description": "The action to perform"
		},
		"parameters": {
			"type": "object",
			"additionalProperties": {
				"type": "string"
			},
			"description": "Parameters for the action"
		},
		"confidence": {
			"type": "number",
			"minimum": 0,
			"maximum": 1,
			"description": "Confidence score between 0 and 1"
		},
		"reply": {
			"type": "string",
			"description": "Friendly reply text for the user"
		}
	},
	"required": ["action", "confidence"],
	"additionalProperties": false
}`)

func (c *Client) ParseIntent(ctx context.Context, userMessage string) (*Intent, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt(),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userMessage,
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "intent",
				Schema: intentSchema,
				Strict: true,
			},
		},
		Temperature: 0.1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call AI API: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from AI")
	}

	content := resp.Choices[0].Message.Content
	intent := &Intent{RawResponse: content}

	if err := json.Unmarshal([]byte(content), intent); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}

	return intent, nil
}
