package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/flowdeck/flowdeck-server/internal/models"
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

// EventDetails is a concrete calendar slot the assistant proposes when the
// user asks to book something specific.
type EventDetails struct {
	Title    string `json:"title"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Location string `json:"location,omitempty"`
	Category string `json:"category,omitempty"`
	Color    string `json:"color,omitempty"`
}

// ChatReply is the assistant's structured answer: always a user-facing
// response text, optionally a generated routine, a booking link, or event
// details, depending on what was asked.
type ChatReply struct {
	Response     string          `json:"response"`
	Routine      *models.Routine `json:"routine,omitempty"`
	BookingURL   string          `json:"bookingUrl,omitempty"`
	EventDetails *EventDetails   `json:"eventDetails,omitempty"`
}

const routineSystemPrompt = `Tu es un expert en productivité et routines personnalisées. Ta mission est de créer des routines optimales basées sur les mots-clés fournis.

Date du jour : %s

Règles importantes :
1. Adapte la routine aux thèmes demandés
2. Crée des enchaînements logiques et équilibrés
3. Respecte les contraintes de temps et d'énergie
4. Propose des durées réalistes
5. Les jours de récurrence sont des noms français en minuscules ("lundi" à "dimanche")

Format de réponse JSON attendu :
{
  "response": "Message explicatif pour l'utilisateur",
  "routine": {
    "title": "Nom de la routine",
    "activities": [
      {"label": "Nom de l'activité", "start": "HH:mm", "duration": 30}
    ],
    "recurrence": ["lundi", "mercredi", "vendredi"]
  }
}`

var chatReplySchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"response": {
			"type": "string",
			"description": "User-facing explanation of the answer"
		},
		"routine": {
			"type": "object",
			"properties": {
				"title": {"type": "string"},
				"activities": {
					"type": "array",
					"items": {
						"type": "object",
						"properties": {
							"label": {"type": "string"},
							"start": {"type": "string", "description": "HH:mm start time"},
							"duration": {"type": "integer", "description": "Duration in minutes"}
						},
						"required": ["label", "start", "duration"],
						"additionalProperties": false
					}
				},
				"recurrence": {
					"type": "array",
					"items": {"type": "string"},
					"description": "French lowercase weekday names"
				}
			},
			"required": ["title", "activities", "recurrence"],
			"additionalProperties": false
		}
	},
	"required": ["response"],
	"additionalProperties": false
}`)

// GenerateRoutine asks the assistant to build a routine from a free-text
// message. A reply without a routine is valid (the assistant may just
// answer); a reply with a malformed routine is rejected wholesale.
func (c *Client) GenerateRoutine(ctx context.Context, message string, extra map[string]any) (*ChatReply, error) {
	userContent := message
	if len(extra) > 0 {
		ctxJSON, err := json.Marshal(extra)
		if err == nil {
			userContent = fmt.Sprintf("%s\n\nContexte : %s", message, ctxJSON)
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf(routineSystemPrompt, time.Now().Format("2006-01-02 (Monday)")),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userContent,
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "chat_reply",
				Schema: chatReplySchema,
				Strict: true,
			},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call AI API: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from AI")
	}

	reply := &ChatReply{}
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), reply); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}

	if reply.Routine != nil {
		if err := checkRoutine(reply.Routine); err != nil {
			return nil, fmt.Errorf("AI returned a malformed routine: %w", err)
		}
	}

	return reply, nil
}

func checkRoutine(routine *models.Routine) error {
	if routine.Title == "" {
		return fmt.Errorf("missing title")
	}
	if len(routine.Activities) == 0 {
		return fmt.Errorf("no activities")
	}
	if len(routine.Recurrence) == 0 {
		return fmt.Errorf("no recurrence days")
	}
	for _, activity := range routine.Activities {
		if activity.Label == "" || activity.Start == "" || activity.DurationMinutes <= 0 {
			return fmt.Errorf("invalid activity %q", activity.Label)
		}
	}
	return nil
}

// ExtractedTask mirrors the extraction contract's French field names.
type ExtractedTask struct {
	Titre       string   `json:"titre"`
	MicroTaches []string `json:"micro_taches"`
	Priorite    string   `json:"priorite"`
	Duree       int      `json:"duree"`
	Delegable   bool     `json:"delegable"`
}

const extractTasksPrompt = `L'utilisateur t'écrit librement, tu extrais les tâches avec :
- titre
- micro-tâches
- priorité (haute | moyenne | basse)
- durée estimée (en minutes)
- déléguable (true/false)

Retourne un JSON avec ce format :
{"tasks": [{"titre": "...", "micro_taches": ["..."], "priorite": "moyenne", "duree": 30, "delegable": false}]}`

var tasksSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"tasks": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"titre": {"type": "string"},
					"micro_taches": {"type": "array", "items": {"type": "string"}},
					"priorite": {"type": "string", "enum": ["haute", "moyenne", "basse"]},
					"duree": {"type": "integer"},
					"delegable": {"type": "boolean"}
				},
				"required": ["titre", "micro_taches", "priorite", "duree", "delegable"],
				"additionalProperties": false
			}
		}
	},
	"required": ["tasks"],
	"additionalProperties": false
}`)

// ExtractTasks turns free text into structured actionable tasks.
func (c *Client) ExtractTasks(ctx context.Context, input string) ([]ExtractedTask, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: extractTasksPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: input,
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "tasks",
				Schema: tasksSchema,
				Strict: true,
			},
		},
		Temperature: 0.6,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call AI API: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from AI")
	}

	var parsed struct {
		Tasks []ExtractedTask `json:"tasks"`
	}
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}
	return parsed.Tasks, nil
}

// Reply returns a free-text completion for conversational assistance.
func (c *Client) Reply(ctx context.Context, systemMsg, userMsg string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemMsg,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userMsg,
			},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from AI")
	}

	return resp.Choices[0].Message.Content, nil
}
