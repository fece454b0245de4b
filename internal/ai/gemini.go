package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/models"
)

const (
	DefaultModel   = "gemini-3-flash-preview"
	DefaultTimeout = 30 * time.Second

	identifyPrompt = "Identify this fruit. Return the details in JSON format including name, scientificName, " +
		"description, origin, season, benefits (array), and nutrients (calories, sugar, fiber, vitaminC, " +
		"potassium, protein, carbs per 100g)."
	assistantInstruction = "You are an expert nutritionist and fruit specialist. Help the user with recipes, " +
		"nutritional facts, and fruit selection tips. Be concise and friendly."
)

// Gemini implements Gateway with Google's GenAI SDK
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGemini creates a Gemini gateway
func NewGemini(ctx context.Context, apiKey, model string, timeout time.Duration) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Gemini{
		client:  client,
		model:   model,
		timeout: timeout,
	}, nil
}

// Identify sends the image with a fixed instruction and a JSON response schema
func (g *Gemini) Identify(ctx context.Context, image []byte, mimeType string) (*models.ProductDraft, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(image, mimeType),
			genai.NewPartFromText(identifyPrompt),
		}, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   draftSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("GenAI identify failed: %w", err)
	}

	return ParseDraft(resp.Text())
}

// Converse replays history and sends message under the assistant instruction
func (g *Gemini) Converse(ctx context.Context, history []models.ChatMessage, message string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	contents := make([]*genai.Content, 0, len(history)+1)
	for _, m := range history {
		contents = append(contents, genai.NewContentFromText(m.Content, genai.Role(m.Role)))
	}
	contents = append(contents, genai.NewContentFromText(message, genai.RoleUser))

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(assistantInstruction, genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("GenAI converse failed: %w", err)
	}

	reply := strings.TrimSpace(resp.Text())
	if reply == "" {
		return "", ErrEmptyResponse
	}
	return reply, nil
}

// ParseDraft decodes the JSON body of an identify response
func ParseDraft(text string) (*models.ProductDraft, error) {
	text = strings.TrimSpace(text)
	// some responses wrap the JSON in a markdown fence
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyResponse
	}

	var draft models.ProductDraft
	if err := json.Unmarshal([]byte(text), &draft); err != nil {
		return nil, fmt.Errorf("decode identify response: %w", err)
	}
	return &draft, nil
}

func draftSchema() *genai.Schema {
	number := &genai.Schema{Type: genai.TypeNumber}
	text := &genai.Schema{Type: genai.TypeString}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":           text,
			"scientificName": text,
			"description":    text,
			"origin":         text,
			"season":         text,
			"benefits":       {Type: genai.TypeArray, Items: text},
			"nutrients": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"calories":  number,
					"sugar":     number,
					"fiber":     number,
					"vitaminC":  number,
					"potassium": number,
					"protein":   number,
					"carbs":     number,
				},
			},
		},
		Required: []string{"name", "description", "nutrients"},
	}
}
