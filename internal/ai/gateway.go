// Package ai bridges the storefront to a generative-AI provider that can
// identify produce from a photo and hold a short nutrition conversation.
package ai

import (
	"context"
	"errors"

	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/models"
)

var (
	ErrUnavailable   = errors.New("ai gateway is not configured")
	ErrEmptyResponse = errors.New("ai gateway returned an empty response")
	ErrStaleResponse = errors.New("response superseded by a newer request")
)

// Gateway is the external AI provider
type Gateway interface {
	// Identify returns a best-effort description of the produce in image
	Identify(ctx context.Context, image []byte, mimeType string) (*models.ProductDraft, error)
	// Converse returns the assistant's reply to message given prior turns
	Converse(ctx context.Context, history []models.ChatMessage, message string) (string, error)
}

// Disabled is used when no API credential is configured
type Disabled struct{}

func (Disabled) Identify(context.Context, []byte, string) (*models.ProductDraft, error) {
	return nil, ErrUnavailable
}

func (Disabled) Converse(context.Context, []models.ChatMessage, string) (string, error) {
	return "", ErrUnavailable
}
