package service

import (
	"context"
	"strings"

	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/models"
)

// ChatHistory returns the conversation so far
func (s *Storefront) ChatHistory() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ChatMessage, len(s.chat))
	copy(out, s.chat)
	return out
}

// Chat records the user's message and asks the assistant for a reply. The
// reply is recorded only on success; failures are logged and ok is false.
func (s *Storefront) Chat(ctx context.Context, message string) (reply string, ok bool, err error) {
	if strings.TrimSpace(message) == "" {
		return "", false, ErrEmptyMessage
	}

	s.mu.Lock()
	history := make([]models.ChatMessage, len(s.chat))
	copy(history, s.chat)
	s.chat = append(s.chat, models.ChatMessage{Role: models.RoleUser, Content: message})
	s.mu.Unlock()

	// the state lock is not held while waiting on the gateway
	reply, err = s.gateway.Converse(ctx, history, message)
	if err != nil {
		s.logger.Error("assistant reply failed", "error", err)
		return "", false, nil
	}

	s.mu.Lock()
	s.chat = append(s.chat, models.ChatMessage{Role: models.RoleModel, Content: reply})
	s.mu.Unlock()
	return reply, true, nil
}
