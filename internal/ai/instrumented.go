package ai

import (
	"context"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/metrics"
	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/models"
)

// Instrumented records call counts and latency for another Gateway
type Instrumented struct {
	next Gateway
}

// WithMetrics wraps gw with Prometheus instrumentation
func WithMetrics(gw Gateway) *Instrumented {
	return &Instrumented{next: gw}
}

func (i *Instrumented) Identify(ctx context.Context, image []byte, mimeType string) (*models.ProductDraft, error) {
	start := time.Now()
	draft, err := i.next.Identify(ctx, image, mimeType)
	metrics.RecordAICall("identify", time.Since(start), err)
	return draft, err
}

func (i *Instrumented) Converse(ctx context.Context, history []models.ChatMessage, message string) (string, error) {
	start := time.Now()
	reply, err := i.next.Converse(ctx, history, message)
	metrics.RecordAICall("converse", time.Since(start), err)
	return reply, err
}
