// Package openai rephrases the deterministic search answer through an
// OpenAI-compatible chat completion API. Strictly optional: the engine's
// template sentence is always there to fall back on.
package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/gridwerk/flowsearch/internal/domain"
	"github.com/gridwerk/flowsearch/internal/metrics"
)

const systemPrompt = "Du bist der Assistent eines Datenfluss-Dashboards. " +
	"Formuliere die folgende Antwort auf eine Suchanfrage natürlicher und freundlicher um. " +
	"Erfinde keine Datenflüsse, Systeme oder Formate; antworte in einem Satz auf Deutsch."

// Responder is a response-phrasing provider using the OpenAI-compatible
// chat API.
type Responder struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// Config holds the response-phrasing provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewResponder creates an OpenAI-compatible response phraser.
func NewResponder(cfg *Config) *Responder {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Responder{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  logger,
	}
}

// Rephrase implements query.Responder. The deterministic sentence plus a
// compact result summary go in; one rewritten sentence comes out.
func (r *Responder) Rephrase(ctx context.Context, query string, result domain.SearchResult) (string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(query, result)},
		},
	})
	if err != nil {
		metrics.ResponderRequestsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("%w: %v", domain.ErrResponderError, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		metrics.ResponderRequestsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("%w: empty completion", domain.ErrResponderError)
	}

	metrics.ResponderRequestsTotal.WithLabelValues("success").Inc()
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func userPrompt(query string, result domain.SearchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Suchanfrage: %s\n", query)
	fmt.Fprintf(&b, "Bisherige Antwort: %s\n", result.NaturalResponse)
	if len(result.DirectResults) > 0 {
		b.WriteString("Treffer:\n")
		for _, f := range result.DirectResults {
			fmt.Fprintf(&b, "- %s (%s -> %s, %s)\n", f.Name, f.SourceSystem, f.TargetSystem, f.Format)
		}
	}
	return b.String()
}
