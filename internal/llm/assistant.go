package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/invoice-advisor/internal/common"
	"github.com/Veraticus/invoice-advisor/internal/service"
)

// Assistant answers invoice questions through a provider client. It applies
// rate limiting, reply caching and retries around every call.
type Assistant struct {
	client      Client
	cache       *replyCache
	rateLimiter *rateLimiter
	logger      *slog.Logger
	retryOpts   service.RetryOptions
}

var _ service.Assistant = (*Assistant)(nil)

// NewAssistant creates an assistant for the configured provider.
func NewAssistant(cfg Config, logger *slog.Logger) (*Assistant, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return NewAssistantWithClient(client, cfg, logger), nil
}

// NewAssistantWithClient wraps an existing client. It is used by tests and by
// callers that bring their own transport.
func NewAssistantWithClient(client Client, cfg Config, logger *slog.Logger) *Assistant {
	if logger == nil {
		logger = slog.Default()
	}

	retryOpts := service.RetryOptions{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: cfg.RetryDelay,
		MaxDelay:     30 * time.Second,
	}
	if retryOpts.MaxAttempts == 0 {
		retryOpts.MaxAttempts = 3
	}
	if retryOpts.InitialDelay == 0 {
		retryOpts.InitialDelay = time.Second
	}

	return &Assistant{
		client:      client,
		cache:       newReplyCache(cfg.CacheSize, cfg.CacheTTL),
		rateLimiter: newRateLimiter(cfg.RateLimit),
		logger:      logger,
		retryOpts:   retryOpts,
	}
}

// BuildRequest converts a query into a provider request. The invoice context
// becomes the system prompt; prior turns precede the question.
func BuildRequest(q service.QueryRequest) Request {
	messages := make([]Message, 0, len(q.History)+1)
	for _, turn := range q.History {
		messages = append(messages, Message{Role: string(turn.Role), Content: turn.Content})
	}
	messages = append(messages, Message{Role: string(service.RoleUser), Content: q.Question})
	return Request{System: q.Context, Messages: messages}
}

// Ask implements service.Assistant.
func (a *Assistant) Ask(ctx context.Context, q service.QueryRequest) (string, error) {
	if strings.TrimSpace(q.Question) == "" {
		return "", common.ErrEmptyQuestion
	}

	req := BuildRequest(q)
	key := cacheKey(req)
	if reply, found := a.cache.get(key); found {
		a.logger.Debug("cache hit for question", "history_turns", len(q.History))
		return reply, nil
	}

	var resp Response
	err := common.WithRetry(ctx, func() error {
		if err := a.rateLimiter.wait(ctx); err != nil {
			return &common.RetryableError{Err: err, Retryable: false}
		}
		var callErr error
		resp, callErr = a.client.Complete(ctx, req)
		return callErr
	}, a.retryOpts)
	if err != nil {
		return "", fmt.Errorf("assistant request failed: %w", err)
	}

	a.cache.set(key, resp.Text)
	a.logger.Info("assistant answered",
		"model", resp.Model,
		"input_tokens", resp.InputTokens,
		"output_tokens", resp.OutputTokens,
		"history_turns", len(q.History))

	return resp.Text, nil
}
