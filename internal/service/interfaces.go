// Package service defines the contracts between the analysis core and its
// external collaborators.
package service

import (
	"context"
	"io"
	"time"
)

// Role identifies who produced a conversation turn.
type Role string

const (
	// RoleUser marks a question asked by the user.
	RoleUser Role = "user"
	// RoleAssistant marks a reply produced by the assistant.
	RoleAssistant Role = "assistant"
)

// Turn is one message of a conversation.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// QueryRequest is everything the assistant receives for one question.
type QueryRequest struct {
	// Context is the rendered invoice summary.
	Context string
	// Question is the user's natural-language question.
	Question string
	// History holds prior turns, oldest first.
	History []Turn
}

// Assistant answers questions about an invoice batch. Implementations wrap an
// external language-model service.
type Assistant interface {
	Ask(ctx context.Context, req QueryRequest) (string, error)
}

// Exporter turns an ordered list of recommendation texts into a paginated
// document. Pagination is the exporter's concern.
type Exporter interface {
	Export(ctx context.Context, w io.Writer, recommendations []string) error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
}
