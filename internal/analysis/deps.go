// Package analysis runs the invoice analysis pipeline and brokers questions
// to the assistant.
package analysis

import (
	"fmt"
	"time"

	"github.com/Veraticus/invoice-advisor/internal/service"
)

// PromptBuilder renders the assistant context for a result.
type PromptBuilder interface {
	BuildContext(data PromptData) (string, error)
}

// Deps contains all dependencies required by the analysis engine.
type Deps struct {
	// Assistant answers questions. It may be nil for runs that never ask.
	Assistant service.Assistant
	// PromptBuilder renders the assistant context.
	PromptBuilder PromptBuilder
	// Clock supplies the current time when Options.Today is zero.
	Clock func() time.Time
}

// Validate ensures all required dependencies are provided.
func (d *Deps) Validate() error {
	if d.PromptBuilder == nil {
		return fmt.Errorf("prompt builder dependency is required")
	}
	return nil
}

// Engine runs analyses. It keeps no state between calls.
type Engine struct {
	deps   Deps
	config Config
}

// NewEngine creates an engine with the stock thresholds.
func NewEngine(deps Deps) (*Engine, error) {
	return NewEngineWithConfig(deps, DefaultConfig())
}

// NewEngineWithConfig creates an engine with custom thresholds.
func NewEngineWithConfig(deps Deps, config Config) (*Engine, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dependencies: %w", err)
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	return &Engine{deps: deps, config: config}, nil
}

// Config returns the thresholds the engine runs with.
func (e *Engine) Config() Config {
	return e.config
}
