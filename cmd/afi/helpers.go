package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/invoice-advisor/internal/analysis"
	"github.com/Veraticus/invoice-advisor/internal/config"
	"github.com/Veraticus/invoice-advisor/internal/ingest"
	"github.com/Veraticus/invoice-advisor/internal/model"
	"github.com/Veraticus/invoice-advisor/internal/service"
)

// session is everything a command needs after configuration is loaded.
type session struct {
	engine   *analysis.Engine
	tunables config.Tunables
}

// newSession validates the tunables and builds an engine. assistant may be
// nil for commands that never ask questions.
func newSession(v *viper.Viper, assistant service.Assistant) (*session, error) {
	tunables, err := config.LoadTunables(v)
	if err != nil {
		return nil, err
	}

	promptBuilder, err := analysis.NewTemplatePromptBuilder()
	if err != nil {
		return nil, fmt.Errorf("failed to create prompt builder: %w", err)
	}

	deps := analysis.Deps{Assistant: assistant, PromptBuilder: promptBuilder}
	engine, err := analysis.NewEngineWithConfig(deps, analysis.ConfigFromTunables(tunables))
	if err != nil {
		return nil, err
	}
	return &session{engine: engine, tunables: tunables}, nil
}

// analyzeFile reads path and runs the analysis as of asOf.
func (s *session) analyzeFile(path string, asOf time.Time) (*analysis.Result, error) {
	rows, err := ingest.ReadFile(config.ExpandPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to load invoices: %w", err)
	}
	return s.engine.Run(rows, analysis.Options{Today: asOf}), nil
}

// addAsOfFlag registers the shared --as-of flag.
func addAsOfFlag(cmd *cobra.Command) {
	cmd.Flags().String("as-of", "", "analysis date (YYYY-MM-DD, default: today)")
}

// asOfDate parses --as-of. An empty value yields the zero time, which makes
// the engine use the current date.
func asOfDate(cmd *cobra.Command) (time.Time, error) {
	raw, _ := cmd.Flags().GetString("as-of")
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(model.DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --as-of date %q (use YYYY-MM-DD): %w", raw, err)
	}
	return t, nil
}
