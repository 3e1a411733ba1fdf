package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/invoice-advisor/internal/analysis"
)

func askCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <file> <question>",
		Short: "Ask the assistant one question about an invoice batch",
		Args:  cobra.ExactArgs(2),
		RunE:  runAsk,
	}
	addAsOfFlag(cmd)
	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	asOf, err := asOfDate(cmd)
	if err != nil {
		return err
	}

	// Credentials are checked before any analysis starts.
	assistant, err := createAssistant(viper.GetViper())
	if err != nil {
		return err
	}

	s, err := newSession(viper.GetViper(), assistant)
	if err != nil {
		return err
	}

	result, err := s.analyzeFile(args[0], asOf)
	if err != nil {
		return err
	}

	return askOnce(cmd.Context(), cmd.OutOrStdout(), s.engine, result, args[1])
}

// askOnce prints the analysis followed by the assistant's reply, so an
// advisory always has the results it refers to above it.
func askOnce(ctx context.Context, out io.Writer, engine *analysis.Engine, result *analysis.Result, question string) error {
	formatter := analysis.NewCLIFormatter()
	if _, err := fmt.Fprintln(out, formatter.FormatResult(result)); err != nil {
		return err
	}

	reply := engine.Ask(ctx, result, question, nil)
	_, err := fmt.Fprintln(out, "\n"+formatter.FormatReply(reply))
	return err
}
