package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/invoice-advisor/internal/analysis"
	"github.com/Veraticus/invoice-advisor/internal/cli"
	"github.com/Veraticus/invoice-advisor/internal/conversation"
)

const chatHelp = `Commands:
  help      show this help
  actions   list reviewer actions for flagged invoices
  approve | return | escalate (or 1-3)   record a reviewer decision
  reset     forget the conversation so far
  quit      leave the chat
Anything else is sent to the assistant.`

func chatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat <file>",
		Short: "Discuss an invoice batch with the assistant",
		Long: `Analyze an invoice batch, print the results, then start an interactive
conversation with the assistant. Earlier questions and answers are kept as
context for later ones.`,
		Args: cobra.ExactArgs(1),
		RunE: runChatCmd,
	}
	addAsOfFlag(cmd)
	return cmd
}

func runChatCmd(cmd *cobra.Command, args []string) error {
	asOf, err := asOfDate(cmd)
	if err != nil {
		return err
	}

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

	out := cmd.OutOrStdout()
	interruptHandler := cli.NewInterruptHandler(out)
	ctx := interruptHandler.HandleInterrupts(cmd.Context(), "Chat", "")

	_, _ = fmt.Fprintln(out, analysis.NewCLIFormatter().FormatResult(result))
	log := conversation.NewLog(s.tunables.MaxConversationTurns)
	return runChat(ctx, cmd.InOrStdin(), out, s.engine, result, log)
}

// runChat drives the question loop until input ends, the user quits or ctx
// is canceled.
func runChat(ctx context.Context, in io.Reader, out io.Writer, engine *analysis.Engine, result *analysis.Result, log *conversation.Log) error {
	reader := cli.NewLineReader(in)
	formatter := analysis.NewCLIFormatter()

	_, _ = fmt.Fprintln(out, cli.FormatInfo("Ask about these invoices. Type 'help' for commands, 'quit' to leave."))

	for {
		_, _ = fmt.Fprint(out, cli.FormatPrompt("afi> "))

		line, err := reader.ReadQuestion(ctx)
		if errors.Is(err, io.EOF) || errors.Is(err, cli.ErrInputCancelled) {
			_, _ = fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		switch strings.ToLower(line) {
		case "quit", "exit":
			return nil
		case "help":
			_, _ = fmt.Fprintln(out, chatHelp)
			continue
		case "reset":
			log.Reset()
			_, _ = fmt.Fprintln(out, cli.FormatSuccess("Conversation cleared"))
			continue
		case "actions":
			_, _ = fmt.Fprintln(out, formatter.FormatReviewActions())
			continue
		}

		if action, ok := analysis.ParseReviewAction(line); ok {
			if result.HasAnomalies() {
				_, _ = fmt.Fprintln(out, cli.FormatSuccess(action.Outcome()))
			} else {
				_, _ = fmt.Fprintln(out, cli.FormatInfo("No invoices are flagged; nothing to review."))
			}
			continue
		}

		reply := engine.Ask(ctx, result, line, log)
		_, _ = fmt.Fprintln(out, formatter.FormatReply(reply))
	}
}
