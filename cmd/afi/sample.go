package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/invoice-advisor/internal/cli"
	"github.com/Veraticus/invoice-advisor/internal/sample"
)

func sampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Generate a synthetic invoice batch as CSV",
		Args:  cobra.NoArgs,
		RunE:  runSample,
	}

	addAsOfFlag(cmd)
	cmd.Flags().IntP("count", "n", 20, "number of invoices")
	cmd.Flags().Uint64("seed", 1, "random seed; equal seeds produce equal batches")
	cmd.Flags().String("out", "", "output file (default: stdout)")

	return cmd
}

func runSample(cmd *cobra.Command, _ []string) error {
	count, _ := cmd.Flags().GetInt("count")
	if count < 0 {
		return fmt.Errorf("count cannot be negative: %d", count)
	}
	seed, _ := cmd.Flags().GetUint64("seed")

	asOf, err := asOfDate(cmd)
	if err != nil {
		return err
	}
	if asOf.IsZero() {
		asOf = time.Now()
	}

	outPath, _ := cmd.Flags().GetString("out")
	out, err := openOutput(cmd.OutOrStdout(), outPath)
	if err != nil {
		return err
	}

	rows := sample.NewGenerator(seed).Rows(count, asOf)
	if err := sample.WriteCSV(out, rows); err != nil {
		out.Discard()
		return fmt.Errorf("failed to write sample: %w", err)
	}
	if err := out.Close(); err != nil {
		return err
	}

	if outPath != "" {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatSuccess(fmt.Sprintf("Wrote %d invoices to %s", count, outPath)))
	}
	return nil
}
