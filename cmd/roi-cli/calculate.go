package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"nexalis-roi/internal/narrative"
	"nexalis-roi/internal/report"
	"nexalis-roi/internal/roi"
	genexcel "nexalis-roi/internal/service/generate-excel"
)

type CalculateCmd struct {
	employees int
	wage      float64
	hours     float64
	industry  string
	insight   bool
	relayURL  string
	timeout   time.Duration
	xlsxPath  string
	log       *slog.Logger
}

func NewCalculateCmd(log *slog.Logger) *cobra.Command {
	cc := &CalculateCmd{log: log}
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Compute the ROI estimate and print the summary",
		RunE:  cc.run,
	}

	d := roi.DefaultInputs
	cmd.Flags().IntVar(&cc.employees, "employees", d.Employees, "Number of employees concerned")
	cmd.Flags().Float64Var(&cc.wage, "wage", d.HourlyWage, "Average loaded hourly wage in EUR")
	cmd.Flags().Float64Var(&cc.hours, "hours", d.HoursRepetitive, "Repetitive hours per employee per week")
	cmd.Flags().StringVar(&cc.industry, "industry", string(d.Industry), "Industry label")
	cmd.Flags().BoolVar(&cc.insight, "insight", false, "Request the strategic analysis from the relay")
	cmd.Flags().StringVar(&cc.relayURL, "relay-url", "http://localhost:4001/api/gemini", "Relay endpoint used with --insight")
	cmd.Flags().DurationVar(&cc.timeout, "timeout", 30*time.Second, "Relay timeout")
	cmd.Flags().StringVar(&cc.xlsxPath, "xlsx", "", "Also write the spreadsheet report to this path")

	return cmd
}

func (cc *CalculateCmd) run(cmd *cobra.Command, args []string) error {
	in := roi.Inputs{
		Employees:       cc.employees,
		HourlyWage:      cc.wage,
		HoursRepetitive: cc.hours,
		Industry:        roi.Industry(cc.industry),
	}
	if err := in.Validate(); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}

	res := roi.Compute(in)

	var n *narrative.Narrative
	if cc.insight {
		ctx, cancel := context.WithTimeout(cmd.Context(), cc.timeout)
		defer cancel()

		got := narrative.NewRequester(cc.log, cc.relayURL, cc.timeout).RequestInsight(ctx, in, res)
		n = &got
	}

	doc := report.BuildDocument(report.Assemble(in, res, roi.Chart(res), n), time.Now())

	if err := report.RenderText(cmd.OutOrStdout(), doc); err != nil {
		return err
	}

	if cc.xlsxPath == "" {
		return nil
	}

	data, err := genexcel.Render(cmd.Context(), doc)
	if err != nil {
		return fmt.Errorf("render spreadsheet: %w", err)
	}
	if err := os.WriteFile(cc.xlsxPath, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", cc.xlsxPath, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "spreadsheet written to %s\n", cc.xlsxPath)

	return nil
}

func NewIndustriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "industries",
		Short: "List the accepted industry labels",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, ind := range roi.Industries {
				fmt.Fprintln(cmd.OutOrStdout(), ind)
			}
			return nil
		},
	}
}
