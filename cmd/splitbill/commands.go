package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmynk/billsplit/internal/calculator"
	"github.com/mmynk/billsplit/internal/config"
	"github.com/mmynk/billsplit/internal/report"
	"github.com/mmynk/billsplit/internal/scenario"
	"github.com/mmynk/billsplit/pkg/logging"
)

// errMismatch is returned when at least one allocation does not add up.
var errMismatch = errors.New("charges do not match total cost")

type rootOptions struct {
	configPath string
	logLevel   string
	tolerance  float64
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "splitbill",
		Short:         "Split shared costs by attendance",
		Long:          `Allocates a total cost among people over a span of days. Fixed costs are shared equally, daily costs only among the people present.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrEnv(opts.configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			level := cfg.Logging.Level
			if cmd.Flags().Changed("log-level") {
				level = opts.logLevel
			}
			slog.SetDefault(logging.New(cmd.ErrOrStderr(), logging.ParseLevel(level)))
			if !cmd.Flags().Changed("tolerance") {
				opts.tolerance = cfg.Split.Tolerance
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "config.yaml", "path to YAML config")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().Float64Var(&opts.tolerance, "tolerance", calculator.DefaultTolerance, "tolerance for the total check")

	root.AddCommand(newRunCmd(opts), newAllocateCmd(opts))
	return root
}

func newRunCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run [scenarios.yaml]",
		Short: "Run verification scenarios and print each allocation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarios := scenario.Defaults()
			if len(args) == 1 {
				loaded, err := scenario.Load(args[0])
				if err != nil {
					return err
				}
				scenarios = loaded
			}
			return runScenarios(cmd.OutOrStdout(), scenarios, opts.tolerance)
		},
	}
}

// runScenarios prints every scenario and returns errMismatch if any
// allocation with at least one day fails the total check.
func runScenarios(w io.Writer, scenarios []scenario.Scenario, tolerance float64) error {
	failed := 0
	for i, s := range scenarios {
		if i > 0 {
			fmt.Fprintln(w)
		}
		charges, err := s.Run()
		if err != nil {
			return err
		}
		r := report.Build(s.Name, s.TotalCost, charges, tolerance)
		if _, err := r.WriteTo(w); err != nil {
			return err
		}
		// Zero days leaves the variable cost undistributed
		if !r.Matches && s.TotalDays > 0 {
			slog.Warn("Scenario does not add up", "scenario", s.Name, "total", r.Total, "total_cost", s.TotalCost)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios: %w", failed, len(scenarios), errMismatch)
	}
	return nil
}

func newAllocateCmd(opts *rootOptions) *cobra.Command {
	var (
		s       scenario.Scenario
		persons []string
	)

	cmd := &cobra.Command{
		Use:   "allocate",
		Short: "Allocate one bill given on the command line",
		Example: `  splitbill allocate --total 300 --days 30 --person Alice --person Bob:0-9 --person Charlie
  splitbill allocate --total 120 --fixed 20 --days 4 --person Ann:1,3 --person Ben`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range persons {
				spec, err := parsePerson(p, s.TotalDays)
				if err != nil {
					return err
				}
				s.Persons = append(s.Persons, spec)
			}
			if s.Name == "" {
				s.Name = "Allocation"
			}
			return runScenarios(cmd.OutOrStdout(), []scenario.Scenario{s}, opts.tolerance)
		},
	}

	cmd.Flags().StringVar(&s.Name, "name", "", "label printed above the result")
	cmd.Flags().Float64Var(&s.TotalCost, "total", 0, "total cost to divide")
	cmd.Flags().Float64Var(&s.FixedCost, "fixed", 0, "part of the total shared equally regardless of attendance")
	cmd.Flags().IntVar(&s.TotalDays, "days", 0, "number of days the variable cost covers")
	cmd.Flags().StringArrayVar(&persons, "person", nil, "person as Name or Name:absent-days (e.g. Bob:0-9,15)")
	_ = cmd.MarkFlagRequired("total")
	return cmd
}

// parsePerson reads "Name" or "Name:days" where days is a comma separated
// list of day indexes and inclusive ranges like 3-7. Ranges are clipped to
// [0, totalDays) since days outside the period never affect the allocation.
func parsePerson(s string, totalDays int) (scenario.PersonSpec, error) {
	name, days, hasDays := strings.Cut(s, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return scenario.PersonSpec{}, fmt.Errorf("person %q: missing name", s)
	}
	spec := scenario.PersonSpec{Name: name}
	if !hasDays || strings.TrimSpace(days) == "" {
		return spec, nil
	}

	for _, part := range strings.Split(days, ",") {
		part = strings.TrimSpace(part)
		lo, hi, isRange := strings.Cut(part, "-")
		if !isRange {
			hi = lo
		}
		from, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return scenario.PersonSpec{}, fmt.Errorf("person %q: bad day %q: %w", name, part, err)
		}
		to, err := strconv.Atoi(strings.TrimSpace(hi))
		if err != nil {
			return scenario.PersonSpec{}, fmt.Errorf("person %q: bad day %q: %w", name, part, err)
		}
		if to < from {
			return scenario.PersonSpec{}, fmt.Errorf("person %q: empty range %q", name, part)
		}
		from = max(from, 0)
		to = min(to, totalDays-1)
		for d := from; d <= to; d++ {
			spec.AbsentDays = append(spec.AbsentDays, d)
		}
	}
	return spec, nil
}
