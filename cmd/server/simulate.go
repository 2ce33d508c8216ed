package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"citizensera.com/sera/internal/config"
	"citizensera.com/sera/internal/core"
)

func newSimulateCmd() *cobra.Command {
	var (
		deterministic bool
		seed          uint64
		speed         float64
		tuningPath    string
	)

	cmd := &cobra.Command{
		Use:   "simulate <benefit-id>",
		Short: "Run one benefit application to a decision and print each step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tuning := config.DefaultSimTuning()
			if tuningPath != "" {
				t, err := config.LoadSimTuning(tuningPath)
				if err != nil {
					return err
				}
				tuning = *t
			}
			if speed <= 0 {
				return fmt.Errorf("--speed must be > 0")
			}

			var strategy core.Strategy = core.NewRandomStrategy(seed)
			if deterministic {
				strategy = core.NewFixedStrategy(0)
			}
			return runSimulation(cmd.Context(), cmd.OutOrStdout(), args[0], scaleTuning(tuning, speed), strategy)
		},
	}

	cmd.Flags().BoolVar(&deterministic, "deterministic", false, "always take the most likely branch")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 seeds from the clock)")
	cmd.Flags().Float64Var(&speed, "speed", 1, "playback speed multiplier")
	cmd.Flags().StringVar(&tuningPath, "sim-config", "", "YAML file overriding delays and branch odds")
	return cmd
}

func runSimulation(ctx context.Context, out io.Writer, benefitID string, tuning config.SimTuning, strategy core.Strategy) error {
	session := core.NewSession("cli", core.Profile{}, core.SessionOptions{
		Tuning:      tuning,
		Clock:       core.WallClock(),
		NewStrategy: func() core.Strategy { return strategy },
	})
	defer session.Close()

	sub := session.Events.Subscribe(0)
	defer sub.Close()

	fmt.Fprintf(out, "%-8s %-17s %4s  %s\n", "T+", "STATUS", "PCT", "NEXT STEP")
	fmt.Fprintf(out, "%-8s %-17s %3d%%  %s\n", "0.0s", core.StatusNotStarted, 0, "-")

	start := time.Now()
	if _, _, err := session.Applications.StartApplication(benefitID); err != nil {
		return fmt.Errorf("cannot start %q: %w", benefitID, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-sub.Events():
			if !ok {
				return fmt.Errorf("event stream closed before a decision")
			}
			if ev.Type != core.EventApplication {
				continue
			}
			app := ev.Application
			elapsed := fmt.Sprintf("%.1fs", time.Since(start).Seconds())
			fmt.Fprintf(out, "%-8s %-17s %3d%%  %s\n", elapsed, app.Status, app.ProgressPercent, app.NextStep)

			switch {
			case app.Status == core.StatusDocumentsNeeded:
				for _, doc := range app.RequiredDocuments {
					fmt.Fprintf(out, "%8s uploading %s\n", "", doc)
				}
				session.Applications.SubmitDocuments(benefitID)
			case app.Status.Terminal():
				return nil
			}
		}
	}
}

func scaleTuning(t config.SimTuning, speed float64) config.SimTuning {
	scale := func(d time.Duration) time.Duration { return time.Duration(float64(d) / speed) }
	t.Chat.ReplyDelay = scale(t.Chat.ReplyDelay)
	t.Chat.QuickActionDelay = scale(t.Chat.QuickActionDelay)
	t.Chat.NavigateDelay = scale(t.Chat.NavigateDelay)
	steps := make([]time.Duration, len(t.Application.StepDelays))
	for i, d := range t.Application.StepDelays {
		steps[i] = scale(d)
	}
	t.Application.StepDelays = steps
	t.Application.DecisionDelay = scale(t.Application.DecisionDelay)
	return t
}
