package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-dao/internal/app"
	"github.com/trebuchet-org/treb-dao/internal/cli/render"
	"github.com/trebuchet-org/treb-dao/internal/domain/config"
	"github.com/trebuchet-org/treb-dao/internal/domain/models"
	"github.com/trebuchet-org/treb-dao/internal/usecase"
)

// watchOutput is one structured watch update
type watchOutput struct {
	Status    render.Status         `json:"status" yaml:"status"`
	Proposals []models.ProposalView `json:"proposals" yaml:"proposals"`
}

// NewWatchCmd creates the watch command
func NewWatchCmd() *cobra.Command {
	var (
		interval    time.Duration
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Live dashboard that follows account changes and refreshes periodically",
		Long: `Show the status and proposal list and keep them current. The view refreshes
on every wallet account change and every --interval. With --metrics-addr
the refresh and action metrics are served for Prometheus at /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			snap, err := app.Governance.Open(ctx, usecase.OpenOptions{LoadProposals: true})
			if err != nil {
				return err
			}

			if metricsAddr != "" {
				go func() {
					if err := app.Metrics.Serve(ctx, metricsAddr, app.Log); err != nil {
						app.Log.Error("metrics server stopped", "addr", metricsAddr, "error", err)
					}
				}()
			}

			if app.Config.NonInteractive || app.Config.Output != config.OutputText {
				return app.Governance.Watch(ctx, interval, func(event usecase.WatchEvent) {
					printWatchEvent(cmd, app, event)
				})
			}

			model := newDashboardModel(app.Config.Network, interval).apply(usecase.WatchEvent{
				Session:  app.Governance.Session(),
				Snapshot: snap,
				Views:    usecase.DescribeSnapshot(snap, time.Now()),
			})
			program := tea.NewProgram(model, tea.WithOutput(cmd.OutOrStdout()))

			watchErr := make(chan error, 1)
			go func() {
				watchErr <- app.Governance.Watch(ctx, interval, func(event usecase.WatchEvent) {
					program.Send(watchEventMsg(event))
				})
				program.Quit()
			}()

			if _, err := program.Run(); err != nil {
				return fmt.Errorf("dashboard failed: %w", err)
			}
			cancel()
			return <-watchErr
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 15*time.Second, "Refresh interval (0 refreshes only on account changes)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9102)")

	return cmd
}

// printWatchEvent writes one update for non-interactive output
func printWatchEvent(cmd *cobra.Command, a *app.App, event usecase.WatchEvent) {
	if event.Err != nil {
		if !errors.Is(event.Err, context.Canceled) {
			fmt.Fprintln(cmd.ErrOrStderr(), render.FormatError(event.Err.Error()))
		}
		return
	}

	update := watchOutput{
		Status:    render.NewStatus(a.Config.Network, event.Session, event.Snapshot),
		Proposals: event.Views,
	}
	err := printResult(cmd, a, update, func(out io.Writer) error {
		if err := render.NewStatusRenderer(out).Render(update.Status); err != nil {
			return err
		}
		fmt.Fprintln(out)
		return render.NewProposalsRenderer(out).Render(render.ProposalList{
			Proposals:   update.Proposals,
			EvaluatedAt: time.Now(),
		})
	})
	if err != nil {
		a.Log.Error("failed to print update", "error", err)
	}
}
