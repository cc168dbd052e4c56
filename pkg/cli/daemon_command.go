package cli

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/github/gh-bundles/pkg/registry"
	"github.com/github/gh-bundles/pkg/registry/update"
)

func newDaemonCommand(app *App) *cobra.Command {
	var (
		scopeFlag string
		frequency string
	)

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run the background update scheduler and config watcher until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			dataDir := NewDataDirProvider()
			scope, workspaceRoot, err := app.currentScope(ctx, scopeFlag, dataDir)
			if err != nil {
				return err
			}
			key := registry.ScopeKey(scope, workspaceRoot)

			go func() {
				if err := app.Store.Watch(ctx); err != nil && ctx.Err() == nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "config watcher stopped: %v\n", err)
				}
			}()

			if err := app.Scheduler.Start(ctx, key, update.Frequency(frequency), 5*time.Second); err != nil {
				return fmt.Errorf("starting update scheduler: %w", err)
			}
			defer app.Scheduler.Stop()

			fmt.Fprintln(cmd.OutOrStdout(), "watching for config changes and checking for updates; press Ctrl+C to stop")
			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&scopeFlag, "scope", string(registry.ScopeUser), "scope to monitor: user, workspace, repository")
	cmd.Flags().StringVar(&frequency, "frequency", string(update.FrequencyDaily), "update check cadence: daily, weekly, manual")
	return cmd
}
