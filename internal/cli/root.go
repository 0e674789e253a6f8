package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/treb-dao/internal/adapters/progress"
	"github.com/trebuchet-org/treb-dao/internal/app"
	"github.com/trebuchet-org/treb-dao/internal/config"
	domainconfig "github.com/trebuchet-org/treb-dao/internal/domain/config"
	"github.com/trebuchet-org/treb-dao/internal/usecase"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var cleanup func()

	rootCmd := &cobra.Command{
		Use:   "treb-dao",
		Short: "Governance client for an NFT-gated DAO treasury",
		Long: `treb-dao connects a wallet to a DAO whose members hold an NFT. Members
create proposals to buy marketplace items with the treasury, vote on them
while they are open and execute them once voting has closed. The owner can
withdraw the treasury.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if skipAppInit(cmd) {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			// Set up viper
			v := config.SetupViper(projectRoot)

			// Bind global flags that have been set
			bindGlobalFlags(v, cmd)

			// Initialize app with DI
			appInstance, closeApp, err := app.InitApp(v, newProgressSink(v))
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			// Store app in context
			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			cancel := context.CancelFunc(func() {})
			if appInstance.Config.Timeout > 0 {
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
			}
			cleanup = func() {
				cancel()
				appInstance.Close()
				closeApp()
			}

			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if cleanup != nil {
				cleanup()
			}
		},
	}

	// Global flags
	rootCmd.SetGlobalNormalizationFunc(normalizeFlagName)
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network from dao.toml to use (e.g., mainnet, sepolia)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format (text, json, yaml)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Abort the command after this duration (0 disables)")

	// Add command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "view",
		Title: "View Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "action",
		Title: "Action Commands",
	})

	for _, cmd := range []*cobra.Command{NewStatusCmd(), NewProposalsCmd(), NewWatchCmd(), NewContractsCmd()} {
		cmd.GroupID = "view"
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{NewCreateCmd(), NewVoteCmd(), NewExecuteCmd(), NewWithdrawCmd()} {
		cmd.GroupID = "action"
		rootCmd.AddCommand(cmd)
	}

	// Version command
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// skipAppInit reports whether cmd runs without a configured app
func skipAppInit(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	return cmd.Parent() != nil && cmd.Parent().Name() == "completion"
}

// globalFlagKeys maps global flags to their viper keys
var globalFlagKeys = map[string]string{
	"debug":           "debug",
	"non-interactive": "non_interactive",
	"network":         "network",
	"output":          "output",
	"timeout":         "timeout",
}

// bindGlobalFlags binds command flags to viper
func bindGlobalFlags(v *viper.Viper, cmd *cobra.Command) {
	// Visit only walks flags that were set on the command line
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if key, ok := globalFlagKeys[f.Name]; ok {
			v.Set(key, f.Value.String())
		}
	})
}

// normalizeFlagName accepts underscores in flag names (--non_interactive)
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

// newProgressSink shows a spinner only for interactive text output
func newProgressSink(v *viper.Viper) usecase.ProgressSink {
	if v.GetBool("non_interactive") || !strings.EqualFold(v.GetString("output"), string(domainconfig.OutputText)) {
		return progress.NewNopSink()
	}
	return progress.NewSpinnerProgressReporter()
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
