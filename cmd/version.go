package cmd

import (
	"context"
	"fmt"
	"runtime"

	"github.com/akyaiy/godoit/hooks"
	"github.com/akyaiy/godoit/internal/core/corestate"
	"github.com/akyaiy/godoit/internal/engine/app"
	"github.com/akyaiy/godoit/internal/engine/config"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the godoit version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		hooks.Run(func(_ context.Context, cs *corestate.CoreState, x *app.AppX) error {
			if x.Out.JSON {
				return x.Out.Raw(map[string]string{
					"version": config.Version,
					"go":      runtime.Version(),
					"os":      runtime.GOOS,
					"arch":    runtime.GOARCH,
				})
			}
			_, err := fmt.Fprintf(x.Stdout, "%s %s (%s, %s/%s)\n", cs.BinName, config.Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
			return err
		})
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `
"config" prints the configuration after file, environment and defaults are merged.
Secrets are masked.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		hooks.Run(hooks.Config())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd, configCmd)
}
