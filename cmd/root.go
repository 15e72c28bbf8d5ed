package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/akyaiy/godoit/hooks"
	"github.com/akyaiy/godoit/internal/core/corestate"
	"github.com/akyaiy/godoit/internal/engine/logs"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "godoit",
	Short: "i-doit JSON-RPC client",
	Long: `godoit talks to the JSON-RPC API of an i-doit CMDB.
The endpoint and credentials come from godoit.yaml, GODOIT_* variables or a .env file.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func Execute() {
	log.SetOutput(os.Stderr)
	log.SetPrefix(logs.SetBrightBlack(fmt.Sprintf("(%s) ", corestate.StageNotReady)))
	log.SetFlags(log.Ldate | log.Ltime)
	hooks.Compositor.LoadCMDLine(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
