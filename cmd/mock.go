package cmd

import (
	"github.com/akyaiy/godoit/hooks"
	"github.com/spf13/cobra"
)

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Run a local i-doit look-alike endpoint",
	Long: `
"mock" serves the JSON-RPC API on mock.address:mock.port with objects kept in
sqlite (mock.db_path). Methods without a built-in handler are looked up as Lua
scripts below mock.script_dir.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		hooks.RunMock(&hooks.Compositor.CMDLine.Mock)
	},
}

func init() {
	rootCmd.AddCommand(mockCmd)
}
