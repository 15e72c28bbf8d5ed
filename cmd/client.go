package cmd

import (
	"github.com/akyaiy/godoit/hooks"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the i-doit version and the calling user",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		hooks.RunClient(hooks.Info())
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the CMDB",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		hooks.RunClient(hooks.Search(args[0]))
	},
}

var constantsCmd = &cobra.Command{
	Use:     "constants",
	Aliases: []string{"const"},
	Short:   "List object type, category and record status constants",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		hooks.RunClient(hooks.Constants())
	},
}

var callCmd = &cobra.Command{
	Use:   "call <method> [params]",
	Short: "Call any JSON-RPC method",
	Long: `
"call" sends method with params given as a JSON object and prints the raw result.
The api key is added to params.`,
	Example: `  godoit call cmdb.category.read '{"objID": 3, "category": "C__CATG__CPU"}'`,
	Args:    cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		params := ""
		if len(args) == 2 {
			params = args[1]
		}
		hooks.RunClient(hooks.Call(args[0], params))
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Open a session and keep it for later commands",
	Long: `
"login" authenticates with idoit.username and idoit.password and stores the
session id in session.file. The password is prompted for when not configured.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		hooks.RunClient(hooks.Login(hooks.Compositor.CMDLine.Login.Prompt))
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Close the stored session",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		hooks.RunClient(hooks.Logout())
	},
}

func init() {
	rootCmd.AddCommand(infoCmd, searchCmd, constantsCmd, callCmd, loginCmd, logoutCmd)
}
