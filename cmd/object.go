package cmd

import (
	"log"

	"github.com/akyaiy/godoit/hooks"
	"github.com/spf13/cobra"
)

var objectCmd = &cobra.Command{
	Use:     "object",
	Aliases: []string{"obj"},
	Short:   "Create, read and change CMDB objects",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var objectCreateCmd = &cobra.Command{
	Use:     "create <type> <title>",
	Short:   "Create an object",
	Example: `  godoit object create C__OBJTYPE__SERVER web01 --cmdb-status C__CMDB_STATUS__IN_OPERATION`,
	Args:    cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		hooks.RunClient(hooks.ObjectCreate(args[0], args[1], &hooks.Compositor.CMDLine.ObjectCreate))
	},
}

var objectReadCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Show an object",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		hooks.RunClient(hooks.ObjectRead(mustID(args[0])))
	},
}

var objectUpdateCmd = &cobra.Command{
	Use:   "update <id> <title>",
	Short: "Rename an object",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		hooks.RunClient(hooks.ObjectUpdate(mustID(args[0]), args[1]))
	},
}

var objectDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Archive, delete or purge an object",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		hooks.RunClient(hooks.ObjectDelete(mustID(args[0]), hooks.Compositor.CMDLine.ObjectDelete.Status))
	},
}

var lifecycleShort = map[string]string{
	"recycle":  "Restore an archived or deleted object",
	"archive":  "Archive an object",
	"purge":    "Remove an object for good",
	"template": "Turn an object into a template",
}

func mustID(s string) int64 {
	id, err := hooks.ParseID(s)
	if err != nil {
		log.Fatalf("%s", err)
	}
	return id
}

func init() {
	objectCmd.AddCommand(objectCreateCmd, objectReadCmd, objectUpdateCmd, objectDeleteCmd)
	for _, op := range []string{"recycle", "archive", "purge", "template"} {
		objectCmd.AddCommand(&cobra.Command{
			Use:   op + " <id>",
			Short: lifecycleShort[op],
			Args:  cobra.ExactArgs(1),
			Run: func(cmd *cobra.Command, args []string) {
				hooks.RunClient(hooks.ObjectChangeStatus(op, mustID(args[0])))
			},
		})
	}
	rootCmd.AddCommand(objectCmd)
}
