package cmd

import (
	"github.com/spf13/cobra"

	"github.com/aweris/gitlet"
)

var addCmd = &cobra.Command{
	Use:   "add <file>",
	Short: "Stage a file",
	Long:  "Store the current contents of a file and stage it for the next commit.",
	Args:  exactArgs(1),
	RunE:  runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	return withRepo(cmd, func(repo *gitlet.Repository) error {
		return repo.Add(args[0])
	})
}
