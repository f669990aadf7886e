package cmd

import (
	"github.com/spf13/cobra"

	"github.com/aweris/gitlet"
)

var rmCmd = &cobra.Command{
	Use:   "rm <file>",
	Short: "Unstage a file or stage its removal",
	Long:  "Unstage a file; if the current commit tracks it, stage its removal and delete it.",
	Args:  exactArgs(1),
	RunE:  runRm,
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	return withRepo(cmd, func(repo *gitlet.Repository) error {
		return repo.Remove(args[0])
	})
}
