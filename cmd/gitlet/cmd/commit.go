package cmd

import (
	"github.com/spf13/cobra"

	"github.com/aweris/gitlet"
)

var commitCmd = &cobra.Command{
	Use:   "commit <message>",
	Short: "Record staged changes",
	Args:  exactArgs(1),
	RunE:  runCommit,
}

func init() {
	rootCmd.AddCommand(commitCmd)
}

func runCommit(cmd *cobra.Command, args []string) error {
	return withRepo(cmd, func(repo *gitlet.Repository) error {
		_, err := repo.Commit(args[0])
		return err
	})
}
