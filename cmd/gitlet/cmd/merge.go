package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aweris/gitlet"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <branch>",
	Short: "Merge a branch into the current branch",
	Args:  exactArgs(1),
	RunE:  runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	return withRepo(cmd, func(repo *gitlet.Repository) error {
		res, err := repo.Merge(args[0])
		if err != nil {
			return err
		}
		if msg := res.Message(); msg != "" {
			fmt.Fprintln(cmd.OutOrStdout(), msg)
		}
		return nil
	})
}
